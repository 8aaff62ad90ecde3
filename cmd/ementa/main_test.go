package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hazyhaar/ementa/pkg/menu"
)

// run executes the CLI with a config path inside a temp dir (absent unless
// the test writes it) and returns stdout.
func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	if cfgPath == "" {
		cfgPath = filepath.Join(t.TempDir(), "config.yaml")
	}
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := run(t, cfgPath, args...)
	if err != nil {
		t.Fatalf("ementa %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func builtinDish(t *testing.T, i int) menu.Dish {
	t.Helper()
	c, err := menu.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	return c.Dishes()[i]
}

func decodeDishes(t *testing.T, out string) []menu.Dish {
	t.Helper()
	var dishes []menu.Dish
	if err := json.Unmarshal([]byte(out), &dishes); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return dishes
}

func TestSearchCmd_JSON(t *testing.T) {
	dishes := decodeDishes(t, mustRun(t, "", "search", "--json", "--stored", "knedl"))
	if len(dishes) != 11 {
		t.Fatalf("got %d dishes, want 11", len(dishes))
	}
	if dishes[0].Name != "Vepřo knedlo zelo" {
		t.Errorf("first = %q", dishes[0].Name)
	}
}

func TestSearchCmd_MultiWordQuery(t *testing.T) {
	dishes := decodeDishes(t, mustRun(t, "", "search", "--json", "smetane", "legumes"))
	if len(dishes) != 1 || dishes[0].Name != "Svíčková na smetaně" {
		t.Errorf("dishes = %v", dishes)
	}
}

func TestSearchCmd_Text(t *testing.T) {
	if out := mustRun(t, "", "search", "pizza"); out != "no dishes found\n" {
		t.Errorf("pizza output = %q", out)
	}
	if out := mustRun(t, "", "search", "svickova"); strings.Count(out, "Svíčková") != 3 {
		t.Errorf("svickova output:\n%s", out)
	}
}

func TestSearchCmd_UnknownCatalog(t *testing.T) {
	_, err := run(t, "", "--catalog", "nope", "search", "x")
	if !errors.Is(err, menu.ErrCatalogNotFound) {
		t.Errorf("err = %v, want ErrCatalogNotFound", err)
	}
}

func TestShowCmd(t *testing.T) {
	d := builtinDish(t, 0)
	if out := mustRun(t, "", "show", d.ID); !strings.HasPrefix(out, "# "+d.Name+"\n") {
		t.Errorf("show output:\n%s", out)
	}

	_, err := run(t, "", "show", "missing")
	if !errors.Is(err, menu.ErrDishNotFound) {
		t.Errorf("err = %v, want ErrDishNotFound", err)
	}
}

func TestCatalogsCmd(t *testing.T) {
	out := mustRun(t, "", "catalogs")
	for _, want := range []string{"ID", "ementa", "40"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalogs output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.html")
	mustRun(t, "", "export", "--title", "Jídelní lístek", "-o", path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<title>Jídelní lístek</title>") {
		t.Error("title not written to html export")
	}

	if out := mustRun(t, "", "export", "--format", "markdown"); !strings.HasPrefix(out, "# Ementa\n") {
		t.Errorf("markdown starts %q", out[:min(len(out), 40)])
	}

	if _, err := run(t, "", "export", "--format", "pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSpeakCmd_UnavailableIsNotFatal(t *testing.T) {
	cfg := writeConfig(t, "speech:\n  command: ementa-no-such-tts-program\n")
	if out := mustRun(t, cfg, "speak", builtinDish(t, 2).ID); out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
}

func TestImportCSVThenSearch(t *testing.T) {
	dir := t.TempDir()
	catalogs := filepath.Join(dir, "catalogs")
	csvPath := filepath.Join(dir, "hospoda.csv")
	if err := os.WriteFile(csvPath, []byte(
		"id;name;description;ingredients\n"+
			"u;Utopenci;Salsichas em vinagre;Salsichas|Cebola|Vinagre\n"+
			"t;Tatarák;Bife tártaro;Carne crua|Ovo|Alho\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := writeConfig(t, "catalogs_dir: "+catalogs+"\ndefault_catalog: hospoda\n")

	out := mustRun(t, cfg, "import", "csv", csvPath, "--id", "hospoda", "--title", "Hospoda", "--delimiter", ";")
	if !strings.Contains(out, "hospoda: 2 dishes") {
		t.Errorf("import output = %q", out)
	}

	dishes := decodeDishes(t, mustRun(t, cfg, "search", "--json", "CEBOLA"))
	if len(dishes) != 1 || dishes[0].ID != "u" {
		t.Errorf("dishes = %v", dishes)
	}
}

func TestImportRequiresID(t *testing.T) {
	if _, err := run(t, "", "import", "csv", "x.csv", "-o", t.TempDir()); err == nil {
		t.Error("expected error without --id")
	}
}

func TestBadLogLevel(t *testing.T) {
	if _, err := run(t, "", "--log-level", "loud", "catalogs"); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestParseToolArgs(t *testing.T) {
	args, err := parseToolArgs([]string{"query=knedliky zeli", "catalog=1999", "sort=stored", "id=", "note=a=b"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"query": "knedliky zeli", "catalog": "1999", "sort": "stored", "id": "", "note": "a=b"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %#v, want %#v", args, want)
	}

	// Digits and booleans stay strings.
	args, err = parseToolArgs([]string{"query=1999", "exact=true"})
	if err != nil {
		t.Fatal(err)
	}
	if args["query"] != "1999" || args["exact"] != "true" {
		t.Errorf("args = %#v", args)
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := parseToolArgs([]string{bad}); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
