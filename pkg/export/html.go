package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/hazyhaar/ementa/pkg/menu"
	"github.com/microcosm-cc/bluemonday"
	"github.com/skip2/go-qrcode"
	"github.com/yuin/goldmark"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 0; background: #faf7f2; color: #2b2118; }
header { background: #7a1f1f; color: #fff; padding: 1.5rem 2rem; }
header h1 { margin: 0; font-size: 2rem; }
header p { margin: .25rem 0 0; opacity: .8; }
main { max-width: 960px; margin: 0 auto; padding: 1rem 2rem 3rem; }
article { background: #fff; border-radius: 10px; box-shadow: 0 1px 4px rgba(0,0,0,.08); margin: 1.5rem 0; padding: 1.25rem 1.5rem; page-break-inside: avoid; }
article h2 { margin: 0 0 .75rem; color: #7a1f1f; }
.images { display: flex; gap: .75rem; flex-wrap: wrap; }
.images img { height: 200px; border-radius: 10px; object-fit: cover; }
.description { font-size: 1.05rem; line-height: 1.5; }
h3 { font-size: 1rem; text-transform: uppercase; letter-spacing: .05em; margin: 1rem 0 .25rem; }
ul { margin: 0; padding-left: 1.25rem; }
.qr { float: right; margin-left: 1rem; }
footer { text-align: center; font-size: .85rem; opacity: .6; padding-bottom: 2rem; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<p>{{len .Dishes}} pratos</p>
</header>
<main>
{{- range .Dishes}}
<article id="dish-{{.ID}}">
{{- $name := .Name}}
{{- if .QR}}<img class="qr" src="{{.QR}}" width="{{$.QRSize}}" height="{{$.QRSize}}" alt="QR {{.Name}}">{{end}}
<h2>{{.Name}}</h2>
{{- if .Images}}
<div class="images">{{range .Images}}<img src="{{.}}" alt="{{$name}}">{{end}}</div>
{{- end}}
<div class="description">{{.Description}}</div>
{{- if .Ingredients}}
<h3>{{$.IngredientsLabel}}</h3>
<ul>{{range .Ingredients}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
</article>
{{- end}}
</main>
<footer>{{.Source}}</footer>
</body>
</html>
`))

type pageData struct {
	Lang             string
	Title            string
	Source           string
	IngredientsLabel string
	QRSize           int
	Dishes           []dishView
}

type dishView struct {
	ID          string
	Name        string
	Description template.HTML
	Ingredients []string
	Images      []string
	QR          template.URL
}

// HTML writes the catalog as a standalone, styled HTML document.
func HTML(w io.Writer, c *menu.Catalog, opts Options) error {
	opts = opts.withDefaults(c)
	policy := bluemonday.UGCPolicy()
	md := goldmark.New()

	data := pageData{
		Lang:             c.Meta().Locale,
		Title:            opts.Title,
		Source:           c.Meta().Source,
		IngredientsLabel: opts.IngredientsLabel,
		QRSize:           opts.QRSize,
	}

	for _, d := range ordered(c) {
		v := dishView{
			ID:          d.ID,
			Name:        d.Name,
			Ingredients: d.Ingredients,
		}
		for _, ref := range d.Images {
			v.Images = append(v.Images, opts.ImageURL(ref))
		}

		var buf bytes.Buffer
		if err := md.Convert([]byte(d.Description), &buf); err != nil {
			return fmt.Errorf("render description of %s: %w", d.ID, err)
		}
		v.Description = template.HTML(policy.SanitizeBytes(buf.Bytes()))

		if link := opts.DetailURL(d); link != "" {
			png, err := qrcode.Encode(link, qrcode.Medium, opts.QRSize)
			if err != nil {
				return fmt.Errorf("qr code for %s: %w", d.ID, err)
			}
			v.QR = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		}
		data.Dishes = append(data.Dishes, v)
	}

	return page.Execute(w, data)
}
