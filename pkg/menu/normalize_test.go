package menu

import (
	"sync"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"Řízek", "rizek"},
		{"rizek", "rizek"},
		{"Guláš!", "gulas"},
		{"Smažený sýr", "smazeny syr"},
		{"Knedlíky", "knedliky"},
		{"Açúcar em pó", "acucar em po"},
		{"Fruta (ameixa ou morango)", "fruta ameixa ou morango"},
		{"Crème brûlée", "creme brulee"},
		{"Queijo Olomoucké tvarůžky", "queijo olomoucke tvaruzky"},
		{"360_F_313319491", "360f313319491"},
		{"a\tb\nc", "abc"},
		{"Øl", "l"},
		{"Straße", "strae"},
		{"日本語", ""},
		{"   ", "   "},
		{"caf\xffe", "cafe"},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "Řízek", "Guláš!", "Svíčková na smetaně", "Pão ralado",
		"Óleo para fritar", "MIXED case 123", "日本語 text", "  spaced  out  ",
	}
	for _, s := range inputs {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", s, twice, once)
		}
	}
}

func TestNormalizeCaseAndDiacriticInsensitive(t *testing.T) {
	variants := []string{"Řízek", "ŘÍZEK", "rizek", "RIZEK", "řízek"}
	for _, v := range variants {
		if got := Normalize(v); got != "rizek" {
			t.Errorf("Normalize(%q) = %q, want rizek", v, got)
		}
	}
}

func TestNormalizeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := Normalize("Zabijačkový guláš"); got != "zabijackovy gulas" {
					t.Errorf("Normalize = %q, want zabijackovy gulas", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
