package generator_test

import (
	"testing"

	"flowcraft/internal/generator"
)

func TestStripFences(t *testing.T) {
	cases := []struct{ in, want string }{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```html\n<div>x</div>\n```", "<div>x</div>"},
		{"no fences here", "no fences here"},
		{"  padded  ", "padded"},
	}
	for _, c := range cases {
		if got := generator.StripFences(c.in); got != c.want {
			t.Errorf("StripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractJSON_Direct(t *testing.T) {
	var out struct {
		AppName string `json:"appName"`
	}
	if err := generator.ExtractJSON(`{"appName":"TaskFlow"}`, &out); err != nil {
		t.Fatal(err)
	}
	if out.AppName != "TaskFlow" {
		t.Errorf("got %q", out.AppName)
	}
}

func TestExtractJSON_FencedAndWrapped(t *testing.T) {
	raw := "Sure! Here is the flow you asked for:\n```json\n{\"appName\":\"ShopEase\"}\n```\nLet me know if you need anything else."
	var out struct {
		AppName string `json:"appName"`
	}
	if err := generator.ExtractJSON(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out.AppName != "ShopEase" {
		t.Errorf("got %q", out.AppName)
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	var out map[string]any
	if err := generator.ExtractJSON("I couldn't generate that, sorry.", &out); err == nil {
		t.Fatal("expected error for response without JSON")
	}
}

func TestExtractHTMLFragment(t *testing.T) {
	raw := "Here's your screen:\n<div class=\"h-full\"><button>Go</button></div>\nHope you like it!"
	got, err := generator.ExtractHTMLFragment(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got != `<div class="h-full"><button>Go</button></div>` {
		t.Errorf("got %q", got)
	}
}

func TestExtractHTMLFragment_FencedFallback(t *testing.T) {
	got, err := generator.ExtractHTMLFragment("```html\n<section>not a div</section>\n```")
	if err != nil {
		t.Fatal(err)
	}
	if got != "<section>not a div</section>" {
		t.Errorf("got %q", got)
	}
}

func TestExtractHTMLFragment_Empty(t *testing.T) {
	if _, err := generator.ExtractHTMLFragment("``````"); err == nil {
		t.Fatal("expected error for empty response")
	}
}
