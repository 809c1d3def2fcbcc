package app

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDeriveExcerpt_StripsMarkupAndTruncates(t *testing.T) {
	body := "<h2>Heading</h2>" + strings.Repeat("<p>sentence of body text</p>", 30)
	got := deriveExcerpt(body, 200)
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("markup survived: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("missing ellipsis: %q", got)
	}
	if utf8.RuneCountInString(strings.TrimSuffix(got, "...")) > 200 {
		t.Fatalf("excerpt too long: %d runes", utf8.RuneCountInString(got))
	}
	if !strings.HasPrefix(got, "Heading sentence of body text") {
		t.Fatalf("unexpected excerpt start: %q", got)
	}
}

func TestDeriveExcerpt_ShortBodyKept(t *testing.T) {
	got := deriveExcerpt("<p>Just a little text.</p>", 200)
	if got != "Just a little text...." {
		t.Fatalf("unexpected excerpt: %q", got)
	}
}

func TestDeriveExcerpt_CutsAtRuneBoundary(t *testing.T) {
	body := "<p>" + strings.Repeat("ä", 300) + "</p>"
	got := deriveExcerpt(body, 200)
	want := strings.Repeat("ä", 200) + "..."
	if got != want {
		t.Fatalf("rune-boundary cut failed, got %d bytes", len(got))
	}
}

func TestDeriveExcerpt_SkipsScriptContents(t *testing.T) {
	body := "<p>Visible text before the cut.</p><script>var hidden = true;</script>"
	got := deriveExcerpt(body, 200)
	if strings.Contains(got, "hidden") {
		t.Fatalf("script contents leaked into excerpt: %q", got)
	}
}
