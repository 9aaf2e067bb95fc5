package render

import "testing"

func TestHighlightSpansColorsGoKeyword(t *testing.T) {
	spans := HighlightSpans("func main() {}", "go")
	found := false
	for _, s := range spans {
		if s.Text == "func" {
			found = true
			if !s.Fg.IsSet() || !s.Bold {
				t.Errorf("expected %q to be bold and colored, got %+v", s.Text, s)
			}
		}
	}
	if !found {
		t.Fatalf("expected a token with text %q", "func")
	}
}

func TestHighlightSpansUnknownLangFallsBackToPlain(t *testing.T) {
	spans := HighlightSpans("just text", "not-a-real-lexer")
	if len(spans) == 0 {
		t.Fatalf("expected at least one span from the fallback lexer")
	}
}
