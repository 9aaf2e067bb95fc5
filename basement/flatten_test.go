package basement

import "testing"

func TestFlattenPlainTextIsOneSpan(t *testing.T) {
	spans := Flatten("hello world")
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", spans[0].Text)
	}
	if spans[0].Bold {
		t.Errorf("plain text should not be bold")
	}
}

func TestFlattenNestedEmphasisMergesFlagsOntoOneSpan(t *testing.T) {
	spans := Flatten("**__loud__**")
	if len(spans) != 1 {
		t.Fatalf("expected nested emphasis to fold into 1 span, got %d", len(spans))
	}
	if !spans[0].Bold || !spans[0].Underline {
		t.Errorf("expected both bold and underline on the merged span, got %+v", spans[0])
	}
	if spans[0].Text != "loud" {
		t.Errorf("expected text %q, got %q", "loud", spans[0].Text)
	}
}

func TestFlattenColorSpanCarriesResolvedColor(t *testing.T) {
	spans := Flatten("plain #green(ok)")
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[1].Text != "ok" {
		t.Errorf("expected second span text %q, got %q", "ok", spans[1].Text)
	}
	if !spans[1].Fg.IsSet() {
		t.Errorf("expected the color span to carry a resolved foreground color")
	}
}

func TestFlattenHoleBecomesPlaceholderSpan(t *testing.T) {
	spans := Flatten("count: %v")
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[1].Text != "%v" {
		t.Errorf("expected hole span text %q, got %q", "%v", spans[1].Text)
	}
}
