package theme

import (
	"encoding/json"
	"fmt"
)

// ColorSpec is the JSON shape a palette entry may take: a hex string, an
// rgb triple, an ansi index, or a reference to another named token.
type ColorSpec struct {
	Hex  string `json:"hex,omitempty"`
	RGB  []int  `json:"rgb,omitempty"`
	ANSI *int   `json:"ansi,omitempty"`
	Name string `json:"name,omitempty"`
}

// Theme is the on-disk JSON schema for a color theme: a named palette of
// tokens, a semantic layer mapping UI roles onto palette tokens, and an
// optional parent theme to inherit unset tokens from.
type Theme struct {
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Mode        string               `json:"mode"` // "light" or "dark"
	Palette     map[string]ColorSpec `json:"palette"`
	Semantic    map[string]string    `json:"semantic"`
	Parent      string               `json:"parent,omitempty"`
}

// ErrConflictingSpec reports a palette entry with more than one color form.
type ErrConflictingSpec struct {
	Token string
}

func (e *ErrConflictingSpec) Error() string {
	return fmt.Sprintf("theme: palette token %q specifies more than one color form", e.Token)
}

// ErrUnresolvedToken reports a semantic or palette reference to a token
// that never resolves to a color, including through the parent chain.
type ErrUnresolvedToken struct {
	Token string
}

func (e *ErrUnresolvedToken) Error() string {
	return fmt.Sprintf("theme: token %q does not resolve to a color", e.Token)
}

// LoadTheme parses a theme document from JSON bytes.
func LoadTheme(data []byte) (*Theme, error) {
	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("theme: decode: %w", err)
	}
	return &t, nil
}

func (c ColorSpec) formCount() int {
	n := 0
	if c.Hex != "" {
		n++
	}
	if len(c.RGB) > 0 {
		n++
	}
	if c.ANSI != nil {
		n++
	}
	if c.Name != "" {
		n++
	}
	return n
}

func (c ColorSpec) resolve(token string, palette map[string]ColorSpec, seen map[string]bool) (Color, error) {
	switch c.formCount() {
	case 0:
		return Color{}, fmt.Errorf("theme: empty color spec for %q", token)
	case 1:
	default:
		return Color{}, &ErrConflictingSpec{Token: token}
	}
	switch {
	case c.Hex != "":
		col, ok := ParseColor(c.Hex)
		if !ok {
			return Color{}, fmt.Errorf("theme: invalid hex color %q for token %q", c.Hex, token)
		}
		return col, nil
	case len(c.RGB) == 3:
		return RGB(clamp8(c.RGB[0]), clamp8(c.RGB[1]), clamp8(c.RGB[2])), nil
	case c.ANSI != nil:
		return ANSIToRGB(*c.ANSI), nil
	case c.Name != "":
		if seen[c.Name] {
			return Color{}, fmt.Errorf("theme: circular token reference through %q", c.Name)
		}
		ref, ok := palette[c.Name]
		if !ok {
			return Color{}, &ErrUnresolvedToken{Token: c.Name}
		}
		seen[c.Name] = true
		return ref.resolve(c.Name, palette, seen)
	}
	return Color{}, fmt.Errorf("theme: unreachable color spec")
}
