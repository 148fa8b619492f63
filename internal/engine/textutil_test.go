package engine

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Head Coach", "Head Coach"},
		{"tags removed", "<p>Head <strong>Coach</strong></p>", "Head Coach"},
		{"entities decoded in text nodes", "<p>Sports &amp; Fitness</p>", "Sports & Fitness"},
		{"whitespace collapsed", "<div>\n  a\n\n  b  </div>", "a b"},
		{"attribute with angle bracket", `<a href="x" title="a > b">link</a>`, "link"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ampersand", "Sales &amp; Marketing", "Sales & Marketing"},
		{"numeric en dash", "2024&#8211;25 Season", "2024–25 Season"},
		{"numeric apostrophe", "Coach&#039;s Assistant", "Coach's Assistant"},
		{"smart quotes", "&ldquo;Senior&rdquo; Analyst", "“Senior” Analyst"},
		{"no entities passthrough", "Groundskeeper", "Groundskeeper"},
		{"malformed numeric left alone", "&#99999999999;", "&#99999999999;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeEntities(tt.in); got != tt.want {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
