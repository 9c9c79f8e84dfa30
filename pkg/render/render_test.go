package render

import (
	"strings"
	"testing"
)

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="134pt" height="188pt" viewBox="0.00 0.00 134.00 188.00" xmlns="http://www.w3.org/2000/svg">
<g class="graph"></g>
</svg>`)

	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 134.00 188.00"`) {
		t.Errorf("viewBox not normalized:\n%s", out)
	}
	if !strings.Contains(out, `width="134" height="188"`) {
		t.Errorf("width/height should match the viewBox:\n%s", out)
	}
	if strings.Contains(out, "pt") {
		t.Errorf("point-based sizes should be gone:\n%s", out)
	}
	// Document content survives
	if !strings.Contains(out, `<g class="graph"></g>`) {
		t.Errorf("body content lost:\n%s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	// SVG without a viewBox passes through untouched.
	in := []byte(`<svg width="10" height="10"><rect/></svg>`)
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("missing viewBox should be a no-op:\n%s", got)
	}
}

func TestNormalizeViewBoxZeroSize(t *testing.T) {
	in := []byte(`<svg viewBox="0 0 0 0"></svg>`)
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("zero-size viewBox should be a no-op:\n%s", got)
	}
}
