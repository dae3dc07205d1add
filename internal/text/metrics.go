package text

import (
	"unicode"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Weight selects the regular or bold face of a font family
type Weight int

const (
	Regular Weight = iota
	Bold
)

// FontStyle returns the fpdf style string for the weight
func (w Weight) FontStyle() string {
	if w == Bold {
		return "B"
	}
	return ""
}

func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "regular"
}

// Metrics measures the width of a string in page units (points).
// Implementations must be deterministic and never return a negative width.
type Metrics interface {
	Width(s string, weight Weight, size float64) float64
}

// MetricsFunc adapts a plain function to Metrics
type MetricsFunc func(s string, weight Weight, size float64) float64

// Width calls f
func (f MetricsFunc) Width(s string, weight Weight, size float64) float64 {
	return f(s, weight, size)
}

// CoreFontMetrics measures text with the built-in PDF core font tables that
// fpdf ships with. Each instance owns its fpdf handle; it is not safe for
// concurrent use, so every rendering creates its own.
type CoreFontMetrics struct {
	family     string
	pdf        *fpdf.Fpdf
	translate  func(string) string
	lastWeight Weight
	lastSize   float64
}

// NewCoreFontMetrics creates a metrics provider for a core font family
// ("Helvetica", "Times" or "Courier").
func NewCoreFontMetrics(family string) *CoreFontMetrics {
	if family == "" {
		family = "Helvetica"
	}
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont(family, "", 12)
	return &CoreFontMetrics{
		family:    family,
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		lastSize:  12,
	}
}

// Family returns the font family being measured
func (m *CoreFontMetrics) Family() string {
	return m.family
}

// Width returns the advance width of s. Control characters are ignored and
// runes outside the core font encoding are measured as their fallback glyph.
func (m *CoreFontMetrics) Width(s string, weight Weight, size float64) float64 {
	s = Sanitize(s)
	if s == "" || size <= 0 {
		return 0
	}
	if m.pdf.Err() {
		return 0
	}
	if weight != m.lastWeight || size != m.lastSize {
		m.pdf.SetFont(m.family, weight.FontStyle(), size)
		m.lastWeight = weight
		m.lastSize = size
	}
	w := m.pdf.GetStringWidth(m.translate(s))
	if w < 0 {
		return 0
	}
	return w
}

// Err reports a font setup failure, e.g. an unknown family
func (m *CoreFontMetrics) Err() error {
	return m.pdf.Error()
}

// Sanitize removes control characters (including tabs and line breaks).
// Callers split paragraphs before sanitizing.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	out, _, err := transform.String(runes.Remove(runes.In(unicode.Cc)), s)
	if err != nil {
		return ""
	}
	return out
}
