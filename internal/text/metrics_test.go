package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoreFontMetrics(t *testing.T) {
	m := NewCoreFontMetrics("")
	assert.Equal(t, "Helvetica", m.Family())

	assert.Equal(t, 0.0, m.Width("", Regular, 12))
	assert.Equal(t, 0.0, m.Width("abc", Regular, 0))

	regular := m.Width("Invoice", Regular, 12)
	bold := m.Width("Invoice", Bold, 12)
	assert.Greater(t, regular, 0.0)
	assert.Greater(t, bold, regular)
	assert.InDelta(t, regular*2, m.Width("Invoice", Regular, 24), 1e-9)

	// Same inputs, same width, regardless of the calls in between.
	assert.Equal(t, regular, m.Width("Invoice", Regular, 12))
}

func TestCoreFontMetricsIgnoresControlCharacters(t *testing.T) {
	m := NewCoreFontMetrics("Helvetica")
	assert.Equal(t, m.Width("ab", Regular, 10), m.Width("a\x07b\x1b", Regular, 10))
	assert.Equal(t, 0.0, m.Width("\x00\x01", Regular, 10))
}

func TestCoreFontMetricsUnsupportedRunes(t *testing.T) {
	m := NewCoreFontMetrics("Helvetica")
	assert.GreaterOrEqual(t, m.Width("日本語", Regular, 10), 0.0)
	assert.Greater(t, m.Width("café", Regular, 10), m.Width("caf", Regular, 10))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "plain", Sanitize("plain"))
	assert.Equal(t, "ab", Sanitize("a\r\nb"))
}

func TestWeight(t *testing.T) {
	assert.Equal(t, "", Regular.FontStyle())
	assert.Equal(t, "B", Bold.FontStyle())
	assert.Equal(t, "bold", Bold.String())
}
