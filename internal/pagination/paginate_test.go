package pagination

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gompdf/invoicepdf/internal/text"
)

var runeWidth = text.MetricsFunc(func(s string, _ text.Weight, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size / 2
})

func testGeometry() Geometry {
	return Geometry{
		Size:         PageSize{Width: 200, Height: 300},
		Margin:       Margins{Top: 20, Right: 20, Bottom: 20, Left: 20},
		FooterHeight: 10,
	}
}

func TestGeometry(t *testing.T) {
	g := testGeometry()
	assert.Equal(t, 280.0, g.Top())
	assert.Equal(t, 30.0, g.Bottom())
	assert.Equal(t, 250.0, g.BodyHeight())
	assert.Equal(t, 160.0, g.UsableWidth())
}

func TestCursor(t *testing.T) {
	c := NewCursor(testGeometry())
	assert.Equal(t, 280.0, c.Y())
	assert.True(t, c.Fits(250))
	assert.False(t, c.Fits(250.5))

	c.Advance(100)
	assert.Equal(t, 180.0, c.Y())
	assert.Equal(t, 150.0, c.Remaining())

	c.Advance(-500)
	assert.Equal(t, 280.0, c.Y(), "cursor never rises above the top margin")

	c.Advance(40)
	c.Reset()
	assert.Equal(t, 280.0, c.Y())
}

func TestReserveDoesNotMutate(t *testing.T) {
	c := NewController(testGeometry(), runeWidth, nil)
	assert.True(t, c.Reserve(250))
	assert.False(t, c.Reserve(251))
	assert.Equal(t, 280.0, c.Y())
	assert.Equal(t, 1, c.PageCount())
}

func TestEnsureSpaceBreaksAndRepeatsHeader(t *testing.T) {
	c := NewController(testGeometry(), runeWidth, nil)
	headers := 0
	header := func(c *Controller) {
		headers++
		c.Text(20, c.Y()-8, "HEADER", TextStyle{Size: 10})
		c.Advance(20)
	}

	c.Advance(200)
	assert.False(t, c.EnsureSpace(50, header))
	assert.Equal(t, 1, c.PageCount())

	assert.True(t, c.EnsureSpace(51, header))
	assert.Equal(t, 2, c.PageCount())
	assert.Equal(t, 1, headers)
	assert.Equal(t, 260.0, c.Y())
	assert.Equal(t, 2, c.Page().Number)
	require.Len(t, c.Page().Texts(), 1)
	assert.Equal(t, "HEADER", c.Page().Texts()[0].Text)

	c.Advance(240)
	assert.True(t, c.EnsureSpace(10, nil))
	assert.Equal(t, 1, headers)
	assert.Equal(t, 280.0, c.Y())
	assert.NoError(t, c.Err())
}

func TestEnsureSpaceNoFit(t *testing.T) {
	c := NewController(testGeometry(), runeWidth, nil)
	c.Advance(10)
	c.EnsureSpace(300, nil)
	require.Error(t, c.Err())
	assert.True(t, errors.Is(c.Err(), ErrNoFit))

	// Sticky: drawing after an error is ignored.
	c.Text(20, 100, "ignored", TextStyle{Size: 10})
	assert.Empty(t, c.Page().Primitives())

	_, err := c.Finish(nil)
	assert.ErrorIs(t, err, ErrNoFit)
}

func TestTextAlignment(t *testing.T) {
	c := NewController(testGeometry(), runeWidth, nil)
	c.Text(180, 200, "abcd", TextStyle{Size: 10, Align: AlignRight})
	c.Text(20, 200, "abcd", TextStyle{Size: 10})
	c.Text(20, 200, "\x00\x01", TextStyle{Size: 10})

	texts := c.Page().Texts()
	require.Len(t, texts, 2)
	assert.Equal(t, 160.0, texts[0].X)
	assert.Equal(t, 20.0, texts[1].X)
}

func TestPrimitiveOutsideMarginsIsRejected(t *testing.T) {
	c := NewController(testGeometry(), runeWidth, nil)
	c.FillRect(20, 10, 10, 10, Gray(0.5))
	assert.Error(t, c.Err())

	c = NewController(testGeometry(), runeWidth, nil)
	c.Line(20, 250, 180, 290, 1, Black)
	assert.Error(t, c.Err())

	c = NewController(testGeometry(), runeWidth, nil)
	c.Line(20, 20, 180, 280, 1, Black)
	assert.NoError(t, c.Err())
}

func TestFinishDecoratesAndFinalizes(t *testing.T) {
	c := NewController(testGeometry(), runeWidth, nil)
	c.Advance(250)
	c.EnsureSpace(10, nil)
	c.Advance(250)
	c.EnsureSpace(10, nil)

	var seen []int
	pages, err := c.Finish(func(c *Controller, p *Page, total int) {
		seen = append(seen, p.Number)
		assert.Equal(t, 3, total)
		c.TextOn(p, 20, 20, "footer", TextStyle{Size: 8})
	})
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, []int{1, 2, 3}, seen)
	for _, p := range pages {
		assert.Equal(t, Finalized, p.State())
		assert.Len(t, p.Texts(), 1)
	}

	c.Text(20, 100, "late", TextStyle{Size: 8})
	assert.ErrorIs(t, c.Err(), ErrFinalized)

	_, err = c.Finish(nil)
	assert.ErrorIs(t, err, ErrFinalized)
}

func TestPageBreakIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewController(testGeometry(), runeWidth, zap.New(core))
	c.Advance(245)
	c.EnsureSpace(10, nil)

	entries := logs.FilterMessage("page break").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["page"])
}

func TestPageState(t *testing.T) {
	p := newPage(1, 100, 100)
	assert.Equal(t, Open, p.State())
	require.NoError(t, p.add(Line{}))
	p.finalize()
	assert.Equal(t, "finalized", p.State().String())
	assert.ErrorIs(t, p.add(Line{}), ErrFinalized)
}
