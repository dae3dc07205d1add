package pagination

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gompdf/invoicepdf/internal/text"
)

// ErrNoFit is reported when a block is taller than an empty page body
var ErrNoFit = errors.New("pagination: content taller than page body")

// HeaderFunc re-emits a repeating section header on a freshly opened page
type HeaderFunc func(c *Controller)

// PageFunc decorates a page once the total page count is known
type PageFunc func(c *Controller, page *Page, total int)

// Controller owns the page list and the layout cursor of one document. It
// decides page breaks before content is placed and keeps the first error it
// encounters; later drawing calls become no-ops once an error is recorded.
type Controller struct {
	geom    Geometry
	metrics text.Metrics
	log     *zap.Logger

	pages  []*Page
	page   *Page
	cursor Cursor
	err    error
	done   bool
}

// NewController opens the first page of a document
func NewController(g Geometry, m text.Metrics, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{geom: g, metrics: m, log: log}
	c.openPage()
	return c
}

// Geometry returns the page constants
func (c *Controller) Geometry() Geometry {
	return c.geom
}

// Metrics returns the text metrics used to resolve text alignment
func (c *Controller) Metrics() text.Metrics {
	return c.metrics
}

// Y returns the cursor position on the current page
func (c *Controller) Y() float64 {
	return c.cursor.Y()
}

// Page returns the current page
func (c *Controller) Page() *Page {
	return c.page
}

// PageCount returns the number of pages opened so far
func (c *Controller) PageCount() int {
	return len(c.pages)
}

// Err returns the first error recorded by the controller
func (c *Controller) Err() error {
	return c.err
}

// SetErrorf records an error unless one is already set
func (c *Controller) SetErrorf(format string, args ...any) {
	if c.err == nil {
		c.err = fmt.Errorf(format, args...)
	}
}

// Reserve reports whether height fits on the current page. It does not
// change any state.
func (c *Controller) Reserve(height float64) bool {
	return c.cursor.Fits(height)
}

// EnsureSpace opens a new page when height does not fit on the current one
// and invokes header on it, if given. It returns whether a break happened.
// Content that still does not fit on the fresh page is an invariant
// violation and is recorded as ErrNoFit.
func (c *Controller) EnsureSpace(height float64, header HeaderFunc) bool {
	if c.err != nil || c.Reserve(height) {
		return false
	}

	c.log.Debug("page break",
		zap.Int("page", c.page.Number),
		zap.Float64("y", c.cursor.Y()),
		zap.Float64("height", height),
	)
	c.openPage()
	if header != nil {
		header(c)
	}
	if !c.Reserve(height) {
		c.SetErrorf("%w: need %.2f, have %.2f on page %d",
			ErrNoFit, height, c.cursor.Remaining(), c.page.Number)
	}
	return true
}

// Advance moves the cursor down by amount
func (c *Controller) Advance(amount float64) {
	c.cursor.Advance(amount)
}

// Text places s on the current page with its baseline at y. For right
// aligned styles x is the right edge of the run.
func (c *Controller) Text(x, y float64, s string, st TextStyle) {
	c.TextOn(c.page, x, y, s, st)
}

// TextOn is Text for an arbitrary open page
func (c *Controller) TextOn(page *Page, x, y float64, s string, st TextStyle) {
	s = text.Sanitize(s)
	if s == "" {
		return
	}
	if st.Align == AlignRight {
		x -= c.metrics.Width(s, st.Weight, st.Size)
	}
	c.DrawOn(page, TextRun{X: x, Y: y, Text: s, Style: st})
}

// Line strokes a segment on the current page
func (c *Controller) Line(x1, y1, x2, y2, thickness float64, color RGB) {
	c.draw(Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Thickness: thickness, Color: color})
}

// FillRect fills a rectangle whose lower-left corner is (x, y)
func (c *Controller) FillRect(x, y, w, h float64, color RGB) {
	c.draw(FillRect{X: x, Y: y, Width: w, Height: h, Color: color})
}

// DrawOn adds a primitive to an arbitrary open page. It is used for
// decorations applied after all content is placed.
func (c *Controller) DrawOn(page *Page, prim Primitive) {
	if c.err != nil {
		return
	}
	if c.done {
		c.SetErrorf("page %d: %w", page.Number, ErrFinalized)
		return
	}
	if lo, hi := prim.Bounds(); lo < c.geom.Margin.Bottom-epsilon || hi > c.geom.Top()+epsilon {
		c.SetErrorf("primitive at y=[%.2f, %.2f] outside page %d margins", lo, hi, page.Number)
		return
	}
	if err := page.add(prim); err != nil {
		c.SetErrorf("page %d: %w", page.Number, err)
	}
}

// Finish applies decorate to every page, finalizes them and returns the
// ordered page list. The controller accepts no content afterwards.
func (c *Controller) Finish(decorate PageFunc) ([]*Page, error) {
	if c.done {
		return nil, ErrFinalized
	}
	if decorate != nil && c.err == nil {
		for _, p := range c.pages {
			decorate(c, p, len(c.pages))
		}
	}
	c.done = true
	for _, p := range c.pages {
		p.finalize()
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.pages, nil
}

func (c *Controller) draw(prim Primitive) {
	c.DrawOn(c.page, prim)
}

// epsilon absorbs float noise when comparing against margins
const epsilon = 1e-6

func (c *Controller) openPage() {
	c.page = newPage(len(c.pages)+1, c.geom.Size.Width, c.geom.Size.Height)
	c.pages = append(c.pages, c.page)
	c.cursor = NewCursor(c.geom)
}
