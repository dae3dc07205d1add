package pagination

// PageSize represents page dimensions in points (1/72 inch)
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
)

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Geometry holds the fixed page constants shared by every page of a document.
// Content flows between the top margin and the footer band that sits on top
// of the bottom margin.
type Geometry struct {
	Size   PageSize
	Margin Margins
	// FooterHeight is reserved above the bottom margin for page decorations
	FooterHeight float64
}

// Top returns the y of the top margin
func (g Geometry) Top() float64 {
	return g.Size.Height - g.Margin.Top
}

// Bottom returns the lowest y content may reach
func (g Geometry) Bottom() float64 {
	return g.Margin.Bottom + g.FooterHeight
}

// BodyHeight returns the vertical space available on an empty page
func (g Geometry) BodyHeight() float64 {
	return g.Top() - g.Bottom()
}

// Left returns the x of the left margin
func (g Geometry) Left() float64 {
	return g.Margin.Left
}

// Right returns the x of the right margin
func (g Geometry) Right() float64 {
	return g.Size.Width - g.Margin.Right
}

// UsableWidth returns the width between the side margins
func (g Geometry) UsableWidth() float64 {
	return g.Right() - g.Left()
}

// Cursor is the vertical position on the current page. It starts at the top
// margin and only moves down until the next page resets it.
type Cursor struct {
	y      float64
	top    float64
	bottom float64
}

// NewCursor returns a cursor placed at the top of a page with geometry g
func NewCursor(g Geometry) Cursor {
	return Cursor{y: g.Top(), top: g.Top(), bottom: g.Bottom()}
}

// Y returns the current vertical position
func (c Cursor) Y() float64 {
	return c.y
}

// Remaining returns the space left above the bottom limit
func (c Cursor) Remaining() float64 {
	return c.y - c.bottom
}

// Fits reports whether height can be consumed without crossing the bottom limit
func (c Cursor) Fits(height float64) bool {
	return c.y-height >= c.bottom
}

// Advance moves the cursor down by amount. Negative amounts never lift it
// above the top margin.
func (c *Cursor) Advance(amount float64) {
	c.y -= amount
	if c.y > c.top {
		c.y = c.top
	}
}

// Reset moves the cursor back to the top margin
func (c *Cursor) Reset() {
	c.y = c.top
}
