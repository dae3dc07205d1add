package pagination

import (
	"errors"

	"github.com/gompdf/invoicepdf/internal/text"
)

// ErrFinalized is returned when drawing on a page that has been finalized
var ErrFinalized = errors.New("pagination: page is finalized")

// Align is the horizontal anchor of a text placement
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// RGB is a color with components in [0,1]
type RGB struct {
	R, G, B float64
}

// Black is the default text color
var Black = RGB{}

// Gray returns a neutral color with all components set to v
func Gray(v float64) RGB {
	return RGB{R: v, G: v, B: v}
}

// TextStyle enumerates the recognized drawing options for text.
// The zero value is regular black text anchored on the left.
type TextStyle struct {
	Weight text.Weight
	Size   float64
	Color  RGB
	Align  Align
}

// Primitive is a single drawing instruction on a page. Coordinates use the
// PDF convention: origin at the bottom-left corner, y growing upwards.
type Primitive interface {
	// Bounds returns the lowest and highest y the primitive is placed at
	Bounds() (minY, maxY float64)
}

// TextRun places a string with its baseline at (X, Y). X is already resolved
// from the style alignment.
type TextRun struct {
	X, Y  float64
	Text  string
	Style TextStyle
}

// Bounds implements Primitive
func (t TextRun) Bounds() (float64, float64) {
	return t.Y, t.Y
}

// Line is a straight stroke
type Line struct {
	X1, Y1, X2, Y2 float64
	Thickness      float64
	Color          RGB
}

// Bounds implements Primitive
func (l Line) Bounds() (float64, float64) {
	return min(l.Y1, l.Y2), max(l.Y1, l.Y2)
}

// FillRect is a filled rectangle with its lower-left corner at (X, Y)
type FillRect struct {
	X, Y, Width, Height float64
	Color               RGB
}

// Bounds implements Primitive
func (r FillRect) Bounds() (float64, float64) {
	return r.Y, r.Y + r.Height
}

// PageState is the lifecycle state of a page
type PageState int

const (
	// Open pages accept primitives
	Open PageState = iota
	// Finalized pages are immutable and part of the output list
	Finalized
)

func (s PageState) String() string {
	if s == Finalized {
		return "finalized"
	}
	return "open"
}

// Page represents a single page in the document
type Page struct {
	Width      float64
	Height     float64
	Number     int
	state      PageState
	primitives []Primitive
}

func newPage(number int, width, height float64) *Page {
	return &Page{Number: number, Width: width, Height: height}
}

// State returns the lifecycle state of the page
func (p *Page) State() PageState {
	return p.state
}

// Primitives returns the drawing instructions in emission order.
// The returned slice must not be modified.
func (p *Page) Primitives() []Primitive {
	return p.primitives
}

// Texts returns the text runs of the page in emission order
func (p *Page) Texts() []TextRun {
	var out []TextRun
	for _, prim := range p.primitives {
		if t, ok := prim.(TextRun); ok {
			out = append(out, t)
		}
	}
	return out
}

func (p *Page) add(prim Primitive) error {
	if p.state == Finalized {
		return ErrFinalized
	}
	p.primitives = append(p.primitives, prim)
	return nil
}

func (p *Page) finalize() {
	p.state = Finalized
}
