package pdf

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/gompdf/invoicepdf/internal/pagination"
)

// ErrNoPages is returned when there is nothing to serialize
var ErrNoPages = errors.New("pdf: no pages")

// Renderer serializes finalized pages into a PDF document
type Renderer struct {
	// FontFamily is the core font used for every text run
	FontFamily string
	// Compress enables zlib compression of page content streams
	Compress bool

	log *zap.Logger
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
	// CreationDate is written to the document info. A fixed value keeps
	// the output byte-identical across runs.
	CreationDate time.Time
}

// NewRenderer creates a new PDF renderer
func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		FontFamily: "Helvetica",
		Compress:   true,
		log:        log,
	}
}

// Render writes pages to w. Page coordinates have their origin at the
// bottom-left corner and are flipped into fpdf's top-left space here.
func (r *Renderer) Render(pages []*pagination.Page, w io.Writer, options RenderOptions) error {
	if len(pages) == 0 {
		return ErrNoPages
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(options.CreationDate)
	pdf.SetModificationDate(options.CreationDate)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)
	pdf.SetFont(r.FontFamily, "", 12)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: font %q: %w", r.FontFamily, err)
	}
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range pages {
		if page.State() != pagination.Finalized {
			return fmt.Errorf("pdf: page %d: %s page cannot be serialized", page.Number, page.State())
		}
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
		for _, prim := range page.Primitives() {
			r.renderPrimitive(pdf, page, prim, translate)
		}
		r.log.Debug("page serialized",
			zap.Int("page", page.Number),
			zap.Int("primitives", len(page.Primitives())),
		)
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("pdf: page %d: %w", page.Number, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: output: %w", err)
	}
	return nil
}

func (r *Renderer) renderPrimitive(pdf *fpdf.Fpdf, page *pagination.Page, prim pagination.Primitive, translate func(string) string) {
	switch p := prim.(type) {
	case pagination.TextRun:
		pdf.SetFont(r.FontFamily, p.Style.Weight.FontStyle(), p.Style.Size)
		pdf.SetTextColor(toRGB255(p.Style.Color))
		pdf.Text(p.X, page.Height-p.Y, translate(p.Text))
	case pagination.Line:
		pdf.SetDrawColor(toRGB255(p.Color))
		pdf.SetLineWidth(p.Thickness)
		pdf.Line(p.X1, page.Height-p.Y1, p.X2, page.Height-p.Y2)
	case pagination.FillRect:
		pdf.SetFillColor(toRGB255(p.Color))
		pdf.Rect(p.X, page.Height-(p.Y+p.Height), p.Width, p.Height, "F")
	default:
		pdf.SetErrorf("unknown primitive %T", prim)
	}
}

// toRGB255 converts [0,1] components to the 0-255 range used by fpdf
func toRGB255(c pagination.RGB) (int, int, int) {
	return channel(c.R), channel(c.G), channel(c.B)
}

func channel(v float64) int {
	n := int(math.Round(v * 255))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}
