package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gompdf/invoicepdf/internal/layout"
	"github.com/gompdf/invoicepdf/internal/pagination"
	"github.com/gompdf/invoicepdf/internal/render/pdf"
	"github.com/gompdf/invoicepdf/internal/text"
	"github.com/gompdf/invoicepdf/pkg/invoice"
)

var (
	// ErrInvoiceNotFound is returned when no invoice was supplied or the
	// lookup found nothing. Rendering never starts.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrRenderFailed matches every RenderError
	ErrRenderFailed = errors.New("rendering failed")
)

// RenderError reports an internal failure while producing the document
type RenderError struct {
	Section string
	Err     error
}

func (e *RenderError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("rendering failed: %v", e.Err)
	}
	return fmt.Sprintf("rendering failed in %s: %v", e.Section, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRenderFailed) hold for any RenderError
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailed
}

// Stages outside the layout sections that can fail
const (
	stageFonts     = "fonts"
	stageSerialize = "serialize"
)

// Document is a rendered invoice
type Document struct {
	ID    string
	Bytes []byte
	// Filename is the suggested download name, e.g. invoice-Oct-19-2025.pdf
	Filename string
	Pages    int
}

// Source looks invoices up by identifier. Implementations return a nil
// invoice or ErrInvoiceNotFound when the record does not exist.
type Source interface {
	Invoice(ctx context.Context, id string) (*invoice.Invoice, error)
}

// Generator is the main API for rendering invoices to PDF. It holds no
// per-document state and may be used from several goroutines.
type Generator struct {
	options Options
}

// New creates a new generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new generator with the specified options
func NewWithOptions(options Options) *Generator {
	return &Generator{options: options}
}

// NewWith creates a generator from the defaults modified by opts
func NewWith(opts ...Option) *Generator {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options)
}

// Options returns a copy of the generator options
func (g *Generator) Options() Options {
	return g.options
}

// WithOption returns a new generator with the specified option set
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// Generate renders inv and returns the document bytes with the suggested
// filename.
func (g *Generator) Generate(inv *invoice.Invoice) (*Document, error) {
	var buf bytes.Buffer
	pages, err := g.render(inv, &buf)
	if err != nil {
		return nil, err
	}
	return &Document{
		ID:       inv.ID,
		Bytes:    buf.Bytes(),
		Filename: layout.Filename(inv.IssueDate),
		Pages:    pages,
	}, nil
}

// GenerateTo renders inv and writes the document to w. Nothing is written
// when layout fails.
func (g *Generator) GenerateTo(w io.Writer, inv *invoice.Invoice) error {
	doc, err := g.Generate(inv)
	if err != nil {
		return err
	}
	if _, err := w.Write(doc.Bytes); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// GenerateByID looks the invoice up in src and renders it
func (g *Generator) GenerateByID(ctx context.Context, src Source, id string) (*Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: no invoice id", ErrInvoiceNotFound)
	}
	inv, err := src.Invoice(ctx, id)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up invoice %s: %w", id, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvoiceNotFound, id)
	}
	// records without their own id are rendered under the requested one
	if strings.TrimSpace(inv.ID) == "" {
		clone := *inv
		clone.ID = id
		inv = &clone
	}
	return g.Generate(inv)
}

func (g *Generator) logger() *zap.Logger {
	if g.options.Logger == nil {
		return zap.NewNop()
	}
	return g.options.Logger
}

func (g *Generator) geometry() pagination.Geometry {
	w, h := g.options.pageDimensions()
	return pagination.Geometry{
		Size: pagination.PageSize{Width: w, Height: h},
		Margin: pagination.Margins{
			Top:    g.options.MarginTop,
			Right:  g.options.MarginRight,
			Bottom: g.options.MarginBottom,
			Left:   g.options.MarginLeft,
		},
		FooterHeight: g.options.FooterHeight,
	}
}

func (g *Generator) creationDate(inv *invoice.Invoice) time.Time {
	if inv.IssueDate.Valid && !inv.IssueDate.Time.IsZero() {
		return inv.IssueDate.Time.UTC()
	}
	if g.options.CreationDate.IsZero() {
		return DefaultCreationDate
	}
	return g.options.CreationDate
}

// render lays inv out and serializes the pages to w. It returns the page
// count.
func (g *Generator) render(inv *invoice.Invoice, w io.Writer) (int, error) {
	if inv == nil || strings.TrimSpace(inv.ID) == "" {
		return 0, ErrInvoiceNotFound
	}
	log := g.logger().With(zap.String("invoice", inv.ID))

	// metrics hold an fpdf handle, so every document gets its own
	metrics := text.NewCoreFontMetrics(g.options.FontFamily)
	if err := metrics.Err(); err != nil {
		return 0, &RenderError{Section: stageFonts, Err: err}
	}

	engine := layout.NewEngine(layout.Options{
		Geometry: g.geometry(),
		Theme:    layout.DefaultTheme(),
		Logger:   log,
	}, metrics)
	pages, err := engine.Layout(inv)
	if err != nil {
		var se *layout.SectionError
		if errors.As(err, &se) {
			return 0, &RenderError{Section: se.Section, Err: se.Err}
		}
		return 0, &RenderError{Err: err}
	}

	title := g.options.Title
	if title == "" {
		title = "Invoice " + inv.ID
	}
	renderer := pdf.NewRenderer(log)
	renderer.FontFamily = metrics.Family()
	renderer.Compress = g.options.Compression
	err = renderer.Render(pages, w, pdf.RenderOptions{
		Title:        title,
		Author:       g.options.Author,
		Subject:      g.options.Subject,
		Keywords:     g.options.Keywords,
		Creator:      g.options.Creator,
		Producer:     g.options.Producer,
		CreationDate: g.creationDate(inv),
	})
	if err != nil {
		return 0, &RenderError{Section: stageSerialize, Err: err}
	}

	log.Debug("invoice rendered",
		zap.Int("pages", len(pages)),
		zap.Int("items", len(inv.Items)),
	)
	return len(pages), nil
}
