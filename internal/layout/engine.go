package layout

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gompdf/invoicepdf/internal/pagination"
	"github.com/gompdf/invoicepdf/internal/text"
	"github.com/gompdf/invoicepdf/pkg/invoice"
)

// ErrNoInvoice is returned when Layout is called without a record
var ErrNoInvoice = errors.New("layout: no invoice")

// SectionError reports an internal layout failure for a named section
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("layout %s: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// Options represents options for the layout engine
type Options struct {
	Geometry pagination.Geometry
	Theme    Theme
	Logger   *zap.Logger
}

// DefaultOptions returns A4 geometry with the default theme
func DefaultOptions() Options {
	return Options{
		Geometry: DefaultGeometry(),
		Theme:    DefaultTheme(),
	}
}

// Engine lays an invoice out into pages. An Engine holds its metrics
// provider and must not be shared between goroutines; create one per document.
type Engine struct {
	geom    pagination.Geometry
	theme   Theme
	metrics text.Metrics
	money   *MoneyFormatter
	log     *zap.Logger
}

// NewEngine creates a layout engine measuring text with m
func NewEngine(options Options, m text.Metrics) *Engine {
	log := options.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		geom:    options.Geometry,
		theme:   options.Theme,
		metrics: m,
		money:   NewMoneyFormatter(),
		log:     log,
	}
}

type section struct {
	name   string
	render func(*pagination.Controller, *invoice.Invoice) float64
}

// Layout renders the sections in document order, stamps the page footers
// and returns the finalized pages.
func (e *Engine) Layout(inv *invoice.Invoice) ([]*pagination.Page, error) {
	if inv == nil {
		return nil, ErrNoInvoice
	}

	c := pagination.NewController(e.geom, e.metrics, e.log)
	sections := []section{
		{SectionTitle, e.renderTitle},
		{SectionParties, e.renderParties},
		{SectionTable, e.renderTable},
		{SectionTotals, e.renderTotals},
		{SectionNotes, e.renderNotes},
	}
	for _, s := range sections {
		startPage := c.PageCount()
		height := s.render(c, inv)
		if err := c.Err(); err != nil {
			return nil, &SectionError{Section: s.name, Err: err}
		}
		e.log.Debug("section placed",
			zap.String("section", s.name),
			zap.Int("page", startPage),
			zap.Int("pages", c.PageCount()-startPage+1),
			zap.Float64("height", height),
			zap.Float64("y", c.Y()),
		)
	}

	pages, err := c.Finish(e.stampFooter)
	if err != nil {
		return nil, &SectionError{Section: SectionFooter, Err: err}
	}
	return pages, nil
}
