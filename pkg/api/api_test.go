package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gompdf/invoicepdf/pkg/invoice"
)

func item(desc string, qty, rate float64) invoice.LineItem {
	return invoice.LineItem{Description: desc, Quantity: invoice.NewNumber(qty), Rate: invoice.NewNumber(rate)}
}

func sampleInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:         "INV-001",
		IssueDate:  invoice.NewDate(time.Date(2025, time.October, 19, 0, 0, 0, 0, time.UTC)),
		DueDate:    invoice.NewDate(time.Date(2025, time.November, 2, 0, 0, 0, 0, time.UTC)),
		SellerInfo: "Studio North",
		BuyerInfo:  "Acme Corp",
		Currency:   "EUR",
		Items: []invoice.LineItem{
			item("Design work", 10, 50),
			item("A very long line-wrapping description that exceeds one line at the configured column width", 2, 75),
		},
	}
}

type mapSource map[string]*invoice.Invoice

func (m mapSource) Invoice(_ context.Context, id string) (*invoice.Invoice, error) {
	return m[id], nil
}

type failingSource struct{ err error }

func (f failingSource) Invoice(context.Context, string) (*invoice.Invoice, error) {
	return nil, f.err
}

func TestGenerate(t *testing.T) {
	doc, err := NewWith(WithCompression(false)).Generate(sampleInvoice())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF-")))
	assert.Equal(t, "invoice-Oct-19-2025.pdf", doc.Filename)
	assert.Equal(t, 1, doc.Pages)
	assert.Contains(t, string(doc.Bytes), "(650.00 EUR) Tj")
	assert.Contains(t, string(doc.Bytes), "(Page 1 of 1) Tj")
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := New()
	a, err := g.Generate(sampleInvoice())
	require.NoError(t, err)
	b, err := g.Generate(sampleInvoice())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a.Bytes, b.Bytes))
}

func TestGenerateWithoutIssueDate(t *testing.T) {
	inv := sampleInvoice()
	inv.IssueDate = invoice.Date{}

	doc, err := New().Generate(inv)
	require.NoError(t, err)
	assert.Equal(t, "invoice--.pdf", doc.Filename)

	again, err := New().Generate(inv)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(doc.Bytes, again.Bytes))
}

func TestGenerateManyPages(t *testing.T) {
	inv := sampleInvoice()
	for i := 0; i < 80; i++ {
		inv.Items = append(inv.Items, item(fmt.Sprintf("Item %d", i), 1, 10))
	}
	doc, err := New().Generate(inv)
	require.NoError(t, err)
	assert.Greater(t, doc.Pages, 1)
}

func TestGenerateNotFound(t *testing.T) {
	g := New()

	_, err := g.Generate(nil)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	_, err = g.Generate(&invoice.Invoice{})
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
	assert.False(t, errors.Is(err, ErrRenderFailed))
}

func TestGenerateTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().GenerateTo(&buf, sampleInvoice()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	assert.ErrorIs(t, New().GenerateTo(&buf, nil), ErrInvoiceNotFound)
	assert.Zero(t, buf.Len())
}

func TestGenerateByID(t *testing.T) {
	src := mapSource{"INV-001": sampleInvoice()}
	g := New()

	doc, err := g.GenerateByID(context.Background(), src, "INV-001")
	require.NoError(t, err)
	assert.Equal(t, "invoice-Oct-19-2025.pdf", doc.Filename)

	_, err = g.GenerateByID(context.Background(), src, "INV-404")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
	assert.Contains(t, err.Error(), "INV-404")

	_, err = g.GenerateByID(context.Background(), src, "  ")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestGenerateByIDUsesRequestedID(t *testing.T) {
	stored := sampleInvoice()
	stored.ID = ""
	doc, err := New().GenerateByID(context.Background(), mapSource{"INV-009": stored}, "INV-009")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes)
	assert.Empty(t, stored.ID)
}

func TestGenerateByIDSourceErrors(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := New().GenerateByID(context.Background(), failingSource{boom}, "INV-001")
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrInvoiceNotFound))

	_, err = New().GenerateByID(context.Background(), failingSource{ErrInvoiceNotFound}, "INV-001")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestRenderFailedUnknownFont(t *testing.T) {
	_, err := NewWith(WithFontFamily("NoSuchFont")).Generate(sampleInvoice())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRenderFailed)

	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, stageFonts, re.Section)
	assert.True(t, strings.HasPrefix(err.Error(), "rendering failed in fonts"))
}

func TestRenderFailedRowTallerThanPage(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = []invoice.LineItem{item(strings.Repeat("line\n", 80), 1, 1)}

	_, err := New().Generate(inv)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRenderFailed)

	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "items", re.Section)
}

func TestOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, PageSizeA4Width, o.PageWidth)
	assert.Equal(t, 52.0, o.MarginBottom)
	assert.Equal(t, 28.0, o.FooterHeight)

	g := New().WithOption(WithPageSizeLetter()).WithOption(WithPageOrientation(PageOrientationLandscape))
	w, h := g.Options().pageDimensions()
	assert.Equal(t, float64(PageSizeLetterHeight), w)
	assert.Equal(t, float64(PageSizeLetterWidth), h)

	doc, err := g.Generate(sampleInvoice())
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Pages)
}

func TestGenerateLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := NewWith(WithLogger(zap.New(core))).Generate(sampleInvoice())
	require.NoError(t, err)

	rendered := logs.FilterMessage("invoice rendered").All()
	require.Len(t, rendered, 1)
	assert.Equal(t, "INV-001", rendered[0].ContextMap()["invoice"])
	assert.NotZero(t, logs.FilterMessage("section placed").Len())
	assert.NotZero(t, logs.FilterMessage("page serialized").Len())
}
