package invoicepdf

import (
	"github.com/gompdf/invoicepdf/pkg/api"
	"github.com/gompdf/invoicepdf/pkg/invoice"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Document = api.Document
type Source = api.Source
type RenderError = api.RenderError
type PageOrientation = api.PageOrientation

type Invoice = invoice.Invoice
type LineItem = invoice.LineItem
type Number = invoice.Number
type Date = invoice.Date

func New() *Generator                           { return api.New() }
func NewWithOptions(options Options) *Generator { return api.NewWithOptions(options) }
func NewWith(opts ...Option) *Generator         { return api.NewWith(opts...) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

var (
	ErrInvoiceNotFound = api.ErrInvoiceNotFound
	ErrRenderFailed    = api.ErrRenderFailed
)

var (
	NewNumber = invoice.NewNumber
	NewDate   = invoice.NewDate
	ParseDate = invoice.ParseDate
)

var (
	WithPageSize        = api.WithPageSize
	WithMargins         = api.WithMargins
	WithFooterHeight    = api.WithFooterHeight
	WithFontFamily      = api.WithFontFamily
	WithCompression     = api.WithCompression
	WithTitle           = api.WithTitle
	WithAuthor          = api.WithAuthor
	WithSubject         = api.WithSubject
	WithKeywords        = api.WithKeywords
	WithCreator         = api.WithCreator
	WithCreationDate    = api.WithCreationDate
	WithLogger          = api.WithLogger
	WithPageSizeA4      = api.WithPageSizeA4
	WithPageSizeLetter  = api.WithPageSizeLetter
	WithPageSizeLegal   = api.WithPageSizeLegal
	WithPageOrientation = api.WithPageOrientation
)

const (
	PageSizeA4Width      = api.PageSizeA4Width
	PageSizeA4Height     = api.PageSizeA4Height
	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape
)
