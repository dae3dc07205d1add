package layout

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gompdf/invoicepdf/pkg/invoice"
)

// dateLayout renders e.g. "Oct 19, 2025"
const dateLayout = "Jan 02, 2006"

// Placeholder is printed for absent values
const Placeholder = "-"

// FormatDate renders a known date as "Oct 19, 2025" in UTC and an unknown one
// as the placeholder.
func FormatDate(d invoice.Date) string {
	if !d.Valid || d.Time.IsZero() {
		return Placeholder
	}
	return d.Time.UTC().Format(dateLayout)
}

// Filename suggests a download name derived from the issue date
func Filename(d invoice.Date) string {
	name := strings.ReplaceAll(FormatDate(d), ", ", "-")
	name = strings.ReplaceAll(name, " ", "-")
	return "invoice-" + name + ".pdf"
}

// FormatQuantity prints the quantity as entered, or the placeholder
func FormatQuantity(n invoice.Number) string {
	if !n.Valid {
		return Placeholder
	}
	return n.String()
}

// MoneyFormatter prints amounts with digit grouping and exactly two decimals
type MoneyFormatter struct {
	p *message.Printer
}

// NewMoneyFormatter creates a formatter using English grouping rules
func NewMoneyFormatter() *MoneyFormatter {
	return &MoneyFormatter{p: message.NewPrinter(language.English)}
}

// Format renders v, e.g. 1234.5 as "1,234.50"
func (f *MoneyFormatter) Format(v float64) string {
	if v == 0 {
		// avoids "-0.00"
		v = 0
	}
	return f.p.Sprint(number.Decimal(v, number.Scale(2)))
}

// Total renders the totals line value, e.g. "650.00 EUR"
func (f *MoneyFormatter) Total(v float64, currency string) string {
	return f.Format(v) + " " + currency
}
