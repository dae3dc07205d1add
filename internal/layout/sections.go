package layout

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gompdf/invoicepdf/internal/pagination"
	"github.com/gompdf/invoicepdf/internal/text"
	"github.com/gompdf/invoicepdf/pkg/invoice"
)

// Section names, used in logs and errors
const (
	SectionTitle   = "title"
	SectionParties = "parties"
	SectionTable   = "items"
	SectionTotals  = "totals"
	SectionNotes   = "notes"
	SectionFooter  = "footer"
)

// Every section renderer computes its height before drawing, asks the
// controller for the space and only then emits primitives. Each returns the
// vertical space it consumed.

func (e *Engine) wrap(s string, maxWidth float64, weight text.Weight, size float64) []string {
	return text.Wrap(e.metrics, s, maxWidth, weight, size)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// titleHeight returns the fixed height of the title and metadata block
func (e *Engine) titleHeight() float64 {
	t := e.theme
	return max(t.TitleSize, 3*t.MetaLineHeight) + t.SectionGap
}

// renderTitle draws the document title with id, issue and due dates on the right
func (e *Engine) renderTitle(c *pagination.Controller, inv *invoice.Invoice) float64 {
	t := e.theme
	g := c.Geometry()
	height := e.titleHeight()
	c.EnsureSpace(height, nil)

	top := c.Y()
	title := t.style(t.TitleSize, t.TitleColor)
	title.Weight = text.Bold
	c.Text(g.Left(), top-t.TitleSize*ascentRatio, t.Labels.Title, title)

	label := t.style(t.LabelSize, t.LabelColor)
	label.Weight = text.Bold
	value := t.style(t.MetaSize, t.MetaColor)
	value.Align = pagination.AlignRight

	labelX := g.Left() + g.UsableWidth()/2
	meta := [][2]string{
		{t.Labels.ID, orPlaceholder(inv.ID)},
		{t.Labels.IssueDate, FormatDate(inv.IssueDate)},
		{t.Labels.DueDate, FormatDate(inv.DueDate)},
	}
	for i, kv := range meta {
		slot := top - float64(i)*t.MetaLineHeight
		c.Text(labelX, baseline(slot, t.MetaLineHeight, t.LabelSize), kv[0], label)
		c.Text(g.Right(), baseline(slot, t.MetaLineHeight, t.MetaSize), kv[1], value)
	}

	c.Advance(height)
	return height
}

// renderParties draws the seller and buyer blocks side by side. The block is
// placed as a whole.
func (e *Engine) renderParties(c *pagination.Controller, inv *invoice.Invoice) float64 {
	t := e.theme
	g := c.Geometry()
	half := g.UsableWidth() / 2

	left := e.wrap(orPlaceholder(inv.SellerInfo), half-8, text.Regular, t.BodySize)
	right := e.wrap(orPlaceholder(inv.BuyerInfo), half-8, text.Regular, t.BodySize)
	lines := max(len(left), len(right))
	height := t.MetaLineHeight + float64(lines)*t.PartyLineHeight + t.SectionGap
	c.EnsureSpace(height, nil)

	top := c.Y()
	label := t.style(t.LabelSize, t.LabelColor)
	label.Weight = text.Bold
	c.Text(g.Left(), baseline(top, t.MetaLineHeight, t.LabelSize), t.Labels.From, label)
	c.Text(g.Left()+half, baseline(top, t.MetaLineHeight, t.LabelSize), t.Labels.BillTo, label)

	body := t.style(t.BodySize, t.BodyColor)
	for i := 0; i < lines; i++ {
		slot := top - t.MetaLineHeight - float64(i)*t.PartyLineHeight
		y := baseline(slot, t.PartyLineHeight, t.BodySize)
		if i < len(left) {
			c.Text(g.Left(), y, left[i], body)
		}
		if i < len(right) {
			c.Text(g.Left()+half, y, right[i], body)
		}
	}

	c.Advance(height)
	return height
}

// drawTableHeader emits the column labels and the header rule at the cursor.
// The caller has already reserved the space.
func (e *Engine) drawTableHeader(c *pagination.Controller) float64 {
	t := e.theme
	g := c.Geometry()
	cols := t.columns(g)
	top := c.Y()

	st := t.style(t.LabelSize, t.HeaderLabelColor)
	st.Weight = text.Bold
	y := top - t.LabelSize*ascentRatio
	c.Text(cols[0].x, y, t.Labels.Description, st)

	st.Align = pagination.AlignRight
	c.Text(cols[1].right(t.CellPadding), y, t.Labels.Quantity, st)
	c.Text(cols[2].right(t.CellPadding), y, t.Labels.Rate, st)
	c.Text(cols[3].right(t.CellPadding), y, t.Labels.Amount, st)

	rule := top - t.HeaderRuleOffset
	c.Line(g.Left(), rule, g.Right(), rule, t.RuleThickness, t.RuleColor)

	c.Advance(t.HeaderHeight)
	return t.HeaderHeight
}

// repeatTableHeader starts a continuation page of the item table
func (e *Engine) repeatTableHeader(c *pagination.Controller) {
	t := e.theme
	st := t.style(t.ContinuationSize, pagination.Black)
	st.Weight = text.Bold
	c.Text(c.Geometry().Left(), c.Y()-t.ContinuationSize*ascentRatio, t.Labels.Title, st)
	c.Advance(t.ContinuationGap)
	e.drawTableHeader(c)
}

// itemRow is a line item prepared for placement
type itemRow struct {
	lines    []string
	quantity string
	rate     string
	amount   string
	height   float64
}

func (e *Engine) prepareRow(it invoice.LineItem, descWidth float64) itemRow {
	t := e.theme
	lines := e.wrap(orPlaceholder(it.Description), descWidth, text.Regular, t.BodySize)
	return itemRow{
		lines:    lines,
		quantity: FormatQuantity(it.Quantity),
		rate:     e.money.Format(invoice.ToNumber(it.Rate)),
		amount:   e.money.Format(it.Amount()),
		height:   float64(max(1, len(lines)))*t.RowLineHeight + t.RowGap,
	}
}

// renderTable draws the column header and one row per line item. Rows are
// never split; a row that does not fit moves to a new page that starts with
// the repeated header.
func (e *Engine) renderTable(c *pagination.Controller, inv *invoice.Invoice) float64 {
	t := e.theme
	g := c.Geometry()
	cols := t.columns(g)
	descWidth := cols[0].width - t.CellPadding

	rows := make([]itemRow, len(inv.Items))
	for i, it := range inv.Items {
		rows[i] = e.prepareRow(it, descWidth)
	}

	consumed := 0.0
	need := t.HeaderHeight
	if len(rows) > 0 {
		// keep the header with the first row
		need += rows[0].height
	}
	c.EnsureSpace(need, nil)
	consumed += e.drawTableHeader(c)

	body := t.style(t.BodySize, t.BodyColor)
	num := body
	num.Align = pagination.AlignRight
	amount := t.style(t.BodySize, t.AmountColor)
	amount.Align = pagination.AlignRight
	amount.Weight = text.Bold

	for i, row := range rows {
		if c.EnsureSpace(row.height, e.repeatTableHeader) {
			consumed += t.ContinuationGap + t.HeaderHeight
			e.log.Debug("item table continued",
				zap.Int("row", i),
				zap.Int("page", c.Page().Number),
			)
		}
		top := c.Y()
		bottom := top - row.height

		if i%2 == 1 {
			c.FillRect(g.Left(), bottom, g.UsableWidth(), row.height, t.RowFill)
		}

		for li, line := range row.lines {
			slot := top - t.RowGap/2 - float64(li)*t.RowLineHeight
			c.Text(cols[0].x, baseline(slot, t.RowLineHeight, t.BodySize), line, body)
		}

		center := top - row.height/2
		y := center - t.BodySize*(ascentRatio-descentRatio)/2
		c.Text(cols[1].right(t.CellPadding), y, row.quantity, num)
		c.Text(cols[2].right(t.CellPadding), y, row.rate, num)
		c.Text(cols[3].right(t.CellPadding), y, row.amount, amount)

		c.Line(g.Left(), bottom, g.Right(), bottom, t.SeparatorThickness, t.SeparatorColor)
		c.Advance(row.height)
		consumed += row.height
	}
	return consumed
}

// totalsHeight returns the fixed height of the totals block
func (e *Engine) totalsHeight() float64 {
	t := e.theme
	return t.TotalsPaddingTop + t.TotalsRuleGap + t.TotalsBottomGap
}

// renderTotals draws the rule, the TOTAL label and the grand total with the
// currency code.
func (e *Engine) renderTotals(c *pagination.Controller, inv *invoice.Invoice) float64 {
	t := e.theme
	g := c.Geometry()
	height := e.totalsHeight()
	c.EnsureSpace(height, nil)

	top := c.Y()
	rule := top - t.TotalsPaddingTop
	c.Line(g.Left(), rule, g.Right(), rule, t.RuleThickness, t.RuleColor)

	y := rule - t.TotalsRuleGap
	label := t.style(t.TotalsLabelSize, t.LabelColor)
	label.Weight = text.Bold
	c.Text(g.Right()-t.TotalsLabelOffset, y, t.Labels.Total, label)

	value := t.style(t.TotalsValueSize, t.TotalsValueColor)
	value.Weight = text.Bold
	value.Align = pagination.AlignRight
	c.Text(g.Right(), y, e.money.Total(inv.Total(), inv.CurrencyCode()), value)

	c.Advance(height)
	return height
}

// renderNotes draws the notes header once followed by the wrapped lines.
// Lines may continue on new pages; the header is not repeated.
func (e *Engine) renderNotes(c *pagination.Controller, inv *invoice.Invoice) float64 {
	if strings.TrimSpace(inv.Notes) == "" {
		return 0
	}
	t := e.theme
	g := c.Geometry()
	lines := e.wrap(inv.Notes, g.UsableWidth(), text.Regular, t.BodySize)

	// the header never ends a page on its own
	c.EnsureSpace(t.NotesLabelGap+t.NotesLineHeight, nil)
	label := t.style(t.LabelSize, t.LabelColor)
	label.Weight = text.Bold
	c.Text(g.Left(), baseline(c.Y(), t.NotesLabelGap, t.LabelSize), t.Labels.Notes, label)
	c.Advance(t.NotesLabelGap)
	consumed := t.NotesLabelGap

	body := t.style(t.BodySize, t.BodyColor)
	for _, line := range lines {
		c.EnsureSpace(t.NotesLineHeight, nil)
		c.Text(g.Left(), baseline(c.Y(), t.NotesLineHeight, t.BodySize), line, body)
		c.Advance(t.NotesLineHeight)
		consumed += t.NotesLineHeight
	}
	return consumed
}

// footerText returns the page label, e.g. "Page 1 of 2"
func (e *Engine) footerText(page, total int) string {
	return fmt.Sprintf(e.theme.Labels.PageFormat, page, total)
}

// stampFooter centers the page label on the bottom margin
func (e *Engine) stampFooter(c *pagination.Controller, page *pagination.Page, total int) {
	t := e.theme
	s := e.footerText(page.Number, total)
	w := e.metrics.Width(s, text.Regular, t.FooterSize)
	c.TextOn(page, page.Width/2-w/2, c.Geometry().Margin.Bottom, s, t.style(t.FooterSize, t.FooterColor))
}
