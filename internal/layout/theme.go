package layout

import (
	"github.com/gompdf/invoicepdf/internal/pagination"
)

// Approximate core font vertical metrics as a fraction of the font size
const (
	ascentRatio  = 0.80
	descentRatio = 0.20
)

// Labels holds the fixed strings printed on the document
type Labels struct {
	Title       string
	ID          string
	IssueDate   string
	DueDate     string
	From        string
	BillTo      string
	Description string
	Quantity    string
	Rate        string
	Amount      string
	Total       string
	Notes       string
	// PageFormat receives the page number and the page count
	PageFormat string
}

// Theme is the visual configuration of the invoice layout. Sizes are in
// points; colors use components in [0,1].
type Theme struct {
	Labels Labels

	TitleSize  float64
	TitleColor pagination.RGB

	LabelSize  float64
	LabelColor pagination.RGB

	MetaSize       float64
	MetaColor      pagination.RGB
	MetaLineHeight float64

	BodySize        float64
	BodyColor       pagination.RGB
	PartyLineHeight float64
	SectionGap      float64

	// Columns are the proportions of the usable width for description,
	// quantity, rate and amount.
	Columns          [4]float64
	CellPadding      float64
	HeaderLabelColor pagination.RGB
	HeaderRuleOffset float64
	HeaderHeight     float64
	RuleThickness    float64
	RuleColor        pagination.RGB

	RowLineHeight      float64
	RowGap             float64
	RowFill            pagination.RGB
	SeparatorThickness float64
	SeparatorColor     pagination.RGB
	AmountColor        pagination.RGB

	ContinuationSize float64
	ContinuationGap  float64

	TotalsPaddingTop  float64
	TotalsRuleGap     float64
	TotalsBottomGap   float64
	TotalsLabelSize   float64
	TotalsLabelOffset float64
	TotalsValueSize   float64
	TotalsValueColor  pagination.RGB

	NotesLabelGap   float64
	NotesLineHeight float64

	FooterSize  float64
	FooterColor pagination.RGB
}

// DefaultTheme returns the standard invoice look
func DefaultTheme() Theme {
	return Theme{
		Labels: Labels{
			Title:       "INVOICE",
			ID:          "ID",
			IssueDate:   "DATE",
			DueDate:     "DUE",
			From:        "FROM",
			BillTo:      "BILL TO",
			Description: "DESCRIPTION",
			Quantity:    "QTY",
			Rate:        "RATE",
			Amount:      "AMOUNT",
			Total:       "TOTAL",
			Notes:       "NOTES",
			PageFormat:  "Page %d of %d",
		},

		TitleSize:  42,
		TitleColor: pagination.Gray(0.11),

		LabelSize:  9,
		LabelColor: pagination.Gray(0.4),

		MetaSize:       10,
		MetaColor:      pagination.Gray(0.3),
		MetaLineHeight: 18,

		BodySize:        11,
		BodyColor:       pagination.Gray(0.2),
		PartyLineHeight: 14,
		SectionGap:      40,

		Columns:          [4]float64{0.56, 0.12, 0.16, 0.16},
		CellPadding:      6,
		HeaderLabelColor: pagination.Gray(0.35),
		HeaderRuleOffset: 12,
		HeaderHeight:     24,
		RuleThickness:    1.5,
		RuleColor:        pagination.Gray(0.7),

		RowLineHeight:      14,
		RowGap:             8,
		RowFill:            pagination.Gray(0.97),
		SeparatorThickness: 0.4,
		SeparatorColor:     pagination.Gray(0.88),
		AmountColor:        pagination.Gray(0.1),

		ContinuationSize: 14,
		ContinuationGap:  24,

		TotalsPaddingTop:  24,
		TotalsRuleGap:     32,
		TotalsBottomGap:   28,
		TotalsLabelSize:   10,
		TotalsLabelOffset: 280,
		TotalsValueSize:   20,
		TotalsValueColor:  pagination.Gray(0.05),

		NotesLabelGap:   18,
		NotesLineHeight: 14,

		FooterSize:  10,
		FooterColor: pagination.RGB{R: 0.45, G: 0.47, B: 0.53},
	}
}

// DefaultGeometry returns A4 with the standard invoice margins
func DefaultGeometry() pagination.Geometry {
	return pagination.Geometry{
		Size:         pagination.PageSizeA4,
		Margin:       pagination.Margins{Top: 72, Right: 72, Bottom: 52, Left: 72},
		FooterHeight: 28,
	}
}

// baseline returns the text baseline for a line slot of lineHeight whose top
// edge is at slotTop, centering the glyph box of a size font inside the slot.
func baseline(slotTop, lineHeight, size float64) float64 {
	return slotTop - lineHeight + (lineHeight-size)/2 + size*descentRatio
}

// column describes one table column
type column struct {
	x, width float64
}

// right returns the anchor for right aligned cell content
func (c column) right(padding float64) float64 {
	return c.x + c.width - padding
}

func (t Theme) columns(g pagination.Geometry) [4]column {
	var cols [4]column
	x := g.Left()
	usable := g.UsableWidth()
	for i, share := range t.Columns {
		cols[i] = column{x: x, width: usable * share}
		x += cols[i].width
	}
	return cols
}

func (t Theme) style(size float64, color pagination.RGB) pagination.TextStyle {
	return pagination.TextStyle{Size: size, Color: color}
}
