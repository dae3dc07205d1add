// Package invoice holds the input record rendered by the engine.
//
// Values are decoded by the caller (see the JSON tags) and treated as
// immutable while a document is being produced. Numeric and date fields are
// tolerant: anything that cannot be understood degrades to "absent" instead of
// failing, so every syntactically valid record can be rendered.
package invoice

// DefaultCurrency is used when an invoice carries no currency code.
const DefaultCurrency = "USD"

// Invoice represents a complete invoice record
type Invoice struct {
	ID         string     `json:"id"`
	IssueDate  Date       `json:"date"`
	DueDate    Date       `json:"due_date"`
	SellerInfo string     `json:"seller_info"`
	BuyerInfo  string     `json:"buyer_info"`
	Currency   string     `json:"currency"`
	Notes      string     `json:"notes"`
	Items      []LineItem `json:"items"`
}

// LineItem represents one billable row. The amount is derived, never stored.
type LineItem struct {
	Description string `json:"description"`
	Quantity    Number `json:"quantity"`
	Rate        Number `json:"rate"`
}

// Amount returns quantity * rate with absent values treated as zero.
func (li LineItem) Amount() float64 {
	return ToNumber(li.Quantity) * ToNumber(li.Rate)
}

// CurrencyCode returns the invoice currency or DefaultCurrency when unset.
func (inv *Invoice) CurrencyCode() string {
	if inv == nil || inv.Currency == "" {
		return DefaultCurrency
	}
	return inv.Currency
}

// Total sums the line amounts in input order with a single left-to-right
// accumulation.
func (inv *Invoice) Total() float64 {
	if inv == nil {
		return 0
	}
	total := 0.0
	for _, it := range inv.Items {
		total += it.Amount()
	}
	return total
}
