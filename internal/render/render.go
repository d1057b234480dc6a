// Package render expands {placeholder} tokens in template bodies.
package render

import "strings"

// Names recognized in template bodies. Tokens outside this set are never
// touched, whatever the binding set contains.
const (
	TenantName           = "tenant_name"
	UnitNumber           = "unit_number"
	Amount               = "amount"
	PaymentDate          = "payment_date"
	RemainingAmount      = "remaining_amount"
	TransactionReference = "transaction_reference"
)

// Placeholders lists every recognized placeholder name.
var Placeholders = []string{
	TenantName,
	UnitNumber,
	Amount,
	PaymentDate,
	RemainingAmount,
	TransactionReference,
}

// Bindings maps placeholder names to substitution values for one render.
type Bindings map[string]string

// Render replaces every occurrence of "{name}" in body with the bound value,
// for each recognized name present in bindings. Names without a binding stay
// verbatim, as do unrecognized tokens. Total: never fails.
func Render(body string, bindings Bindings) string {
	out := body
	for _, name := range Placeholders {
		v, ok := bindings[name]
		if !ok {
			continue
		}
		out = strings.ReplaceAll(out, "{"+name+"}", v)
	}

	return out
}

// PreviewBindings returns the fixed demonstration set used when rendering a
// template for authoring preview.
func PreviewBindings() Bindings {
	return Bindings{
		TenantName:           "John Doe",
		UnitNumber:           "A101",
		Amount:               "15,000",
		PaymentDate:          "01/09/2026",
		RemainingAmount:      "5,000",
		TransactionReference: "QWE123RTY4",
	}
}
