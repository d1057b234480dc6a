package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	bindings := Bindings{
		TenantName: "John Doe",
		Amount:     "15,000",
		UnitNumber: "A101",
	}

	got := Render("Hi {tenant_name}, pay {amount} for {unit_number}", bindings)
	assert.Equal(t, "Hi John Doe, pay 15,000 for A101", got)
}

func TestRenderReplacesAllOccurrences(t *testing.T) {
	got := Render("{tenant_name} {tenant_name} {tenant_name}", Bindings{TenantName: "Jane"})
	assert.Equal(t, "Jane Jane Jane", got)
}

func TestRenderLeavesUnboundNamesVerbatim(t *testing.T) {
	got := Render("Dear {tenant_name}, ref {transaction_reference}", Bindings{TenantName: "Jane"})
	assert.Equal(t, "Dear Jane, ref {transaction_reference}", got)
}

func TestRenderIgnoresUnrecognizedTokens(t *testing.T) {
	b := Bindings{TenantName: "Jane", "landlord": "Bob"}
	got := Render("{landlord} says hi to {tenant_name} at {somewhere}", b)
	assert.Equal(t, "{landlord} says hi to Jane at {somewhere}", got)
}

func TestRenderIdempotent(t *testing.T) {
	b := Bindings{
		TenantName:      "John",
		Amount:          "1,200",
		RemainingAmount: "300",
	}
	body := "Hi {tenant_name}: {amount} due, {remaining_amount} left ({payment_date})"

	once := Render(body, b)
	twice := Render(once, b)
	assert.Equal(t, once, twice)
}

func TestRenderEmptyInputs(t *testing.T) {
	assert.Equal(t, "", Render("", Bindings{TenantName: "x"}))
	assert.Equal(t, "plain text", Render("plain text", nil))
}

func TestPreviewBindingsCoverEveryPlaceholder(t *testing.T) {
	pb := PreviewBindings()
	for _, name := range Placeholders {
		assert.Contains(t, pb, name)
		assert.NotEmpty(t, pb[name])
	}
}
