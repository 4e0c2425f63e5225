package templates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tpl := &Template{
		Subject: "Quote {{quote_number}} for {{customer_name}}",
		Body:    "Total: ${{total_amount}}. Accept at {{confirm_url}}. - {{company_name}}",
	}

	subject, body := tpl.Render(Vars{
		CustomerName: "Dana Whitfield",
		QuoteNumber:  "QTE-2026-00042",
		TotalAmount:  "1250.00",
		ConfirmURL:   "https://quotes.example.com/q/abc123",
		CompanyName:  "FieldServe",
	})

	assert.Equal(t, "Quote QTE-2026-00042 for Dana Whitfield", subject)
	assert.Equal(t,
		"Total: $1250.00. Accept at https://quotes.example.com/q/abc123. - FieldServe",
		body)
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	tpl := &Template{Subject: "{{quote_number}} {{not_a_var}}", Body: ""}
	subject, _ := tpl.Render(Vars{QuoteNumber: "QTE-1"})
	assert.Equal(t, "QTE-1 {{not_a_var}}", subject)
}

func TestFallback(t *testing.T) {
	tpl := Fallback("inspection")
	require.NotNil(t, tpl)
	assert.Equal(t, "inspection", tpl.QuoteType)
	assert.False(t, tpl.IsDefault)

	subject, body := tpl.Render(Vars{
		CustomerName: "Dana",
		QuoteNumber:  "QTE-7",
		TotalAmount:  "300.00",
		ConfirmURL:   "https://example.com/q/t",
		CompanyName:  "FieldServe",
	})
	assert.NotContains(t, subject, "{{")
	assert.NotContains(t, body, "{{")
	assert.Contains(t, body, "QTE-7")
	assert.Contains(t, body, "$300.00")
}

func TestTemplateValidate(t *testing.T) {
	ctx := context.Background()

	tpl := NewTemplate("", "repair")
	require.Error(t, tpl.Validate(ctx))

	tpl = NewTemplate("Standard repair quote", "")
	require.Error(t, tpl.Validate(ctx))

	tpl = NewTemplate("Standard repair quote", "repair")
	require.NoError(t, tpl.Validate(ctx))
}
