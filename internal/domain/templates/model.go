// Package templates provides the email templates used when quotes are sent.
package templates

import (
	"context"
	"strings"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/entity"
)

// Template is a stored quote email template. QuoteType scopes the template
// to one quote kind; at most one template per type is the default.
type Template struct {
	entity.BaseRecord

	Name      string `db:"name" json:"name"`
	QuoteType string `db:"quote_type" json:"quoteType"`
	Subject   string `db:"subject" json:"subject"`
	Body      string `db:"body" json:"body"`
	IsDefault bool   `db:"is_default" json:"isDefault"`
}

// NewTemplate creates a new template.
func NewTemplate(name, quoteType string) *Template {
	return &Template{
		BaseRecord: entity.NewBaseRecord(),
		Name:       name,
		QuoteType:  quoteType,
	}
}

// Validate implements entity.Validatable.
func (t *Template) Validate(ctx context.Context) error {
	if t.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if t.QuoteType == "" {
		return apperror.NewValidation("quote type is required").
			WithDetail("field", "quoteType")
	}
	return nil
}

// Vars holds the substitution values available to templates.
type Vars struct {
	CustomerName string
	QuoteNumber  string
	TotalAmount  string // formatted with two decimals
	ConfirmURL   string
	CompanyName  string
}

// Render substitutes {{placeholders}} in subject and body.
func (t *Template) Render(v Vars) (subject, body string) {
	r := strings.NewReplacer(
		"{{customer_name}}", v.CustomerName,
		"{{quote_number}}", v.QuoteNumber,
		"{{total_amount}}", v.TotalAmount,
		"{{confirm_url}}", v.ConfirmURL,
		"{{company_name}}", v.CompanyName,
	)
	return r.Replace(t.Subject), r.Replace(t.Body)
}

// Fallback returns the built-in template used when no stored default
// exists. Only the preview path may fall back to it; sending requires a
// stored default.
func Fallback(quoteType string) *Template {
	return &Template{
		Name:      "built-in",
		QuoteType: quoteType,
		Subject:   "Your quote {{quote_number}} from {{company_name}}",
		Body: "Hi {{customer_name}},\n\n" +
			"Please find your quote {{quote_number}} attached. " +
			"The total comes to ${{total_amount}}.\n\n" +
			"You can accept this quote online: {{confirm_url}}\n\n" +
			"Thank you,\n{{company_name}}",
	}
}
