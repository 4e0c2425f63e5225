package dto

import "fieldserve/internal/domain/templates"

// CreateTemplateRequest for creating a quote email template.
type CreateTemplateRequest struct {
	Name      string `json:"name" binding:"required"`
	QuoteType string `json:"quoteType" binding:"required"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	IsDefault bool   `json:"isDefault"`
}

// ToEntity converts the request to a new Template.
func (r CreateTemplateRequest) ToEntity() *templates.Template {
	tpl := templates.NewTemplate(r.Name, r.QuoteType)
	tpl.Subject = r.Subject
	tpl.Body = r.Body
	tpl.IsDefault = r.IsDefault
	return tpl
}

// UpdateTemplateRequest for updating templates. Nil fields are left unchanged.
type UpdateTemplateRequest struct {
	Name    *string `json:"name"`
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields to the existing template.
func (r UpdateTemplateRequest) ApplyTo(tpl *templates.Template) {
	if r.Name != nil {
		tpl.Name = *r.Name
	}
	if r.Subject != nil {
		tpl.Subject = *r.Subject
	}
	if r.Body != nil {
		tpl.Body = *r.Body
	}
	tpl.SetVersion(r.Version)
}
