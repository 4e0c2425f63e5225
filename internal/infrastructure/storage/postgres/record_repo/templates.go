package record_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/templates"
	"fieldserve/internal/infrastructure/storage/postgres"
)

const templatesTable = "quote_templates"

// Compile-time check that TemplateRepo implements templates.Repository.
var _ templates.Repository = (*TemplateRepo)(nil)

// TemplateRepo implements templates.Repository.
type TemplateRepo struct {
	*BaseRecordRepo[*templates.Template]
}

// NewTemplateRepo creates a new template repository.
func NewTemplateRepo(txm *postgres.TxManager) *TemplateRepo {
	return &TemplateRepo{
		BaseRecordRepo: NewBaseRecordRepo[*templates.Template](
			txm,
			templatesTable,
			postgres.ExtractDBColumns[templates.Template](),
			[]string{"name", "subject"},
			func() *templates.Template { return &templates.Template{} },
		),
	}
}

// GetDefaultForType retrieves the default template for a quote type.
func (r *TemplateRepo) GetDefaultForType(ctx context.Context, quoteType string) (*templates.Template, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"quote_type": quoteType}).
		Where(squirrel.Eq{"is_default": true}).
		Limit(1)

	tpl, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("default template", quoteType)
		}
		return nil, err
	}

	return tpl, nil
}

// ClearDefault unsets the default flag on all templates of a quote type.
func (r *TemplateRepo) ClearDefault(ctx context.Context, quoteType string) error {
	q := r.Builder().
		Update(templatesTable).
		Set("is_default", false).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"quote_type": quoteType}).
		Where(squirrel.Eq{"is_default": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build clear default: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear default: %w", err)
	}

	return nil
}

// SetDefault sets the default flag on one template.
func (r *TemplateRepo) SetDefault(ctx context.Context, templateID id.ID) error {
	q := r.Builder().
		Update(templatesTable).
		Set("is_default", true).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": templateID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set default: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(templatesTable, templateID.String())
	}

	return nil
}
