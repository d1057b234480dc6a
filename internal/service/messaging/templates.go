package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/Markjohns1/sawarent-messaging/internal/metrics"
	"github.com/Markjohns1/sawarent-messaging/internal/model"
	"github.com/Markjohns1/sawarent-messaging/internal/render"
	"github.com/Markjohns1/sawarent-messaging/internal/repository"
	"github.com/Markjohns1/sawarent-messaging/internal/util"
)

// TemplateInput carries the operator-mutable fields of a template.
type TemplateInput struct {
	Name     string
	Category string
	Variant  string
	Body     string
	Active   *bool // nil => keep/default true
}

func (in TemplateInput) validate() (model.TemplateCategory, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", ErrEmptyTemplateName
	}
	if strings.TrimSpace(in.Body) == "" {
		return "", ErrEmptyTemplateBody
	}

	cat, ok := model.ParseCategory(in.Category)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}
	return cat, nil
}

// CreateTemplate validates the input and stores a new template under a
// generated id.
func (s *Service) CreateTemplate(ctx context.Context, in TemplateInput) (model.Template, error) {
	cat, err := in.validate()
	if err != nil {
		return model.Template{}, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	tpl := model.Template{
		ID:       util.NewULID(),
		Name:     strings.TrimSpace(in.Name),
		Category: cat,
		Variant:  strings.TrimSpace(in.Variant),
		Body:     in.Body,
		Active:   active,
	}

	if err := s.templates.Insert(ctx, tpl); err != nil {
		return model.Template{}, fmt.Errorf("insert template: %w", err)
	}

	metrics.TemplateOpsTotal.WithLabelValues("create").Inc()

	return tpl, nil
}

// UpdateTemplate replaces the mutable fields of an existing template.
func (s *Service) UpdateTemplate(ctx context.Context, id string, in TemplateInput) (model.Template, error) {
	cat, err := in.validate()
	if err != nil {
		return model.Template{}, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	tpl := model.Template{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Category: cat,
		Variant:  strings.TrimSpace(in.Variant),
		Body:     in.Body,
		Active:   active,
	}

	if err := s.templates.Update(ctx, tpl); err != nil {
		return model.Template{}, fmt.Errorf("template %s: %w", id, err)
	}

	metrics.TemplateOpsTotal.WithLabelValues("update").Inc()

	return tpl, nil
}

// DeleteTemplate removes a template. Existing log entries keep their
// rendered text; nothing else is touched.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return fmt.Errorf("template %s: %w", id, err)
	}

	metrics.TemplateOpsTotal.WithLabelValues("delete").Inc()

	return nil
}

func (s *Service) ListTemplates(ctx context.Context, f repository.TemplateFilter) ([]model.Template, error) {
	return s.templates.List(ctx, f)
}

// PreviewTemplate renders a body with the fixed demonstration bindings,
// letting caller-supplied bindings override individual names. Used by the
// template-authoring surface; identical render path to real dispatch.
func (s *Service) PreviewTemplate(body string, overrides render.Bindings) string {
	bindings := render.PreviewBindings()
	for k, v := range overrides {
		bindings[k] = v
	}
	return render.Render(body, bindings)
}
