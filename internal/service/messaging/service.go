// Package messaging orchestrates one logical send: resolve the recipient,
// resolve the text, call the SMS gateway, and record the outcome. Transport
// failure is data here, not an error: it becomes a failed log entry that the
// operator can resend.
package messaging

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Markjohns1/sawarent-messaging/internal/gateway"
	"github.com/Markjohns1/sawarent-messaging/internal/metrics"
	"github.com/Markjohns1/sawarent-messaging/internal/model"
	"github.com/Markjohns1/sawarent-messaging/internal/render"
	"github.com/Markjohns1/sawarent-messaging/internal/repository"
	"github.com/Markjohns1/sawarent-messaging/internal/util"
	"go.uber.org/zap"
)

// Publisher emits a DispatchEvent after every log append. Best-effort: a
// publish failure never fails the dispatch.
type Publisher interface {
	Publish(ctx context.Context, ev model.DispatchEvent) error
}

type Service struct {
	templates repository.TemplatesRepository
	logs      repository.DispatchLogsRepository
	tenants   repository.TenantsRepository
	gw        gateway.Gateway
	events    Publisher // optional
	log       *zap.Logger
}

func New(
	templatesRepo repository.TemplatesRepository,
	logsRepo repository.DispatchLogsRepository,
	tenantsRepo repository.TenantsRepository,
	gw gateway.Gateway,
	events Publisher,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		templates: templatesRepo,
		logs:      logsRepo,
		tenants:   tenantsRepo,
		gw:        gw,
		events:    events,
		log:       log,
	}
}

// SendRequest is one logical send. Exactly one of TemplateID-driven text or
// the literal Message must resolve to non-empty. Recipient is either a
// tenant id or a literal phone (+ optional display name).
type SendRequest struct {
	TenantID   int64
	Phone      string
	Name       string
	TemplateID string
	Message    string
	Bindings   render.Bindings
	Source     model.DispatchSource
}

// SendMessage resolves recipient and text, invokes the gateway, and writes
// exactly one log entry reflecting the outcome. Validation and not-found
// failures surface before any gateway call and write nothing.
func (s *Service) SendMessage(ctx context.Context, req SendRequest) (model.DispatchLog, error) {
	name, phone, tenant, err := s.resolveRecipient(ctx, req)
	if err != nil {
		return model.DispatchLog{}, err
	}

	source := req.Source
	text := strings.TrimSpace(req.Message)

	if req.TemplateID != "" {
		tpl, err := s.templates.GetByID(ctx, req.TemplateID)
		if err != nil {
			return model.DispatchLog{}, fmt.Errorf("template %s: %w", req.TemplateID, err)
		}

		bindings := render.Bindings{}
		if tenant != nil {
			bindings[render.TenantName] = tenant.FullName
			bindings[render.UnitNumber] = tenant.UnitNumber
		}
		for k, v := range req.Bindings {
			bindings[k] = v
		}

		text = render.Render(tpl.Body, bindings)
		if source == "" {
			source = model.SourceTemplate
		}
	}

	if source == "" {
		source = model.SourceManual
	}

	if text == "" {
		return model.DispatchLog{}, ErrEmptyMessage
	}

	return s.dispatch(ctx, name, phone, text, source)
}

// Resend repeats a previous entry's exact text to its original recipient,
// re-resolved through the tenant directory by phone. The original entry is
// never touched; the attempt lands as a new entry.
func (s *Service) Resend(ctx context.Context, logID string) (model.DispatchLog, error) {
	prev, err := s.logs.GetByID(ctx, logID)
	if err != nil {
		return model.DispatchLog{}, fmt.Errorf("log entry %s: %w", logID, err)
	}

	tenant, err := s.tenants.GetByPhone(ctx, prev.RecipientPhone)
	if err != nil {
		return model.DispatchLog{}, fmt.Errorf("recipient %s: %w", prev.RecipientPhone, err)
	}

	return s.dispatch(ctx, tenant.FullName, tenant.Phone, prev.Message, model.SourceResend)
}

// ListLogs lists dispatch history most-recent-first, optionally filtered.
func (s *Service) ListLogs(ctx context.Context, filter model.StatusFilter) ([]model.DispatchLog, error) {
	return s.logs.List(ctx, filter)
}

func (s *Service) DeleteLog(ctx context.Context, id string) error {
	if err := s.logs.DeleteOne(ctx, id); err != nil {
		return fmt.Errorf("log entry %s: %w", id, err)
	}
	return nil
}

func (s *Service) ClearLogs(ctx context.Context) error {
	return s.logs.ClearAll(ctx)
}

// resolveRecipient prefers the tenant directory; a literal phone is the
// escape hatch. Unknown tenant ids abort before any side effect.
func (s *Service) resolveRecipient(ctx context.Context, req SendRequest) (name, phone string, tenant *model.Tenant, err error) {
	if req.TenantID > 0 {
		t, err := s.tenants.GetByID(ctx, req.TenantID)
		if err != nil {
			return "", "", nil, fmt.Errorf("tenant %d: %w", req.TenantID, err)
		}
		return t.FullName, t.Phone, t, nil
	}

	phone = util.NormalizePhone(req.Phone)
	if phone == "" {
		return "", "", nil, ErrNoRecipient
	}
	return strings.TrimSpace(req.Name), phone, nil, nil
}

// dispatch is the send + record step shared by every path. The gateway
// outcome decides the status; both outcomes append.
func (s *Service) dispatch(ctx context.Context, name, phone, text string, source model.DispatchSource) (model.DispatchLog, error) {
	entry := model.DispatchLog{
		RecipientName:  name,
		RecipientPhone: phone,
		Message:        text,
		Source:         source,
		SentAt:         time.Now(),
	}

	if sendErr := s.gw.Send(ctx, phone, text); sendErr != nil {
		entry.Status = model.StatusFailed
		entry.Error = sendErr.Error()
		s.log.Warn("sms send failed",
			zap.String("phone", phone),
			zap.String("source", source.String()),
			zap.Error(sendErr),
		)
	} else {
		entry.Status = model.StatusSent
	}

	stored, err := s.logs.Append(ctx, entry)
	if err != nil {
		return model.DispatchLog{}, fmt.Errorf("append log: %w", err)
	}
	stored.Error = entry.Error

	metrics.DispatchTotal.WithLabelValues(stored.Status.String(), source.String()).Inc()

	if s.events != nil {
		ev := model.DispatchEvent{
			ID:     stored.ID,
			Phone:  stored.RecipientPhone,
			Status: stored.Status,
			Source: stored.Source,
			SentAt: stored.SentAt,
		}
		if err := s.events.Publish(ctx, ev); err != nil {
			s.log.Warn("dispatch event publish failed", zap.String("id", stored.ID), zap.Error(err))
		}
	}

	return stored, nil
}

// ReceiptDetails carries the payment facts bound into a receipt message.
type ReceiptDetails struct {
	Amount               string
	PaymentDate          string
	RemainingAmount      string
	TransactionReference string
}

// SendReceipt sends a payment receipt to a tenant using the first active
// formal receipt template, falling back to a built-in body.
func (s *Service) SendReceipt(ctx context.Context, tenantID int64, d ReceiptDetails) (model.DispatchLog, error) {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return model.DispatchLog{}, fmt.Errorf("tenant %d: %w", tenantID, err)
	}

	ref := d.TransactionReference
	if ref == "" {
		ref = "N/A"
	}

	bindings := render.Bindings{
		render.TenantName:           tenant.FullName,
		render.UnitNumber:           tenant.UnitNumber,
		render.Amount:               d.Amount,
		render.PaymentDate:          d.PaymentDate,
		render.RemainingAmount:      d.RemainingAmount,
		render.TransactionReference: ref,
	}

	var text string
	if tpl, err := s.templates.FirstActive(ctx, model.CategoryReceipt, "formal"); err == nil {
		text = render.Render(tpl.Body, bindings)
	} else {
		text = fmt.Sprintf("Receipt: Payment of KES %s received for Unit %s on %s.", d.Amount, tenant.UnitNumber, d.PaymentDate)
		if d.RemainingAmount != "" && d.RemainingAmount != "0" {
			text += fmt.Sprintf(" Remaining balance: KES %s.", d.RemainingAmount)
		}
	}

	return s.dispatch(ctx, tenant.FullName, tenant.Phone, text, model.SourceReceipt)
}

// SendReminder sends a rent reminder. An empty remaining amount falls back
// to the tenant's expected rent.
func (s *Service) SendReminder(ctx context.Context, tenantID int64, remaining string) (model.DispatchLog, error) {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return model.DispatchLog{}, fmt.Errorf("tenant %d: %w", tenantID, err)
	}

	if remaining == "" {
		remaining = strconv.FormatFloat(tenant.ExpectedRent, 'f', -1, 64)
	}

	bindings := render.Bindings{
		render.TenantName:      tenant.FullName,
		render.UnitNumber:      tenant.UnitNumber,
		render.Amount:          remaining,
		render.RemainingAmount: remaining,
	}

	var text string
	if tpl, err := s.templates.FirstActive(ctx, model.CategoryReminder, ""); err == nil {
		text = render.Render(tpl.Body, bindings)
	} else {
		text = fmt.Sprintf("Reminder: Rent of KES %s is due for Unit %s.", remaining, tenant.UnitNumber)
	}

	return s.dispatch(ctx, tenant.FullName, tenant.Phone, text, model.SourceReminder)
}
