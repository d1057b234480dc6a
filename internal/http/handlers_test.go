package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Markjohns1/sawarent-messaging/internal/model"
	"github.com/Markjohns1/sawarent-messaging/internal/repository"
	"github.com/Markjohns1/sawarent-messaging/internal/service/messaging"
	"github.com/Markjohns1/sawarent-messaging/internal/util"
	echo "github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTemplates struct{ rows []model.Template }

func (m *memTemplates) Insert(_ context.Context, t model.Template) error {
	m.rows = append(m.rows, t)
	return nil
}

func (m *memTemplates) Update(_ context.Context, t model.Template) error {
	for i := range m.rows {
		if m.rows[i].ID == t.ID {
			m.rows[i] = t
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memTemplates) Delete(_ context.Context, id string) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memTemplates) GetByID(_ context.Context, id string) (*model.Template, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			t := m.rows[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memTemplates) List(_ context.Context, _ repository.TemplateFilter) ([]model.Template, error) {
	return append([]model.Template{}, m.rows...), nil
}

func (m *memTemplates) FirstActive(_ context.Context, _ model.TemplateCategory, _ string) (*model.Template, error) {
	return nil, repository.ErrNotFound
}

type memLogs struct{ rows []model.DispatchLog }

func (m *memLogs) Append(_ context.Context, e model.DispatchLog) (model.DispatchLog, error) {
	if e.ID == "" {
		e.ID = util.NewULID()
	}
	m.rows = append(m.rows, e)
	return e, nil
}

func (m *memLogs) GetByID(_ context.Context, id string) (*model.DispatchLog, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			e := m.rows[i]
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memLogs) List(_ context.Context, f model.StatusFilter) ([]model.DispatchLog, error) {
	out := []model.DispatchLog{}
	for _, e := range m.rows {
		if f == model.FilterSent && e.Status != model.StatusSent {
			continue
		}
		if f == model.FilterFailed && e.Status != model.StatusFailed {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memLogs) DeleteOne(_ context.Context, id string) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memLogs) ClearAll(_ context.Context) error {
	m.rows = nil
	return nil
}

type memTenants struct{ rows []model.Tenant }

func (m *memTenants) GetByID(_ context.Context, id int64) (*model.Tenant, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			t := m.rows[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memTenants) GetByPhone(_ context.Context, phone string) (*model.Tenant, error) {
	for i := range m.rows {
		if m.rows[i].Phone == phone {
			t := m.rows[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

type okGateway struct{}

func (okGateway) Name() string                         { return "ok" }
func (okGateway) Send(context.Context, string, string) error { return nil }

func newTestService() (*messaging.Service, *memLogs) {
	logs := &memLogs{}
	tenants := &memTenants{rows: []model.Tenant{
		{ID: 7, FullName: "John Doe", Phone: "+254700111222", UnitNumber: "A101", Active: true},
	}}
	svc := messaging.New(&memTemplates{}, logs, tenants, okGateway{}, nil, nil)
	return svc, logs
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	require.NoError(t, h(c))
	return rec
}

func TestSendSMSHandlerCreatesLogEntry(t *testing.T) {
	svc, logs := newTestService()

	rec := doJSON(t, sendSMSHandler(svc), http.MethodPost, "/api/messaging/send-sms",
		`{"tenant_id":7,"message":"hello"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var entry model.DispatchLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "sent", entry.Status.String())
	assert.Equal(t, "+254700111222", entry.RecipientPhone)
	require.Len(t, logs.rows, 1)
}

func TestSendSMSHandlerRejectsMissingRecipient(t *testing.T) {
	svc, _ := newTestService()

	rec := doJSON(t, sendSMSHandler(svc), http.MethodPost, "/api/messaging/send-sms",
		`{"message":"hello"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendSMSHandlerUnknownTenantIs404(t *testing.T) {
	svc, _ := newTestService()

	rec := doJSON(t, sendSMSHandler(svc), http.MethodPost, "/api/messaging/send-sms",
		`{"tenant_id":42,"message":"hello"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResendHandlerUnknownEntryIs404(t *testing.T) {
	svc, _ := newTestService()

	rec := doJSON(t, resendHandler(svc), http.MethodPost, "/api/messaging/sms-logs/NOPE/resend", "",
		"id", "NOPE")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListLogsHandlerInvalidFilter(t *testing.T) {
	svc, _ := newTestService()

	rec := doJSON(t, listLogsHandler(svc), http.MethodGet, "/api/messaging/sms-logs?status=pending", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTemplateCRUDHandlers(t *testing.T) {
	svc, _ := newTestService()

	rec := doJSON(t, createTemplateHandler(svc), http.MethodPost, "/api/messaging/templates",
		`{"name":"Welcome","category":"general","variant":"friendly","body":"Hi {tenant_name}"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tpl model.Template
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tpl))
	require.NotEmpty(t, tpl.ID)

	rec = doJSON(t, listTemplatesHandler(svc), http.MethodGet, "/api/messaging/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = doJSON(t, deleteTemplateHandler(svc), http.MethodDelete, "/api/messaging/templates/"+tpl.ID, "",
		"id", tpl.ID)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, deleteTemplateHandler(svc), http.MethodDelete, "/api/messaging/templates/"+tpl.ID, "",
		"id", tpl.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTemplateHandlerValidation(t *testing.T) {
	svc, _ := newTestService()

	rec := doJSON(t, createTemplateHandler(svc), http.MethodPost, "/api/messaging/templates",
		`{"name":"","body":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewTemplateHandler(t *testing.T) {
	svc, _ := newTestService()

	rec := doJSON(t, previewTemplateHandler(svc), http.MethodPost, "/api/messaging/templates/preview",
		`{"body":"Hi {tenant_name}, pay {amount} for {unit_number}"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hi John Doe, pay 15,000 for A101")
}

func TestClearLogsHandler(t *testing.T) {
	svc, logs := newTestService()
	logs.rows = append(logs.rows, model.DispatchLog{ID: "X", Status: model.StatusSent})

	rec := doJSON(t, clearLogsHandler(svc), http.MethodDelete, "/api/messaging/sms-logs", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, logs.rows)
}
