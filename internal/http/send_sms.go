package http

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Markjohns1/sawarent-messaging/internal/render"
	"github.com/Markjohns1/sawarent-messaging/internal/service/messaging"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type sendReq struct {
	TenantID   int64           `json:"tenant_id"`
	Phone      string          `json:"phone"`
	Name       string          `json:"name"`
	TemplateID string          `json:"template_id"`
	Message    string          `json:"message"`
	Bindings   render.Bindings `json:"placeholders"`
}

func sendSMSHandler(svc *messaging.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req sendReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		req.Message = strings.TrimSpace(req.Message)

		if req.TenantID <= 0 && strings.TrimSpace(req.Phone) == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "tenant_id or phone required"})
		}

		if utf8.RuneCountInString(req.Message) > 600 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "message too long"})
		}

		entry, err := svc.SendMessage(c.Request().Context(), messaging.SendRequest{
			TenantID:   req.TenantID,
			Phone:      req.Phone,
			Name:       req.Name,
			TemplateID: req.TemplateID,
			Message:    req.Message,
			Bindings:   req.Bindings,
		})
		if err != nil {
			log.Errorf("send sms failed: %v", err)
			return jsonError(c, err)
		}

		// Transport failure is not an HTTP error: the attempt was recorded
		// and the entry says so.
		return c.JSON(http.StatusCreated, entry)
	}
}

func resendHandler(svc *messaging.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		entry, err := svc.Resend(c.Request().Context(), c.Param("id"))
		if err != nil {
			log.Errorf("resend failed: %v", err)
			return jsonError(c, err)
		}

		return c.JSON(http.StatusCreated, entry)
	}
}
