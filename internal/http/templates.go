package http

import (
	"net/http"
	"strings"

	"github.com/Markjohns1/sawarent-messaging/internal/model"
	"github.com/Markjohns1/sawarent-messaging/internal/render"
	"github.com/Markjohns1/sawarent-messaging/internal/repository"
	"github.com/Markjohns1/sawarent-messaging/internal/service/messaging"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type templateReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Variant  string `json:"variant"`
	Body     string `json:"body"`
	Active   *bool  `json:"active"`
}

func listTemplatesHandler(svc *messaging.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var f repository.TemplateFilter

		if raw := strings.TrimSpace(c.QueryParam("category")); raw != "" {
			cat, ok := model.ParseCategory(raw)
			if !ok {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid category"})
			}
			f.Category = cat
		}
		f.Variant = strings.TrimSpace(c.QueryParam("variant"))
		f.ActiveOnly = c.QueryParam("active") == "true"

		templates, err := svc.ListTemplates(c.Request().Context(), f)
		if err != nil {
			log.Errorf("list templates failed: %v", err)
			return jsonError(c, err)
		}

		return c.JSON(http.StatusOK, map[string]any{
			"count":     len(templates),
			"templates": templates,
		})
	}
}

func createTemplateHandler(svc *messaging.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req templateReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		tpl, err := svc.CreateTemplate(c.Request().Context(), messaging.TemplateInput{
			Name:     req.Name,
			Category: req.Category,
			Variant:  req.Variant,
			Body:     req.Body,
			Active:   req.Active,
		})
		if err != nil {
			return jsonError(c, err)
		}

		return c.JSON(http.StatusCreated, tpl)
	}
}

func updateTemplateHandler(svc *messaging.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req templateReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		tpl, err := svc.UpdateTemplate(c.Request().Context(), c.Param("id"), messaging.TemplateInput{
			Name:     req.Name,
			Category: req.Category,
			Variant:  req.Variant,
			Body:     req.Body,
			Active:   req.Active,
		})
		if err != nil {
			return jsonError(c, err)
		}

		return c.JSON(http.StatusOK, tpl)
	}
}

func deleteTemplateHandler(svc *messaging.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.DeleteTemplate(c.Request().Context(), c.Param("id")); err != nil {
			return jsonError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

type previewReq struct {
	Body     string          `json:"body"`
	Bindings render.Bindings `json:"bindings"`
}

// previewTemplateHandler renders a body with demonstration bindings so an
// operator can see the final text while authoring.
func previewTemplateHandler(svc *messaging.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req previewReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		if strings.TrimSpace(req.Body) == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "body is empty"})
		}

		return c.JSON(http.StatusOK, map[string]string{
			"preview": svc.PreviewTemplate(req.Body, req.Bindings),
		})
	}
}
