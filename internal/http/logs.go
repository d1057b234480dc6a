package http

import (
	"net/http"

	"github.com/Markjohns1/sawarent-messaging/internal/model"
	"github.com/Markjohns1/sawarent-messaging/internal/service/messaging"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func listLogsHandler(svc *messaging.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter, ok := model.ParseStatusFilter(c.QueryParam("status"))
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid status filter"})
		}

		logs, err := svc.ListLogs(c.Request().Context(), filter)
		if err != nil {
			log.Errorf("list sms logs failed: %v", err)
			return jsonError(c, err)
		}

		return c.JSON(http.StatusOK, map[string]any{
			"count":    len(logs),
			"sms_logs": logs,
		})
	}
}

func deleteLogHandler(svc *messaging.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.DeleteLog(c.Request().Context(), c.Param("id")); err != nil {
			return jsonError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func clearLogsHandler(svc *messaging.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.ClearLogs(c.Request().Context()); err != nil {
			log.Errorf("clear sms logs failed: %v", err)
			return jsonError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
