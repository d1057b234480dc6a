package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Markjohns1/sawarent-messaging/internal/config"
	"github.com/Markjohns1/sawarent-messaging/internal/gateway"
	"github.com/Markjohns1/sawarent-messaging/internal/http/middleware"
	"github.com/Markjohns1/sawarent-messaging/internal/metrics"
	"github.com/Markjohns1/sawarent-messaging/internal/repository"
	"github.com/Markjohns1/sawarent-messaging/internal/service/messaging"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct{ e *echo.Echo }

// NewServer wires repositories, the messaging service, and routes. The SMS
// gateway and the optional event publisher are supplied by cmd, which owns
// their lifecycle.
func NewServer(
	cfg config.Config,
	mysqlDB *sqlx.DB,
	rds *redis.Client,
	gw gateway.Gateway,
	events messaging.Publisher,
	log *zap.Logger,
) *Server {
	// repos (MySQL)
	templatesRepo := repository.NewTemplatesRepository(mysqlDB)
	logsRepo := repository.NewDispatchLogsRepository(mysqlDB)
	tenantsRepo := repository.NewTenantsRepository(mysqlDB)

	// service
	svc := messaging.New(templatesRepo, logsRepo, tenantsRepo, gw, events, log)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	authMW := middleware.APIKeyMiddleware(cfg.Auth.APIKeys)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:key:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	api := e.Group("/api/messaging", authMW, rlMW)

	api.GET("/templates", listTemplatesHandler(svc))
	api.POST("/templates", createTemplateHandler(svc))
	api.PUT("/templates/:id", updateTemplateHandler(svc))
	api.DELETE("/templates/:id", deleteTemplateHandler(svc))
	api.POST("/templates/preview", previewTemplateHandler(svc))

	api.POST("/send-sms", sendSMSHandler(svc))
	api.POST("/sms-logs/:id/resend", resendHandler(svc))
	api.GET("/sms-logs", listLogsHandler(svc))
	api.DELETE("/sms-logs/:id", deleteLogHandler(svc))
	api.DELETE("/sms-logs", clearLogsHandler(svc))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

// jsonError maps service errors onto the API's status codes.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, messaging.ErrEmptyMessage),
		errors.Is(err, messaging.ErrNoRecipient),
		errors.Is(err, messaging.ErrEmptyTemplateName),
		errors.Is(err, messaging.ErrEmptyTemplateBody),
		errors.Is(err, messaging.ErrInvalidCategory):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
