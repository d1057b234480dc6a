package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Markjohns1/sawarent-messaging/internal/config"
	"github.com/Markjohns1/sawarent-messaging/internal/db"
	"github.com/Markjohns1/sawarent-messaging/internal/gateway"
	httpSrv "github.com/Markjohns1/sawarent-messaging/internal/http"
	"github.com/Markjohns1/sawarent-messaging/internal/kafka"
	"github.com/Markjohns1/sawarent-messaging/internal/logger"
	"github.com/Markjohns1/sawarent-messaging/internal/service/messaging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log := logger.Init(cfg.Log.Level)
		defer logger.Sync()

		mysqlDB, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer mysqlDB.Close()

		redisClient, err := db.NewRedisClient(db.RedisOpts{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		var gw gateway.Gateway
		switch cfg.Gateway.Mode {
		case "http":
			gw = gateway.NewHTTPGateway(
				cfg.Gateway.Name,
				cfg.Gateway.URL,
				cfg.Gateway.APIKey,
				cfg.Gateway.TimeoutMs,
				cfg.Gateway.FailThreshold,
				cfg.Gateway.OpenForMs,
			)
		default:
			gw = gateway.NewLogGateway(log)
		}

		var events messaging.Publisher
		if cfg.Kafka.Enabled {
			producer := kafka.NewProducerFromConfig(kafka.Config{
				Brokers:      cfg.Kafka.Brokers,
				Topic:        cfg.Kafka.Topic,
				WriteTimeout: cfg.Kafka.WriteTimeout,
			})
			defer func() { _ = producer.Close() }()
			events = producer
		}

		server := httpSrv.NewServer(cfg, mysqlDB, redisClient, gw, events, log)

		errCh := make(chan error, 1)
		go func() {
			log.Info("starting http", zap.String("addr", cfg.HTTP.Addr))
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Info("signal received, shutting down", zap.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil {
				log.Error("http server exited", zap.Error(err))
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}
