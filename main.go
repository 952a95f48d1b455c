package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"fulfillment/db"
	"fulfillment/observability"
	"fulfillment/pkg/log"
	"fulfillment/search"
	"fulfillment/service"
)

func main() {
	log.Init(logrus.InfoLevel)

	kafkaBrokers := strings.Split(envOr("KAFKA_ADDR", "localhost:9092"), ",")

	port, err := strconv.Atoi(envOr("PORT", "8080"))
	if err != nil {
		logrus.WithError(err).Panic("invalid PORT")
	}

	conn, err := db.NewDBConn(os.Getenv("POSTGRES_URL"))
	if err != nil {
		logrus.WithError(err).Panic("failed to connect to postgres")
	}
	defer conn.Close()
	conn.MigrateSchema()

	redisClient := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	defer redisClient.Close()

	tp := observability.ConfigureTraceProvider()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = service.New(
		kafkaBrokers,
		redisClient,
		&conn,
		search.NewMemoryIndexer(),
		port,
	).Run(ctx)
	if err != nil {
		logrus.WithError(err).Error("service stopped")
	}

	if tp != nil {
		if err := tp.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Error("failed to shut down trace provider")
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
