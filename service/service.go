package service

import (
	"context"
	"fmt"
	"net/http"

	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"fulfillment/db"
	"fulfillment/dedup"
	fulfillmentHttp "fulfillment/http"
	"fulfillment/message"
	"fulfillment/message/command"
	"fulfillment/message/event"
	"fulfillment/message/outbox"
	"fulfillment/observability"
	"fulfillment/pkg/log"
	"fulfillment/search"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	asyncPublisher  *message.AsyncPublisher
	port            int
}

func New(
	kafkaBrokers []string,
	redisClient *redis.Client,
	conn *db.DB,
	indexer search.Indexer,
	port int,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	var brokerPublisher watermillMessage.Publisher
	brokerPublisher = message.NewKafkaPublisher(kafkaBrokers, watermillLogger)
	brokerPublisher = observability.TracingPublisherDecorator{Publisher: brokerPublisher}
	brokerPublisher = log.CorrelationPublisherDecorator{Publisher: brokerPublisher}

	// consumers and the outbox forwarder publish synchronously; only the
	// payment flow goes through the async buffer
	asyncPublisher := message.NewAsyncPublisher(brokerPublisher, 256, watermillLogger)

	eventBus := event.NewBus(brokerPublisher)
	paymentEventBus := event.NewBus(asyncPublisher)
	commandBus := command.NewCommandBus(brokerPublisher)

	orderRepo := db.NewOrderRepository(conn)
	productRepo := db.NewProductRepository(conn)
	failureRepo := db.NewFailureRepository(conn)

	registry := dedup.NewRedisRegistry(redisClient, dedup.DefaultTTL)

	metricsRegistry := prometheus.NewRegistry()
	metrics := observability.NewConsumerMetrics(metricsRegistry)

	eventsHandler := event.NewHandler(productRepo, failureRepo, registry, eventBus, metrics)
	commandsHandler := command.NewHandler(eventBus, orderRepo)

	eventProcessorConfig := event.NewProcessorConfig(
		func(consumerGroup string, partitions int32) (watermillMessage.Subscriber, error) {
			return message.NewKafkaSubscriber(kafkaBrokers, consumerGroup, partitions, watermillLogger)
		},
		watermillLogger,
	)
	commandProcessorConfig := command.NewCommandProcessorConfig(
		func(consumerGroup string) (watermillMessage.Subscriber, error) {
			return message.NewKafkaSubscriber(kafkaBrokers, consumerGroup, 1, watermillLogger)
		},
		watermillLogger,
	)

	pgSubscriber := outbox.SubscribeForPGMessages(conn.Conn, watermillLogger)
	watermillRouter := message.NewWatermillRouter(
		pgSubscriber,
		brokerPublisher,
		eventProcessorConfig,
		commandProcessorConfig,
		eventsHandler,
		commandsHandler,
		watermillLogger,
	)

	echoRouter := fulfillmentHttp.NewHttpRouter(
		paymentEventBus,
		commandBus,
		orderRepo,
		productRepo,
		failureRepo,
		search.NewLoggingIndexer(indexer),
		metricsRegistry,
	)

	return Service{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		asyncPublisher:  asyncPublisher,
		port:            port,
	}
}

func (s Service) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// the service is not healthy until the consumers are running
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(fmt.Sprintf(":%d", s.port))
		if err != nil && err != http.ErrServerClosed {
			return err
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()

		err := s.echoRouter.Shutdown(context.Background())

		// drains buffered facts before the process exits
		if closeErr := s.asyncPublisher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}

		return err
	})

	return errgrp.Wait()
}
