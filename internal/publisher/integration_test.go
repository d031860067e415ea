//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"video_history/internal/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) config(name string) Config {
	return Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-" + name,
		RoutingKey: "test-routing-key-" + name,
		QueueName:  "test-queue-" + name,
	}
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	pub, err := NewRabbitMQ(s.config("connection"), s.logger)
	s.NoError(err)
	s.NotNil(pub)

	s.NoError(pub.Close())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishVideo() {
	cfg := s.config("video")
	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	record := &domain.VideoRecord{
		Observation: domain.Observation{
			URL:       "https://youtube.com/watch?v=AAAAAAAAAAA",
			Title:     "Foo",
			ScrapedAt: "20150101000000",
		},
		RemovalAt: "20160101000000",
		History: []domain.Observation{
			{URL: "https://youtube.com/watch?v=AAAAAAAAAAA", Status: "removed"},
			{URL: "https://youtube.com/watch?v=AAAAAAAAAAA", Title: "Foo"},
		},
	}

	s.Require().NoError(pub.PublishVideo(s.ctx, record))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal("application/json", msg.ContentType)
	s.Equal(domain.PipelineArchive, msg.Type)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)

	var received RecordMessage
	s.Require().NoError(json.Unmarshal(msg.Body, &received))
	s.Equal(domain.PipelineArchive, received.Pipeline)
	s.False(received.Timestamp.IsZero())

	var got domain.VideoRecord
	s.Require().NoError(json.Unmarshal(received.Record, &got))
	s.Equal("Foo", got.Title)
	s.Equal("20160101000000", got.RemovalAt)
	s.Len(got.History, 2)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishEngagement() {
	cfg := s.config("engagement")
	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	engagement := &domain.Engagement{URL: "https://youtube.com/watch?v=AAAAAAAAAAA", ShareCount: 4}
	s.Require().NoError(pub.PublishEngagement(s.ctx, engagement))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	var received RecordMessage
	s.Require().NoError(json.Unmarshal(msg.Body, &received))
	s.Equal(domain.PipelineEngagement, received.Pipeline)

	var got domain.Engagement
	s.Require().NoError(json.Unmarshal(received.Record, &got))
	s.Equal(*engagement, got)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}
