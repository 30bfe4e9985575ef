package app

import (
	"context"
	"strings"
	"time"

	"eduledger/internal/messaging/kafka"
	"eduledger/internal/messaging/kafka/producer"
	"eduledger/internal/shared/connection"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunWorker drains the outbox to Kafka until the context is cancelled.
func RunWorker(ctx context.Context) error {
	_ = godotenv.Load()

	db, err := connection.ConnectGORMWithRetry(
		env("DB_HOST", "localhost"),
		env("DB_USER", "postgres"),
		env("DB_PASSWORD", "postgres"),
		env("DB_NAME", "eduledger"),
		env("DB_PORT", "5432"),
		env("DB_SSLMODE", "disable"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	brokers := strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ",")
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	defer writer.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	producer.ProcessOutboxEvents(ctx, outboxRepo, writer, zap.L(), 3*time.Second)
	return nil
}
