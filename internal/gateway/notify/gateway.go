package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/entities"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

const (
	initialInterval = 50 * time.Millisecond
	maxInterval     = 1 * time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

const headerEventID = "event_id"

type Config struct {
	CourierTopic  string
	CustomerTopic string
}

// Gateway публикует уведомления курьерам и покупателям в Kafka.
type Gateway struct {
	producer producer
	retrier  retrier
	cfg      Config
	now      func() time.Time
}

func New(producer producer, cfg Config) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		producer: producer,
		retrier:  backoff_adapter.New(retryConfig),
		cfg:      cfg,
		now:      time.Now,
	}
}

func (g *Gateway) NotifyCourier(ctx context.Context, courierID int64, order entities.Order, assignment entities.DeliveryAssignment) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(toCourierOffer(eventID, courierID, order, assignment))
	if err != nil {
		return fmt.Errorf("marshal courier offer: %w", err)
	}

	msg := newMessage(g.cfg.CourierTopic, strconv.FormatInt(courierID, 10), eventID, payload)

	err = g.executeWithMetrics(ctx, eventOrderOffered, msg)
	if err != nil {
		return fmt.Errorf("gateway notify, courier %d order %s: %w", courierID, order.ID, err)
	}
	return nil
}

func (g *Gateway) NotifyCustomer(ctx context.Context, orderID string, status entities.OrderStatusType) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(customerStatus{
		EventID:    eventID,
		Type:       eventOrderStatusChanged,
		OrderID:    orderID,
		Status:     status.String(),
		OccurredAt: g.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal customer status: %w", err)
	}

	// ключ по заказу сохраняет порядок статусов внутри партиции
	msg := newMessage(g.cfg.CustomerTopic, orderID, eventID, payload)

	err = g.executeWithMetrics(ctx, eventOrderStatusChanged, msg)
	if err != nil {
		return fmt.Errorf("gateway notify, order %s status %s: %w", orderID, status, err)
	}
	return nil
}

func newMessage(topic, key, eventID string, payload []byte) *sarama.ProducerMessage {
	return &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEventID), Value: []byte(eventID)},
		},
	}
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	retryable := []error{
		sarama.ErrOutOfBrokers,
		sarama.ErrNotConnected,
		sarama.ErrLeaderNotAvailable,
		sarama.ErrNotLeaderForPartition,
		sarama.ErrRequestTimedOut,
		sarama.ErrNotEnoughReplicas,
		sarama.ErrNotEnoughReplicasAfterAppend,
		sarama.ErrNetworkException,
	}
	for _, target := range retryable {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (g *Gateway) executeWithMetrics(ctx context.Context, event string, msg *sarama.ProducerMessage) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(context.Context) error {
		attempt++
		_, _, err := g.producer.SendMessage(msg)
		return err
	})

	result := resultLabel(err)
	NotifyPublishDuration.WithLabelValues(msg.Topic, event, result).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		NotifyRetriesTotal.WithLabelValues(msg.Topic, event, result).Inc()
	}

	return err
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var kerr sarama.KError
	if errors.As(err, &kerr) {
		return "kafka_" + strconv.Itoa(int(kerr))
	}
	return "error"
}
