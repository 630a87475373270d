package notify

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/nurpe/fleet-logistics/internal/config"
	"github.com/nurpe/fleet-logistics/internal/model"
)

type Publisher interface {
	Publish(topic string, key, message []byte) error
}

type Store interface {
	ListDue(ctx context.Context, now time.Time, limit int) ([]model.Notification, error)
	Update(ctx context.Context, notification *model.Notification) error
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// LogPublisher stands in for Kafka when no brokers are configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(topic string, key, message []byte) error {
	p.log.Info().
		Str("topic", topic).
		Str("key", string(key)).
		RawJSON("payload", message).
		Msg("notification published")
	return nil
}

type event struct {
	NotificationID string `json:"notification_id"`
	ShipmentID     string `json:"shipment_id"`
	Recipient      string `json:"recipient"`
	Message        string `json:"message"`
	CreatedAt      string `json:"created_at"`
}

type Dispatcher struct {
	tx          Transactor
	store       Store
	publisher   Publisher
	topic       string
	batchSize   int
	maxAttempts int
	retryDelay  time.Duration
	log         zerolog.Logger
	now         func() time.Time
	running     atomic.Bool
}

func NewDispatcher(tx Transactor, store Store, publisher Publisher, topic string, cfg config.NotifyConfig, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		tx:          tx,
		store:       store,
		publisher:   publisher,
		topic:       topic,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Schedule registers the dispatcher on c. A tick that fires while the previous
// batch is still running is skipped.
func (d *Dispatcher) Schedule(ctx context.Context, c *cron.Cron, schedule string) (cron.EntryID, error) {
	return c.AddFunc(schedule, func() {
		if !d.running.CompareAndSwap(false, true) {
			d.log.Debug().Msg("notification dispatch still running, tick skipped")
			return
		}
		defer d.running.Store(false)

		if _, err := d.RunOnce(ctx); err != nil {
			d.log.Error().Err(err).Msg("notification dispatch failed")
		}
	})
}

// RunOnce publishes one batch of due notifications and returns how many were sent.
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	sent := 0
	err := d.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		due, err := d.store.ListDue(ctx, d.now(), d.batchSize)
		if err != nil {
			return err
		}
		for i := range due {
			notification := &due[i]
			if d.deliver(notification) {
				sent++
			}
			if err := d.store.Update(ctx, notification); err != nil {
				return err
			}
		}
		return nil
	})
	return sent, err
}

func (d *Dispatcher) deliver(notification *model.Notification) bool {
	payload, err := json.Marshal(event{
		NotificationID: notification.ID.String(),
		ShipmentID:     notification.ShipmentID.String(),
		Recipient:      notification.Recipient,
		Message:        notification.Message,
		CreatedAt:      notification.CreatedAt.Format(time.RFC3339),
	})
	if err == nil {
		err = d.publisher.Publish(d.topic, []byte(notification.ShipmentID.String()), payload)
	}

	notification.Attempts++
	if err == nil {
		notification.Status = model.NotificationSent
		notification.LastError = ""
		return true
	}

	notification.LastError = err.Error()
	notification.NextAttemptAt = d.now().Add(d.retryDelay)
	if notification.Attempts >= d.maxAttempts {
		notification.Status = model.NotificationNoAttemptsLeft
	} else {
		notification.Status = model.NotificationFailed
	}
	d.log.Warn().
		Err(err).
		Str("notification_id", notification.ID.String()).
		Int("attempts", notification.Attempts).
		Str("status", string(notification.Status)).
		Msg("notification not delivered")
	return false
}
