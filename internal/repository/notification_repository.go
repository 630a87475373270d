package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.Status == "" {
		notification.Status = model.NotificationPending
	}
	if notification.NextAttemptAt.IsZero() {
		notification.NextAttemptAt = time.Now().UTC()
	}
	return conn(ctx, r.db).Create(notification).Error
}

// ListDue returns pending or failed rows whose retry time has passed. Rows held
// by another dispatcher are skipped.
func (r *NotificationRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status IN ? AND next_attempt_at <= ?",
			[]model.NotificationStatus{model.NotificationPending, model.NotificationFailed}, now).
		Order("created_at").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) Update(ctx context.Context, notification *model.Notification) error {
	return conn(ctx, r.db).Save(notification).Error
}
