package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

type notificationRepository struct {
	mu      sync.RWMutex
	records []*model.DeliveryRecord
}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func copyDeliveryRecord(r *model.DeliveryRecord) *model.DeliveryRecord {
	copied := *r
	return &copied
}

func (r *notificationRepository) Create(ctx context.Context, rec *model.DeliveryRecord) (*model.DeliveryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyDeliveryRecord(rec)
	if created.ID == "" {
		created.ID = types.NewNotificationID()
	}
	if created.SentAt.IsZero() {
		created.SentAt = time.Now().UTC()
	}

	r.records = append(r.records, created)
	return copyDeliveryRecord(created), nil
}

func (r *notificationRepository) ListByAppointment(ctx context.Context, appointmentID types.AppointmentID) ([]*model.DeliveryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.DeliveryRecord
	for _, rec := range r.records {
		if rec.AppointmentID == appointmentID {
			result = append(result, copyDeliveryRecord(rec))
		}
	}

	return result, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.DeliveryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.DeliveryRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			result = append(result, copyDeliveryRecord(rec))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].SentAt.After(result[j].SentAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}
