package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

type appointmentRepository struct {
	mu        sync.RWMutex
	byID      map[types.AppointmentID]*model.Appointment
	bySlotKey map[string]types.AppointmentID
}

func newAppointmentRepository() *appointmentRepository {
	return &appointmentRepository{
		byID:      make(map[types.AppointmentID]*model.Appointment),
		bySlotKey: make(map[string]types.AppointmentID),
	}
}

func copyAppointment(a *model.Appointment) *model.Appointment {
	copied := *a
	if a.Payload != nil {
		copied.Payload = make(map[string]any, len(a.Payload))
		for k, v := range a.Payload {
			copied.Payload[k] = v
		}
	}
	return &copied
}

func (r *appointmentRepository) Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := a.SlotKey()
	if _, exists := r.bySlotKey[key]; exists {
		return nil, goerr.Wrap(interfaces.ErrDuplicate, "slot already recorded", goerr.V("slot_key", key))
	}

	created := copyAppointment(a)
	if created.ID == "" {
		created.ID = types.NewAppointmentID()
	}
	created.Notified = false
	created.CreatedAt = time.Now().UTC()

	r.byID[created.ID] = created
	r.bySlotKey[key] = created.ID
	return copyAppointment(created), nil
}

func (r *appointmentRepository) Get(ctx context.Context, id types.AppointmentID) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.byID[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "appointment not found", goerr.V("id", id))
	}

	return copyAppointment(a), nil
}

func (r *appointmentRepository) ListUnnotified(ctx context.Context, userID types.UserID) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Appointment
	for _, a := range r.byID {
		if a.UserID == userID && !a.Notified {
			result = append(result, copyAppointment(a))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *appointmentRepository) MarkNotified(ctx context.Context, id types.AppointmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.byID[id]
	if !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "appointment not found", goerr.V("id", id))
	}

	a.Notified = true
	return nil
}

func (r *appointmentRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, a := range r.byID {
		if a.CreatedAt.Before(cutoff) {
			delete(r.bySlotKey, a.SlotKey())
			delete(r.byID, id)
			deleted++
		}
	}

	return deleted, nil
}
