// Package scheduler coordinates pre-call reminder timers for scheduled
// consultation calls.
package scheduler

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"sehat-sathi-server/internal/domain/entity"
	"sehat-sathi-server/internal/domain/repository"
	"sehat-sathi-server/internal/notification"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// Redis key prefix marking a call's reminder as already delivered
	notifiedKeyPrefix = "call:notified:"

	// How long the delivered marker lives
	notifiedKeyTTL = 24 * time.Hour
)

// NotificationCallback receives the call record when its reminder fires.
type NotificationCallback func(call *entity.CallRecord)

// CallScheduler arms one deferred reminder per scheduled call and fans the
// fired reminder out to the SMS notifier and every registered callback.
//
// Timer state is in-memory only. Rehydrate re-arms timers for calls still
// pending after a restart; reminders whose fire time passed while the
// process was down are dropped, not sent late.
type CallScheduler struct {
	db          *gorm.DB
	log         *logrus.Logger
	callRepo    repository.CallRecordRepository
	redisClient *redis.Client
	notifier    notification.Notifier
	lead        time.Duration

	mu        sync.Mutex
	timers    map[string]*time.Timer
	callbacks map[uintptr]NotificationCallback

	stopped atomic.Bool
}

// NewCallScheduler creates a CallScheduler. lead is how long before the
// scheduled time the reminder fires. Call Rehydrate before accepting
// traffic and Stop during graceful shutdown.
func NewCallScheduler(
	db *gorm.DB,
	log *logrus.Logger,
	callRepo repository.CallRecordRepository,
	redisClient *redis.Client,
	notifier notification.Notifier,
	lead time.Duration,
) *CallScheduler {
	return &CallScheduler{
		db:          db,
		log:         log,
		callRepo:    callRepo,
		redisClient: redisClient,
		notifier:    notifier,
		lead:        lead,
		timers:      make(map[string]*time.Timer),
		callbacks:   make(map[uintptr]NotificationCallback),
	}
}

// Schedule arms a reminder timer for a scheduled call. Immediate calls,
// calls without a scheduled time, and calls whose reminder moment has
// already passed arm nothing; the missed reminder is an accepted gap, not
// an error.
func (s *CallScheduler) Schedule(call *entity.CallRecord) {
	if s.stopped.Load() {
		return
	}
	if call.IsImmediate || call.ScheduledTime == nil {
		return
	}

	notifyAt := call.ScheduledTime.Add(-s.lead)
	delay := time.Until(notifyAt)
	if delay <= 0 {
		s.log.Debugf("Reminder window for call %s already passed, not arming", call.ID)
		return
	}

	record := *call

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-scheduling the same call replaces its timer.
	if old, ok := s.timers[call.ID]; ok {
		old.Stop()
	}
	s.timers[call.ID] = time.AfterFunc(delay, func() {
		s.fire(&record)
	})

	s.log.Infof("Armed reminder for call %s at %s", call.ID, notifyAt.Format(time.RFC3339))
}

// Cancel stops and removes the reminder timer for a call id. Idempotent and
// safe on unknown ids. The persisted record is untouched.
func (s *CallScheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return
	}
	timer.Stop()
	delete(s.timers, id)
	s.log.Debugf("Cancelled reminder timer for call %s", id)
}

// AddNotificationCallback registers a callback invoked on every fired
// reminder. Callbacks are keyed by function identity.
func (s *CallScheduler) AddNotificationCallback(cb NotificationCallback) {
	if cb == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks[reflect.ValueOf(cb).Pointer()] = cb
}

// RemoveNotificationCallback unregisters a callback. Removing a callback
// that was never added is a no-op.
func (s *CallScheduler) RemoveNotificationCallback(cb NotificationCallback) {
	if cb == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.callbacks, reflect.ValueOf(cb).Pointer())
}

// Rehydrate re-arms reminder timers for every pending scheduled call whose
// reminder moment is still in the future. Should be called once at startup,
// before accepting traffic.
func (s *CallScheduler) Rehydrate(ctx context.Context) error {
	calls, err := s.callRepo.FindPendingScheduled(s.dbWith(ctx))
	if err != nil {
		s.log.Warnf("Failed to load pending calls for rehydration: %+v", err)
		return fmt.Errorf("load pending calls: %w", err)
	}

	armed := 0
	for i := range calls {
		s.Schedule(&calls[i])
		if s.HasTimer(calls[i].ID) {
			armed++
		}
	}

	s.log.Infof("Rehydrated call reminders: %d pending calls, %d timers armed", len(calls), armed)
	return nil
}

// Stop cancels all armed timers. Safe to call multiple times; Schedule
// becomes a no-op afterwards.
func (s *CallScheduler) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.log.Info("CallScheduler stopped")
}

// fire delivers one reminder: dedup marker, SMS, callback fan-out, then the
// timer entry is dropped.
func (s *CallScheduler) fire(call *entity.CallRecord) {
	s.mu.Lock()
	delete(s.timers, call.ID)
	callbacks := make([]NotificationCallback, 0, len(s.callbacks))
	for _, cb := range s.callbacks {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if !s.markNotified(ctx, call.ID) {
		s.log.Debugf("Reminder for call %s already delivered, skipping", call.ID)
		return
	}

	key := notifiedKeyPrefix + call.ID
	title := "Upcoming consultation"
	body := fmt.Sprintf("Your call with the doctor starts at %s. Join: %s",
		call.ScheduledTime.Format("15:04"), call.CallLink)

	if call.PatientPhone != "" {
		if err := s.notifier.Notify(ctx, key, call.PatientPhone, title, body); err != nil {
			// Delivery failure degrades to "no notification sent".
			s.log.Warnf("Failed to send reminder SMS for call %s: %+v", call.ID, err)
		}
	}

	for _, cb := range callbacks {
		cb(call)
	}

	s.log.Infof("Reminder fired for call %s (%d callbacks)", call.ID, len(callbacks))
}

// markNotified claims the delivery marker for a call. Returns false when
// another process already delivered this reminder. Without Redis there is
// nothing to coordinate with, so delivery always proceeds.
func (s *CallScheduler) markNotified(ctx context.Context, callID string) bool {
	if s.redisClient == nil {
		return true
	}
	ok, err := s.redisClient.SetNX(ctx, notifiedKeyPrefix+callID, "1", notifiedKeyTTL).Result()
	if err != nil {
		s.log.Warnf("Failed to set reminder dedup key for call %s: %+v", callID, err)
		return true
	}
	return ok
}

// dbWith binds the request context to the gorm session. Unit tests run with
// a nil db against repository stubs.
func (s *CallScheduler) dbWith(ctx context.Context) *gorm.DB {
	if s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx)
}

// HasTimer reports whether a reminder timer is currently armed for id.
func (s *CallScheduler) HasTimer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}
