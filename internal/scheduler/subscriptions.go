package scheduler

import (
	"context"

	"sehat-sathi-server/internal/domain/entity"

	"github.com/google/uuid"
)

// Channel prefix for per-patient call change signals
const callsChangedPrefix = "calls:changed:"

// CallSetCallback receives the full current pending-call set for a patient,
// not a diff, on every underlying change.
type CallSetCallback func(calls []entity.CallRecord)

// PublishChange signals that a patient's call set changed. Subscribers
// re-query and re-deliver the full set. Publish failures are logged and
// swallowed; a missed signal only delays the next delivery.
func (s *CallScheduler) PublishChange(ctx context.Context, patientID uuid.UUID) {
	if s.redisClient == nil {
		return
	}
	channel := callsChangedPrefix + patientID.String()
	if err := s.redisClient.Publish(ctx, channel, "changed").Err(); err != nil {
		s.log.Warnf("Failed to publish call change for patient %s: %+v", patientID, err)
	}
}

// SubscribeToCalls delivers the patient's pending calls to cb on every
// change signal. The returned function releases the subscription; not
// calling it leaks the subscription for the process lifetime.
func (s *CallScheduler) SubscribeToCalls(ctx context.Context, patientID uuid.UUID, cb CallSetCallback) func() {
	if s.redisClient == nil || cb == nil {
		return func() {}
	}

	channel := callsChangedPrefix + patientID.String()
	pubsub := s.redisClient.Subscribe(ctx, channel)

	go func() {
		for range pubsub.Channel() {
			calls, err := s.callRepo.FindPendingByPatientID(s.dbWith(ctx), patientID)
			if err != nil {
				// Read failures degrade to an empty, defined state.
				s.log.Warnf("Failed to load calls for subscriber %s: %+v", patientID, err)
				cb([]entity.CallRecord{})
				continue
			}
			cb(calls)
		}
	}()

	return func() {
		if err := pubsub.Close(); err != nil {
			s.log.Debugf("Failed to close call subscription for patient %s: %+v", patientID, err)
		}
	}
}
