package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockNotAcquired is returned when a reservation key stays locked for the
// whole retry window. Callers should surface this as a transient failure.
var ErrLockNotAcquired = errors.New("reservation is locked by another request")

// releaseLockScript deletes the lock only when it still holds this request's
// token, so an expired lock reacquired by another request is never released
// by the original holder. Redis Go client automatically uses EVALSHA after
// the first call instead of sending the script text every time.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	lockKeyPrefix = "loan:lock:"

	// TTL guards against a crashed holder wedging the key forever.
	lockTTL = 10 * time.Second

	lockRetries      = 20
	lockRetryBackoff = 50 * time.Millisecond
)

// ReservationLock serializes the check-then-insert sequence of loan creation
// per conflicting key. Two saves for the same game (or the same client) take
// turns; saves for unrelated games and clients run concurrently.
//
// Keys are acquired in sorted order so two requests contending on the same
// pair of keys cannot deadlock.
type ReservationLock struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewReservationLock(client *redis.Client, log *logrus.Logger) *ReservationLock {
	return &ReservationLock{
		client: client,
		log:    log,
	}
}

// GameKey builds the lock key guarding one game's reservations.
func GameKey(gameID int64) string {
	return fmt.Sprintf("game:%d", gameID)
}

// ClientKey builds the lock key guarding one client's daily limit.
func ClientKey(clientID int64) string {
	return fmt.Sprintf("client:%d", clientID)
}

// Acquire takes every key and returns a release function. On failure the
// keys acquired so far are released before the error is returned, so a
// caller never holds a partial set.
func (s *ReservationLock) Acquire(ctx context.Context, keys ...string) (func(), error) {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	token := uuid.NewString()
	held := make([]string, 0, len(sorted))

	release := func() {
		for _, key := range held {
			if err := releaseLockScript.Run(context.Background(), s.client, []string{lockKeyPrefix + key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				s.log.Warnf("Failed to release reservation lock %s: %+v", key, err)
			}
		}
	}

	for _, key := range sorted {
		if err := s.acquireOne(ctx, lockKeyPrefix+key, token); err != nil {
			release()
			return nil, err
		}
		held = append(held, key)
	}

	return release, nil
}

func (s *ReservationLock) acquireOne(ctx context.Context, key, token string) error {
	for attempt := 0; attempt < lockRetries; attempt++ {
		ok, err := s.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire reservation lock: %w", err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryBackoff):
		}
	}

	s.log.Warnf("Reservation lock %s still held after %d attempts", key, lockRetries)
	return ErrLockNotAcquired
}
