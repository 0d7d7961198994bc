// Package notify implements the transient operator notification log.
// Entries are immutable; each one schedules its own removal after a fixed
// TTL and can be dismissed earlier by id. Dismissal and expiry race safely:
// removal is by id and happens at most once.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avetisov/modera/internal/models"
)

// DefaultTTL matches the dashboard's 5-second auto-dismiss.
const DefaultTTL = 5 * time.Second

// Event kinds delivered to the OnEvent callback.
const (
	EventCreated   = "created"
	EventDismissed = "dismissed"
	EventExpired   = "expired"
)

// Center holds active notifications in creation order.
type Center struct {
	mu     sync.Mutex
	items  []models.Notification
	timers map[string]*time.Timer

	ttl     time.Duration
	now     func() time.Time
	onEvent func(kind string, n models.Notification)
}

// Option configures a Center.
type Option func(*Center)

// WithTTL overrides the auto-expiry delay.
func WithTTL(ttl time.Duration) Option {
	return func(c *Center) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source used for notification timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Center) {
		if now != nil {
			c.now = now
		}
	}
}

// WithEventCallback registers a callback invoked after every state change.
// The callback runs outside the center's lock.
func WithEventCallback(fn func(kind string, n models.Notification)) Option {
	return func(c *Center) {
		c.onEvent = fn
	}
}

// NewCenter creates an empty notification center.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		timers: make(map[string]*time.Timer),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify appends a new notification and schedules its expiry.
func (c *Center) Notify(kind models.NotificationType, message string) models.Notification {
	n := models.Notification{
		ID:        uuid.NewString(),
		Type:      kind,
		Message:   message,
		Timestamp: c.now().UTC(),
	}

	c.mu.Lock()
	c.items = append(c.items, n)
	c.timers[n.ID] = time.AfterFunc(c.ttl, func() {
		c.expire(n.ID)
	})
	c.mu.Unlock()

	c.emit(EventCreated, n)
	return n
}

// Success records a success notification.
func (c *Center) Success(message string) models.Notification {
	return c.Notify(models.NotifySuccess, message)
}

// Error records an error notification.
func (c *Center) Error(message string) models.Notification {
	return c.Notify(models.NotifyError, message)
}

// Info records an info notification.
func (c *Center) Info(message string) models.Notification {
	return c.Notify(models.NotifyInfo, message)
}

// Dismiss removes the notification with the given id and cancels its expiry
// timer. Unknown ids are a no-op, so dismissing twice is safe.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	n, ok := c.remove(id)
	c.mu.Unlock()
	if ok {
		c.emit(EventDismissed, n)
	}
}

// Active returns the live notifications in creation order.
func (c *Center) Active() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Close cancels all pending expiry timers. The center remains usable but no
// queued expirations will fire after Close returns.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}

// expire is the timer callback. The entry may already be gone if it was
// dismissed first; that case is a no-op.
func (c *Center) expire(id string) {
	c.mu.Lock()
	n, ok := c.remove(id)
	c.mu.Unlock()
	if ok {
		c.emit(EventExpired, n)
	}
}

// remove deletes the entry and its timer by id. Caller holds the lock.
func (c *Center) remove(id string) (models.Notification, bool) {
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return n, true
		}
	}
	return models.Notification{}, false
}

func (c *Center) emit(kind string, n models.Notification) {
	if c.onEvent != nil {
		c.onEvent(kind, n)
	}
}
