// Package notify keeps the transient toast messages shown after each action.
package notify

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/adapters/gateway"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/store"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/upload"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 2 * time.Second

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	ExpiresAt time.Time
}

// Category is the error taxonomy used to phrase failures.
type Category int

const (
	NetworkOrServerFailure Category = iota
	NotFound
	ValidationOmission
)

func (c Category) String() string {
	switch c {
	case NotFound:
		return "not_found"
	case ValidationOmission:
		return "validation"
	}
	return "network_or_server"
}

// Classify maps err onto the taxonomy and the message shown to the user.
// fallback is used when the gateway gave no detail.
func Classify(err error, fallback string) (Category, string) {
	switch {
	case errors.Is(err, store.ErrMissingFile):
		return ValidationOmission, "Please upload an ID card image."
	case errors.Is(err, upload.ErrUnsupportedType):
		return ValidationOmission, "Unsupported file type. Please upload a JPEG, PNG or WebP image."
	case errors.Is(err, upload.ErrTooLarge):
		return ValidationOmission, "The image is too large."
	}

	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		if apiErr.Status == http.StatusNotFound {
			return NotFound, apiErr.Detail
		}
		return NetworkOrServerFailure, apiErr.Detail
	}
	if errors.Is(err, domain.ErrNotFound) {
		return NotFound, "Employee not found"
	}
	return NetworkOrServerFailure, fallback
}

// Center holds the live notifications of one session.
type Center struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	items []Notification
}

type Option func(*Center)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

func NewCenter(ttl time.Duration, opts ...Option) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Center{ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// TTL is the display duration of every notification.
func (c *Center) TTL() time.Duration { return c.ttl }

func (c *Center) Success(msg string) Notification {
	return c.push(Success, msg)
}

// Fail classifies err and pushes the resulting error notification.
func (c *Center) Fail(err error, fallback string) Notification {
	_, msg := Classify(err, fallback)
	return c.push(Error, msg)
}

func (c *Center) push(kind Kind, msg string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   msg,
		ExpiresAt: c.now().Add(c.ttl),
	}
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
	return n
}

// Active returns the unexpired notifications, oldest first, and drops the
// expired ones.
func (c *Center) Active() []Notification {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.DeleteFunc(c.items, func(n Notification) bool {
		return !now.Before(n.ExpiresAt)
	})
	return slices.Clone(c.items)
}

// Drain returns the unexpired notifications and clears the queue. Each
// response shows a toast once; the browser dismisses it after TTL.
func (c *Center) Drain() []Notification {
	out := c.Active()
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	return out
}
