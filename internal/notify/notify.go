// Package notify holds the transient toast of one page.
package notify

import (
	"sync"
	"time"
)

// Kind 提示类型
// Kind is the visual class of a toast
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Toast is one notification. A newer toast replaces an older one.
type Toast struct {
	ID      uint64
	Kind    Kind
	Text    string
	Expires time.Time
}

// Center 页面级提示通道
// Center is a page-scoped toast channel
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	seq     uint64
	current *Toast
}

// NewCenter returns a center whose toasts expire after ttl.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// TTL returns the display duration.
func (c *Center) TTL() time.Duration {
	return c.ttl
}

// Push shows text, replacing any visible toast.
func (c *Center) Push(kind Kind, text string) Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := Toast{ID: c.seq, Kind: kind, Text: text, Expires: c.now().Add(c.ttl)}
	c.current = &t
	return t
}

func (c *Center) Success(text string) Toast {
	return c.Push(KindSuccess, text)
}

func (c *Center) Error(text string) Toast {
	return c.Push(KindError, text)
}

// Current returns the visible toast, if it has not expired.
func (c *Center) Current() (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Toast{}, false
	}
	if !c.now().Before(c.current.Expires) {
		c.current = nil
		return Toast{}, false
	}
	return *c.current, true
}

// Dismiss hides the toast with the given id. A toast pushed after it is left
// alone, so an old timer cannot hide a newer message.
func (c *Center) Dismiss(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && c.current.ID == id {
		c.current = nil
	}
}
