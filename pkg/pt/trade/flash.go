package trade

import (
	"sync"
	"time"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

type Notice struct {
	Kind NoticeKind
	Text string
}

func (n Notice) Empty() bool { return n.Text == "" }

// Flash holds the latest notice. Every notice clears itself after TTL; a
// timer only clears the notice it was started for.
type Flash struct {
	ttl time.Duration

	mu    sync.Mutex
	cur   Notice
	gen   uint64
	timer *time.Timer
}

func NewFlash(ttl time.Duration) *Flash {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Flash{ttl: ttl}
}

func (f *Flash) Success(text string) Notice {
	return f.set(Notice{Kind: NoticeSuccess, Text: text})
}

func (f *Flash) Error(text string) Notice {
	return f.set(Notice{Kind: NoticeError, Text: text})
}

// Current returns the visible notice, empty when cleared.
func (f *Flash) Current() Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cur
}

// Clear drops the notice and any pending timer.
func (f *Flash) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.stopLocked()
	f.cur = Notice{}
}

func (f *Flash) set(n Notice) Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.stopLocked()
	f.cur = n
	gen := f.gen
	f.timer = time.AfterFunc(f.ttl, func() { f.expire(gen) })
	return n
}

func (f *Flash) expire(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return
	}
	f.cur = Notice{}
	f.timer = nil
}

func (f *Flash) stopLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
