package midi

import (
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// OutputGap is the minimum spacing between sent messages, roughly the wire
// time of one three byte message on a DIN link.
const OutputGap = time.Millisecond

// throttle spaces successive sends at least interval apart.
type throttle struct {
	interval time.Duration
	now      func() time.Time
	sleep    func(time.Duration)

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: interval, now: time.Now, sleep: time.Sleep}
}

func (t *throttle) wait() {
	if t == nil || t.interval <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if d := t.next.Sub(now); d > 0 {
		if d > t.interval {
			d = t.interval
		}
		t.sleep(d)
		now = now.Add(d)
	}
	t.next = now.Add(t.interval)
}

// paced wraps send so bursts of parameter changes do not overrun the port.
func paced(send func(gomidi.Message) error, interval time.Duration) func(gomidi.Message) error {
	t := newThrottle(interval)
	return func(msg gomidi.Message) error {
		t.wait()
		return send(msg)
	}
}
