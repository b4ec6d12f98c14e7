package hotkey

import "time"

const (
	// DefaultTapThreshold is the longest press that still counts as a tap.
	DefaultTapThreshold = 250 * time.Millisecond
	// DefaultDoubleTapInterval is the window in which two taps form a trigger.
	DefaultDoubleTapInterval = 500 * time.Millisecond
)

// DoubleTap recognizes two short taps of the trigger key in quick
// succession. It is a pure reducer over timestamped press/release events and
// performs no I/O; the caller feeds it real or simulated clock readings.
type DoubleTap struct {
	tapThreshold time.Duration
	interval     time.Duration

	pressedAt time.Time
	lastTapAt time.Time
	pressed   bool
}

func NewDoubleTap(tapThreshold, interval time.Duration) *DoubleTap {
	if tapThreshold <= 0 {
		tapThreshold = DefaultTapThreshold
	}
	if interval <= 0 {
		interval = DefaultDoubleTapInterval
	}
	return &DoubleTap{tapThreshold: tapThreshold, interval: interval}
}

// Press records a key-down at time t.
func (d *DoubleTap) Press(t time.Time) {
	d.pressedAt = t
	d.pressed = true
}

// Release records a key-up at time t and reports whether the release
// completed a double-tap. A hold at or past the tap threshold is not a tap
// and clears any pending first tap.
func (d *DoubleTap) Release(t time.Time) bool {
	if !d.pressed {
		return false
	}
	d.pressed = false

	if t.Sub(d.pressedAt) >= d.tapThreshold {
		d.lastTapAt = time.Time{}
		return false
	}

	if !d.lastTapAt.IsZero() && t.Sub(d.lastTapAt) < d.interval {
		d.lastTapAt = time.Time{}
		return true
	}

	d.lastTapAt = t
	return false
}

// Listener drives a DoubleTap from a Hotkey's event channels and emits on
// Trigger whenever a double-tap completes.
type Listener struct {
	triggerCh chan struct{}
}

func NewListener(hk Hotkey, tapThreshold, interval time.Duration) *Listener {
	l := &Listener{triggerCh: make(chan struct{}, 1)}
	go l.run(hk, NewDoubleTap(tapThreshold, interval))
	return l
}

func (l *Listener) Trigger() <-chan struct{} { return l.triggerCh }

func (l *Listener) run(hk Hotkey, d *DoubleTap) {
	for {
		select {
		case <-hk.Keydown():
			d.Press(time.Now())
		case <-hk.Keyup():
			if d.Release(time.Now()) {
				select {
				case l.triggerCh <- struct{}{}:
				default:
				}
			}
		}
	}
}
