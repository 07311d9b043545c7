package midi

import (
	"testing"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func fakeThrottle(interval time.Duration) (*throttle, *time.Time, *[]time.Duration) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	slept := []time.Duration{}
	t := newThrottle(interval)
	t.now = func() time.Time { return now }
	t.sleep = func(d time.Duration) {
		slept = append(slept, d)
		now = now.Add(d)
	}
	return t, &now, &slept
}

func TestThrottleSpacesBursts(t *testing.T) {
	th, _, slept := fakeThrottle(time.Millisecond)
	th.wait()
	th.wait()
	th.wait()
	if len(*slept) != 2 {
		t.Fatalf("expected two sleeps, got %v", *slept)
	}
	for _, d := range *slept {
		if d != time.Millisecond {
			t.Fatalf("expected 1ms sleeps, got %v", *slept)
		}
	}
}

func TestThrottleSkipsSleepAfterIdle(t *testing.T) {
	th, now, slept := fakeThrottle(time.Millisecond)
	th.wait()
	*now = now.Add(5 * time.Millisecond)
	th.wait()
	if len(*slept) != 0 {
		t.Fatalf("expected no sleep after idle gap, got %v", *slept)
	}
}

func TestThrottleDisabled(t *testing.T) {
	th, _, slept := fakeThrottle(0)
	th.wait()
	th.wait()
	if len(*slept) != 0 {
		t.Fatalf("expected zero interval never to sleep")
	}
	var nilThrottle *throttle
	nilThrottle.wait()
}

func TestPacedForwardsMessages(t *testing.T) {
	var got []gomidi.Message
	send := paced(func(msg gomidi.Message) error {
		got = append(got, msg)
		return nil
	}, 0)
	msg := gomidi.ControlChange(0, 7, 100)
	if err := send(msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || string(got[0]) != string(msg) {
		t.Fatalf("expected message forwarded, got %v", got)
	}
}
