package main

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	mu       sync.Mutex
	samples  []int16
	startErr error
	starts   int
	stops    int
}

func (f *fakeSource) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.starts++
	return nil
}

func (f *fakeSource) Stop() []int16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return f.samples
}

func TestControllerFullCycle(t *testing.T) {
	src := &fakeSource{samples: []int16{1, 2, 3}}
	done := make(chan []int16, 1)
	c := NewController(src, func(s []int16) { done <- s })

	if err := c.Trigger(); err != nil {
		t.Fatalf("first trigger: %v", err)
	}
	if c.Phase() != PhaseCapturing {
		t.Fatalf("phase = %v, want capturing", c.Phase())
	}

	if err := c.Trigger(); err != nil {
		t.Fatalf("second trigger: %v", err)
	}

	select {
	case got := <-done:
		if len(got) != 3 {
			t.Errorf("job received %d samples, want 3", len(got))
		}
	case <-time.After(time.Second):
		t.Fatal("processing job never ran")
	}

	waitIdle(t, c)
}

func TestControllerRejectsTriggerWhileProcessing(t *testing.T) {
	src := &fakeSource{samples: []int16{1}}
	release := make(chan struct{})
	c := NewController(src, func([]int16) { <-release })

	c.Trigger()
	c.Trigger()

	if err := c.Trigger(); !errors.Is(err, ErrBusy) {
		t.Fatalf("trigger while processing = %v, want ErrBusy", err)
	}
	if c.Phase() != PhaseProcessing {
		t.Fatalf("phase changed to %v on rejected trigger", c.Phase())
	}
	src.mu.Lock()
	starts := src.starts
	src.mu.Unlock()
	if starts != 1 {
		t.Fatalf("rejected trigger started a second capture (starts=%d)", starts)
	}

	close(release)
	waitIdle(t, c)
}

func TestControllerEmptyCaptureReturnsToIdle(t *testing.T) {
	src := &fakeSource{}
	ran := false
	c := NewController(src, func([]int16) { ran = true })

	c.Trigger()
	if err := c.Trigger(); !errors.Is(err, ErrNoAudio) {
		t.Fatalf("stop with no data = %v, want ErrNoAudio", err)
	}
	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle", c.Phase())
	}
	if ran {
		t.Error("processing job ran for an empty capture")
	}
}

func TestControllerStartFailureStaysIdle(t *testing.T) {
	src := &fakeSource{startErr: errors.New("mic unavailable")}
	c := NewController(src, func([]int16) {})

	if err := c.Trigger(); err == nil {
		t.Fatal("trigger succeeded despite capture failure")
	}
	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle", c.Phase())
	}
}

func TestControllerAcceptsTriggerAfterJob(t *testing.T) {
	src := &fakeSource{samples: []int16{1}}
	c := NewController(src, func([]int16) {})

	c.Trigger()
	c.Trigger()
	waitIdle(t, c)

	if err := c.Trigger(); err != nil {
		t.Fatalf("trigger after completed job: %v", err)
	}
}

func waitIdle(t *testing.T, c *Controller) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if c.Phase() == PhaseIdle {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("controller never returned to idle")
}
