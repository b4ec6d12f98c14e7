package audio

import (
	"errors"
	"testing"
)

func TestRecorderAccumulates(t *testing.T) {
	cap := NewFakeCapture()
	rec := NewRecorder(cap, 16000)

	if err := rec.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !cap.Started() {
		t.Fatal("capture device not started")
	}

	cap.Feed([]int16{1, 2, 3})
	cap.Feed([]int16{4, 5})

	got := rec.Stop()
	want := []int16{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Stop() returned %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if cap.Started() {
		t.Error("capture device still running after Stop")
	}
}

func TestRecorderEmptyStopReturnsNil(t *testing.T) {
	rec := NewRecorder(NewFakeCapture(), 16000)
	if err := rec.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := rec.Stop(); got != nil {
		t.Fatalf("Stop() = %v, want nil", got)
	}
}

func TestRecorderStopWithoutStart(t *testing.T) {
	rec := NewRecorder(NewFakeCapture(), 16000)
	if got := rec.Stop(); got != nil {
		t.Fatalf("Stop() = %v, want nil", got)
	}
}

func TestRecorderStartFailure(t *testing.T) {
	cap := NewFakeCapture()
	cap.StartErr = errors.New("device busy")
	rec := NewRecorder(cap, 16000)

	if err := rec.Start(); err == nil {
		t.Fatal("Start() succeeded, want error")
	}
	if rec.Recording() {
		t.Error("recorder marked as recording after failed Start")
	}
}

func TestRecorderIgnoresDataAfterStop(t *testing.T) {
	cap := NewFakeCapture()
	rec := NewRecorder(cap, 16000)

	if err := rec.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cap.Feed([]int16{1})
	rec.Stop()

	// A late callback must not leak into the next recording.
	rec.accumulate([]byte{2, 0}, 1)

	if err := rec.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cap.Feed([]int16{9})
	got := rec.Stop()
	if len(got) != 1 || got[0] != 9 {
		t.Fatalf("second recording = %v, want [9]", got)
	}
}

func TestRecorderDuration(t *testing.T) {
	cap := NewFakeCapture()
	rec := NewRecorder(cap, 16000)

	if err := rec.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cap.Feed(make([]int16, 16000))
	if d := rec.Duration(); d != 1.0 {
		t.Fatalf("Duration() = %v, want 1.0", d)
	}
	rec.Stop()
}
