package audio

import (
	"encoding/binary"
	"sync"
)

// Recorder accumulates PCM samples from a capture device between Start and
// Stop. It owns the device callback for the duration of a recording; callers
// must not Start twice without an intervening Stop.
type Recorder struct {
	device     CaptureDevice
	sampleRate uint32

	mu        sync.Mutex
	recording bool
	samples   []int16
}

func NewRecorder(device CaptureDevice, sampleRate uint32) *Recorder {
	return &Recorder{device: device, sampleRate: sampleRate}
}

func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.recording {
		r.mu.Unlock()
		return nil
	}
	r.recording = true
	r.samples = r.samples[:0]
	r.mu.Unlock()

	r.device.SetCallback(r.accumulate)
	if err := r.device.Start(); err != nil {
		r.device.ClearCallback()
		r.mu.Lock()
		r.recording = false
		r.mu.Unlock()
		return err
	}
	return nil
}

// Stop halts capture and returns the recorded samples, or nil when nothing
// was captured. The returned slice is owned by the caller.
func (r *Recorder) Stop() []int16 {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil
	}
	r.recording = false
	r.mu.Unlock()

	r.device.Stop()
	r.device.ClearCallback()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.samples) == 0 {
		return nil
	}
	out := make([]int16, len(r.samples))
	copy(out, r.samples)
	r.samples = r.samples[:0]
	return out
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Duration reports the length in seconds of the samples accumulated so far.
func (r *Recorder) Duration() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sampleRate == 0 {
		return 0
	}
	return float64(len(r.samples)) / float64(r.sampleRate)
}

func (r *Recorder) accumulate(data []byte, frameCount uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return
	}
	for i := 0; i+1 < len(data); i += 2 {
		r.samples = append(r.samples, int16(binary.LittleEndian.Uint16(data[i:])))
	}
}
