package audio

import "sync/atomic"

// FakeCapture is an in-memory CaptureDevice for tests. Feed pushes PCM
// through the registered callback as if the hardware delivered it.
type FakeCapture struct {
	callback atomic.Pointer[DataCallback]
	started  atomic.Bool
	StartErr error
}

func NewFakeCapture() *FakeCapture {
	return &FakeCapture{}
}

func (f *FakeCapture) Start() error {
	if f.StartErr != nil {
		return f.StartErr
	}
	f.started.Store(true)
	return nil
}

func (f *FakeCapture) Stop() {
	f.started.Store(false)
}

func (f *FakeCapture) Close() {}

func (f *FakeCapture) SetCallback(cb DataCallback) {
	f.callback.Store(&cb)
}

func (f *FakeCapture) ClearCallback() {
	f.callback.Store(nil)
}

func (f *FakeCapture) Started() bool {
	return f.started.Load()
}

// Feed delivers samples to the registered callback as little-endian PCM.
func (f *FakeCapture) Feed(samples []int16) {
	cb := f.callback.Load()
	if cb == nil {
		return
	}
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		data[i*2] = byte(s)
		data[i*2+1] = byte(s >> 8)
	}
	(*cb)(data, uint32(len(samples)))
}
