package main

import (
	"errors"
	"sync"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCapturing
	PhaseProcessing
)

func (p Phase) String() string {
	switch p {
	case PhaseCapturing:
		return "capturing"
	case PhaseProcessing:
		return "processing"
	default:
		return "idle"
	}
}

var (
	ErrBusy    = errors.New("already processing a dictation")
	ErrNoAudio = errors.New("no audio captured")
)

// CaptureSource is the audio collaborator the controller starts and stops.
type CaptureSource interface {
	Start() error
	Stop() []int16
}

// Controller is the capture/processing state machine. One trigger starts a
// capture, the next stops it and hands the samples to the processing job.
// Triggers during processing are rejected, never queued.
type Controller struct {
	mu      sync.Mutex
	phase   Phase
	source  CaptureSource
	process func(samples []int16)
}

func NewController(source CaptureSource, process func(samples []int16)) *Controller {
	return &Controller{source: source, process: process}
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Trigger advances the state machine. Capture start/stop happens under the
// phase lock so concurrent triggers cannot race the device.
func (c *Controller) Trigger() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseProcessing:
		return ErrBusy

	case PhaseIdle:
		if err := c.source.Start(); err != nil {
			return err
		}
		c.phase = PhaseCapturing
		return nil

	default: // PhaseCapturing
		samples := c.source.Stop()
		if len(samples) == 0 {
			c.phase = PhaseIdle
			return ErrNoAudio
		}
		c.phase = PhaseProcessing
		go c.runJob(samples)
		return nil
	}
}

func (c *Controller) runJob(samples []int16) {
	defer func() {
		c.mu.Lock()
		c.phase = PhaseIdle
		c.mu.Unlock()
	}()
	c.process(samples)
}
