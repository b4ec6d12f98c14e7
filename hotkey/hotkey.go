// Package hotkey watches the trigger key on each platform and turns raw
// press/release events into double-tap activations.
package hotkey

type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}
