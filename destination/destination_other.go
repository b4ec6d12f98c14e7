//go:build !linux && !darwin

package destination

// Active is not implemented on this platform; the resolver falls back to the
// default profile for an empty identifier.
func Active() string {
	return ""
}
