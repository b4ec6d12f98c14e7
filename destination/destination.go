// Package destination identifies the application that will receive the final
// text. The identifier is an opaque string queried once per processing run.
package destination
