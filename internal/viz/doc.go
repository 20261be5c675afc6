// Package viz is the terminal surface for the particle field.
//
// [App] is a Bubble Tea model that renders the field on a braille
// [Canvas] (two by four sub-pixels per cell, one sub-pixel per viewport
// unit) behind a [Window] holding either the portfolio or the terminal.
// The window is the host rectangle particles line up around in the
// terminal view; its box moves on a harmonica spring when minimized.
//
// # Key Bindings
//
//	Tab       - Switch portfolio / terminal
//	Shift+Tab - Minimize / restore the window
//	+ / -     - Interaction radius
//	] / [     - Ball count
//	I         - Toggle pointer interaction
//	T         - Cycle color themes
//	G         - Toggle GIF recording
//	S         - Save an SVG snapshot
//	E         - Stats overlay
//	?         - Show help overlay
//
// # Recording
//
// G records the canvas as a GIF, written when recording stops or the
// scene is closed.
package viz
