// Package field implements the particle animation behind the dotfield
// background.
//
// A [Field] owns an arena of [Particle] values and advances every one of them
// once per frame:
//
//   - [Inputs]: the single mutable configuration struct the host writes
//   - [Host]: query for the rectangle the particles surround while Bordered
//   - [Surface]: drawing target receiving one disc per particle
//
// # Layout Modes
//
// In [Ambient] mode particles drift toward random homes inside a disc centred
// on the viewport. In [Bordered] mode they are spread evenly along the host
// rectangle's perimeter and bounce off its interior. Minimizing overrides the
// mode and sends every particle home.
//
// # Example
//
//	in := field.Inputs{Width: 800, Height: 600, BallCount: 400, InteractionRadius: 75}
//	f := field.New(&in, field.WithSeed(1))
//	for {
//		f.Frame(&in, host, surface)
//	}
//
// # Thread Safety
//
// A Field is NOT thread-safe. All calls, including writes to the Inputs it
// reads, must happen on the goroutine driving the frames.
package field
