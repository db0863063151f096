// Package show drives the presentation: a fixed-rate tick loop that feeds
// input actions and elapsed time into the transition engine and composites
// frames onto a Surface.
package show

import "image"

// Action represents a logical user action from the presentation surface.
type Action int

const (
	ActionNone       Action = iota
	ActionAdvance           // Step to the next slide
	ActionBack              // Step to the previous slide
	ActionPause             // Toggle auto-advance
	ActionFullscreen        // Toggle fullscreen/windowed mode
	ActionQuit              // Exit the slideshow
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAdvance:
		return "advance"
	case ActionBack:
		return "back"
	case ActionPause:
		return "pause"
	case ActionFullscreen:
		return "fullscreen"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Surface is the display the loop draws onto. It owns the window, input
// polling, and pixel compositing. Draw composites a layer at the given
// position with a global alpha; Present flips the finished frame.
type Surface interface {
	// Size returns the drawable dimensions in pixels.
	Size() (width, height int)
	// Clear resets the frame to black.
	Clear()
	// Draw composites layer at the given position with a global alpha.
	Draw(layer image.Image, at image.Point, alpha uint8)
	// Present flips the composed frame onto the display.
	Present() error
	// SetFullscreen switches between fullscreen and windowed mode.
	SetFullscreen(on bool) error
	// Events streams logical user actions.
	Events() <-chan Action
	// Close releases the surface.
	Close() error
}
