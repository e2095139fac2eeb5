package types

import (
	"image"
	"time"
)

// Frame is one captured still of the render surface.
type Frame struct {
	Index int

	Image image.Image

	// Delay is the display duration of the frame in the animation
	Delay time.Duration

	// CorrectivePoints is the number of corrective wave points visible in the frame
	CorrectivePoints int
}
