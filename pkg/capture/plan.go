package capture

import (
	"time"

	"github.com/pkg/errors"
)

const (
	FrameDelay = 500 * time.Millisecond
	HoldDelay  = 2 * time.Second
)

// Step is one captured frame: the number of corrective wave points revealed
// before the capture and the display duration of the frame.
type Step struct {
	CorrectivePoints int
	Delay            time.Duration
}

type Plan []Step

// DefaultPlan reveals the corrective wave as start-A, start-A-B, start-A-B-C
// and holds the completed state on the last frame.
var DefaultPlan = Plan{
	{CorrectivePoints: 0, Delay: FrameDelay},
	{CorrectivePoints: 2, Delay: FrameDelay},
	{CorrectivePoints: 3, Delay: FrameDelay},
	{CorrectivePoints: 4, Delay: FrameDelay},
	{CorrectivePoints: 4, Delay: HoldDelay},
}

// Validate checks the plan against a corrective wave of n points. The reveal
// must never shrink.
func (p Plan) Validate(n int) error {
	if len(p) == 0 {
		return errors.New("empty capture plan")
	}

	prev := 0
	for i, step := range p {
		if step.CorrectivePoints < 0 || step.CorrectivePoints > n {
			return errors.Errorf("step %d reveals %d corrective points, the wave has %d", i, step.CorrectivePoints, n)
		}

		if step.CorrectivePoints < prev {
			return errors.Errorf("step %d reveals %d corrective points, less than the previous %d", i, step.CorrectivePoints, prev)
		}

		if step.Delay <= 0 {
			return errors.Errorf("step %d has non-positive delay %s", i, step.Delay)
		}

		prev = step.CorrectivePoints
	}

	return nil
}
