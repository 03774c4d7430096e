// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRatio   = errors.New("ratio must be >= 1 and leave at least one component per window")
	ErrInvalidOptions = errors.New("invalid codec options")
	ErrUnknownMode    = errors.New("unknown reconstruction mode")
	ErrEmptyInput     = errors.New("input has no samples")
)

// Stage names the pipeline step an Error came from.
type Stage string

const (
	StageParse       Stage = "parse"
	StageTransform   Stage = "transform"
	StageSelection   Stage = "selection"
	StageSerialize   Stage = "serialize"
	StageReconstruct Stage = "reconstruct"
)

// Error wraps a pipeline failure with the stage and position it happened
// at. Channel and Window are -1 when the failure is not tied to one.
type Error struct {
	Stage   Stage
	Channel int
	Window  int
	Err     error
}

func (e *Error) Error() string {
	if e.Channel < 0 {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: channel %d window %d: %v", e.Stage, e.Channel, e.Window, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	return &Error{Stage: stage, Channel: -1, Window: -1, Err: err}
}
