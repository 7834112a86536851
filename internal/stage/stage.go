// Package stage holds the shared vocabulary for section sub-stages: the
// clamp helper, the scroll direction and the change notification.
package stage

// EventName is the notification announced whenever a section's stage changes.
const EventName = "section-stage-change"

// Direction is the scroll direction that produced a stage change.
type Direction int

const (
	Backward Direction = -1
	None     Direction = 0
	Forward  Direction = 1
)

// DirectionOf returns the direction matching the sign of delta.
func DirectionOf(delta float64) Direction {
	switch {
	case delta > 0:
		return Forward
	case delta < 0:
		return Backward
	default:
		return None
	}
}

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Change is the payload carried by a stage notification.
type Change struct {
	SectionID  string
	StageIndex int
	MaxStage   int
	Direction  Direction
}

// ClampIndex clamps requested into [0, maxStage-1]. It never fails: any
// maxStage without at least two stages yields 0.
func ClampIndex(requested, maxStage int) int {
	if maxStage <= 0 {
		return 0
	}
	upper := maxStage - 1
	if upper <= 0 {
		return 0
	}
	return min(max(requested, 0), upper)
}
