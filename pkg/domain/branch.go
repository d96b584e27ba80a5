package domain

// TaskStatus is the status of a task attached to a branch.
type TaskStatus int

const (
	TaskNone TaskStatus = iota
	TaskNotStarted
	TaskWIP
	TaskFinished
)

func (s TaskStatus) String() string {
	switch s {
	case TaskNotStarted:
		return "NotStarted"
	case TaskWIP:
		return "WIP"
	case TaskFinished:
		return "Finished"
	default:
		return ""
	}
}

// Next returns the status following s in the task cycle. A branch without a task
// has no next status.
func (s TaskStatus) Next() (TaskStatus, bool) {
	switch s {
	case TaskNotStarted:
		return TaskWIP, true
	case TaskWIP:
		return TaskFinished, true
	case TaskFinished:
		return TaskNotStarted, true
	}
	return TaskNone, false
}

// FrameType is the geometric decoration drawn around a branch.
type FrameType int

const (
	FrameNone FrameType = iota
	FrameRectangle
	FrameRoundedRectangle
	FrameEllipse
	FrameCloud
)

var frameTypeNames = []string{"NoFrame", "Rectangle", "RoundedRectangle", "Ellipse", "Cloud"}

func (f FrameType) String() string {
	if int(f) >= 0 && int(f) < len(frameTypeNames) {
		return frameTypeNames[f]
	}
	return "NoFrame"
}

// ParseFrameType maps a frame type name back to its value.
func ParseFrameType(name string) (FrameType, bool) {
	for i, n := range frameTypeNames {
		if n == name {
			return FrameType(i), true
		}
	}
	return FrameNone, false
}

// StandardFlags are the flag names known to vym maps.
var StandardFlags = []string{
	"exclamationmark", "questionmark", "hook-green", "cross-red", "stopsign",
	"smiley-good", "smiley-sad", "smiley-omg", "clock", "phone", "lamp",
	"arrow-up", "arrow-down", "arrow-left", "arrow-right", "thumb-up", "thumb-down",
	"heart", "flash", "lifebelt",
}
