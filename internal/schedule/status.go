package schedule

// Class is the display class of a record
type Class int

const (
	// ClassInactive means the schedule is disabled
	ClassInactive Class = iota
	// ClassPending means the schedule is enabled but has not completed a scheduled run yet
	ClassPending
	// ClassCompleted means the schedule is enabled and has a latest run outcome
	ClassCompleted
)

func (c Class) String() string {
	switch c {
	case ClassInactive:
		return "inactive"
	case ClassPending:
		return "pending"
	case ClassCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Color is the tag color used to render a display status
type Color string

// Tag colors
const (
	ColorNone    Color = ""
	ColorBlue    Color = "blue"
	ColorGreen   Color = "green"
	ColorOrange  Color = "orange"
	ColorRed     Color = "red"
	ColorUnknown Color = "unknown"
)

// palette maps a latest run status code to its tag color.
var palette = [...]Color{ColorGreen, ColorOrange, ColorRed}

// Labels for the classes that carry no alias of their own
const (
	LabelInactive = "Inactive"
	LabelPending  = "Pending"
)

// DisplayStatus is the classification of a single record.
// Code and Alias are only meaningful for ClassCompleted.
type DisplayStatus struct {
	Class Class  `json:"class"`
	Code  int    `json:"code"`
	Alias string `json:"alias,omitempty"`
	Color Color  `json:"color"`
}

// Classify maps a record to exactly one display status.
//
// A completed record whose status code has no palette entry keeps ClassCompleted but gets
// ColorUnknown, so callers can detect the broken contract without the table failing.
func Classify(r Record) DisplayStatus {
	if !r.IsActive {
		return DisplayStatus{Class: ClassInactive, Color: ColorNone}
	}
	if r.LatestStatusAlias == nil {
		return DisplayStatus{Class: ClassPending, Color: ColorBlue}
	}

	ds := DisplayStatus{
		Class: ClassCompleted,
		Alias: *r.LatestStatusAlias,
		Color: ColorUnknown,
	}
	if r.LatestStatus == nil {
		ds.Code = -1
		return ds
	}
	ds.Code = *r.LatestStatus
	if ds.Code >= 0 && ds.Code < len(palette) {
		ds.Color = palette[ds.Code]
	}
	return ds
}

// Known reports whether the status resolved to a defined color
func (s DisplayStatus) Known() bool {
	return s.Color != ColorUnknown
}

// Label returns the text shown in the status tag
func (s DisplayStatus) Label() string {
	switch s.Class {
	case ClassInactive:
		return LabelInactive
	case ClassPending:
		return LabelPending
	default:
		return s.Alias
	}
}
