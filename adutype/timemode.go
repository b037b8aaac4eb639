package adutype

// TimeMode selects how an Event's DeltaT field is interpreted.
type TimeMode uint8

const (
	// TimeModeDeltaT interprets DeltaT as ticks since the pixel's previous
	// event (the default, and the only mode the residual predictor reasons
	// about directly).
	TimeModeDeltaT TimeMode = iota
	// TimeModeAbsoluteT interprets the field as an absolute timestamp. No
	// code in this module converts it to a per-pixel delta; Encoder and
	// Decoder do not consult Options.TimeMode.
	TimeModeAbsoluteT
	// TimeModeMixed allows either interpretation to coexist in the same
	// stream, disambiguated by an externally-supplied per-event flag; the
	// core itself just stores whichever delta it is handed.
	TimeModeMixed
)

func (m TimeMode) String() string {
	switch m {
	case TimeModeDeltaT:
		return "delta-t"
	case TimeModeAbsoluteT:
		return "absolute-t"
	case TimeModeMixed:
		return "mixed"
	default:
		return "unknown"
	}
}
