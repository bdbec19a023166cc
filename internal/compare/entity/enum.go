package entity

// MatchMode selects which key columns align rows across contractor tables.
type MatchMode string

const (
	MatchModeItemDescription MatchMode = "ITEM_DESCRIPTION"
	MatchModeDescription     MatchMode = "DESCRIPTION"
	MatchModeItem            MatchMode = "ITEM"
)

// Keys returns the key columns requested by the mode, in priority order.
//
// Which of them are actually used is decided per merge step, based on what is
// present on both sides.
func (m MatchMode) Keys() []string {
	switch m {
	case MatchModeDescription:
		return []string{"DESCRIPTION"}
	case MatchModeItem:
		return []string{"ITEM"}
	default:
		return []string{"ITEM", "DESCRIPTION"}
	}
}

// RunStatus tracks a comparison run through its lifecycle.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "QUEUED"
	RunStatusProcessing RunStatus = "PROCESSING"
	RunStatusDone       RunStatus = "DONE"   // merged table available
	RunStatusEmpty      RunStatus = "EMPTY"  // run finished but produced no data
	RunStatusFailed     RunStatus = "FAILED" // internal failure, see Err
)

// Finished reports whether the run reached a terminal status.
func (s RunStatus) Finished() bool {
	return s == RunStatusDone || s == RunStatusEmpty || s == RunStatusFailed
}
