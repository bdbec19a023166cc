package entity

// FileRejectedEvent is published when an uploaded file cannot be read and is
// excluded from the merge. The run itself continues with the remaining files.
type FileRejectedEvent struct {
	EventID  int64
	RunID    string
	Filename string
	Reason   string
}
