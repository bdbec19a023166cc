package entity

// UploadedFile is one file from the comparison request: raw bytes plus the
// client-declared filename. It lives only for the duration of the run.
type UploadedFile struct {
	Name string
	Data []byte
}

// RunMeta describes a comparison run without holding its table.
type RunMeta struct {
	ID        string
	Mode      MatchMode
	Status    RunStatus
	Err       string
	StartedAt int64
	EndedAt   int64

	// Stats help observability without storing the inputs
	FileCount     int
	LoadedFiles   int
	RejectedFiles int
	ResultRows    int
	ResultCols    int
}
