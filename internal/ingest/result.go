package ingest

// Status tags the outcome of an ingestion attempt. The legacy contract
// collapsed every non-import into 0; the tag keeps policy rejections
// distinguishable from outright failures.
type Status int

const (
	StatusImported Status = iota
	StatusRejected
	StatusFailed
)

// RejectReason says which policy turned a file away
type RejectReason int

const (
	ReasonNone RejectReason = iota
	ReasonNotVideo
	ReasonInspectorUnavailable
	ReasonDuplicate
)

func (r RejectReason) String() string {
	switch r {
	case ReasonNotVideo:
		return "not a video file"
	case ReasonInspectorUnavailable:
		return "media inspector unavailable"
	case ReasonDuplicate:
		return "duplicate content"
	default:
		return "none"
	}
}

// Result is the tagged outcome of one ingestion
type Result struct {
	Status Status
	ID     int64
	Reason RejectReason
	Err    error
}

// Imported builds a success result carrying the new record id
func Imported(id int64) Result {
	return Result{Status: StatusImported, ID: id}
}

// Rejected builds a policy-rejection result
func Rejected(reason RejectReason) Result {
	return Result{Status: StatusRejected, Reason: reason}
}

// Failed builds a failure result carrying the cause
func Failed(err error) Result {
	return Result{Status: StatusFailed, Err: err}
}

// RecordID returns the new record id on success and 0 otherwise,
// matching the legacy return contract.
func (r Result) RecordID() int64 {
	if r.Status == StatusImported {
		return r.ID
	}
	return 0
}
