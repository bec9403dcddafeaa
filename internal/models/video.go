package models

import "time"

// VideoStatus is the lifecycle state of an uploaded video. The pipeline moves a
// video through the non-terminal states strictly in order; COMPLETE and FAILED
// are terminal and never left.
type VideoStatus string

const (
	StatusProcessing      VideoStatus = "processing"
	StatusTranscribing    VideoStatus = "transcribing"
	StatusAnalyzing       VideoStatus = "analyzing"
	StatusGeneratingClips VideoStatus = "generating_clips"
	StatusComplete        VideoStatus = "complete"
	StatusFailed          VideoStatus = "failed"
)

// stageOrder lists the forward path of the lifecycle. FAILED is reachable from
// any non-terminal state and is not part of the forward path.
var stageOrder = []VideoStatus{
	StatusProcessing,
	StatusTranscribing,
	StatusAnalyzing,
	StatusGeneratingClips,
	StatusComplete,
}

var stageProgress = map[VideoStatus]int{
	StatusProcessing:      0,
	StatusTranscribing:    30,
	StatusAnalyzing:       60,
	StatusGeneratingClips: 80,
	StatusComplete:        100,
	StatusFailed:          0,
}

// Valid reports whether the status is one of the known lifecycle states.
func (s VideoStatus) Valid() bool {
	_, ok := stageProgress[s]
	return ok
}

// Progress returns the canonical progress percentage for the state.
func (s VideoStatus) Progress() int {
	return stageProgress[s]
}

// Terminal reports whether no further transitions are permitted.
func (s VideoStatus) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// Next returns the following state on the forward path, or false if the state
// is terminal.
func (s VideoStatus) Next() (VideoStatus, bool) {
	for i, st := range stageOrder {
		if st == s && i+1 < len(stageOrder) {
			return stageOrder[i+1], true
		}
	}
	return "", false
}

// CanTransitionTo reports whether the machine may move from s to next: one
// step forward on the ordered path, or to FAILED from any non-terminal state.
func (s VideoStatus) CanTransitionTo(next VideoStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusFailed {
		return true
	}
	n, ok := s.Next()
	return ok && n == next
}

type Video struct {
	ID          string      `db:"id" json:"video_id"`
	UserID      string      `db:"user_id" json:"user_id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description,omitempty"`
	FilePath    string      `db:"file_path" json:"-"`
	Status      VideoStatus `db:"status" json:"status"`
	Progress    int         `db:"progress" json:"progress"`
	UploadedAt  time.Time   `db:"uploaded_at" json:"uploaded_at"`
	FileSize    int64       `db:"file_size" json:"file_size"`
}
