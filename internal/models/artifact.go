package models

// TranscriptSegment is a single timed span of recognized speech.
type TranscriptSegment struct {
	ID         int     `db:"id" json:"id"`
	Start      float64 `db:"start_time" json:"start"`
	End        float64 `db:"end_time" json:"end"`
	Text       string  `db:"text" json:"text"`
	Confidence float64 `db:"confidence" json:"confidence"`
}

// Transcript is produced once per video at the end of the transcription stage.
type Transcript struct {
	VideoID  string              `db:"video_id" json:"video_id"`
	FullText string              `db:"full_text" json:"full_text"`
	Segments []TranscriptSegment `json:"segments"`
	Duration float64             `db:"duration" json:"duration"`
	Language string              `db:"language" json:"language"`
}

// Summary is produced once per video at the end of the analysis stage.
type Summary struct {
	VideoID            string   `db:"video_id" json:"video_id"`
	ExecutiveSummary   string   `db:"executive_summary" json:"executive_summary"`
	KeyConcepts        []string `json:"key_concepts"`
	LearningObjectives []string `json:"learning_objectives"`
	Topics             []string `json:"topics"`
	DifficultyLevel    string   `db:"difficulty_level" json:"difficulty_level"`
}

// Clip is a highlight segment cut from a processed video. Clip generation is
// not implemented; listings are empty until it is.
type Clip struct {
	ID              string  `db:"id" json:"clip_id"`
	VideoID         string  `db:"video_id" json:"video_id"`
	Title           string  `db:"title" json:"title"`
	StartTime       float64 `db:"start_time" json:"start_time"`
	EndTime         float64 `db:"end_time" json:"end_time"`
	Duration        float64 `db:"duration" json:"duration"`
	ImportanceScore float64 `db:"importance_score" json:"importance_score"`
	ThumbnailURL    string  `db:"thumbnail_url" json:"thumbnail_url"`
	DownloadURL     string  `db:"download_url" json:"download_url"`
}
