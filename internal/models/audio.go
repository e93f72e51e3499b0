package models

// Transcription is what the speech-to-text boundary yields. Source is
// "stt" for a real provider result and "fallback" for the static
// placeholder used when the provider is unavailable.
type Transcription struct {
	Text            string  `json:"transcription"`
	Confidence      float64 `json:"confidence"`
	DurationSeconds float64 `json:"duration"`
	Language        string  `json:"language"`
	Source          string  `json:"source"`
}

type ClarityMetrics struct {
	ClarityScore  int     `json:"clarity_score"`
	Assessment    string  `json:"assessment"`
	WordCount     int     `json:"word_count"`
	SentenceCount int     `json:"sentence_count"`
	AvgWordLength float64 `json:"avg_word_length"`
}

type PacingMetrics struct {
	PacingScore    int     `json:"pacing_score"`
	WordsPerMinute float64 `json:"words_per_minute"`
	Assessment     string  `json:"assessment"`
}

// AudioScore blends content (70%) and delivery (30%) into one result.
type AudioScore struct {
	OverallScore      int      `json:"overall_score"`
	ContentScore      int      `json:"content_score"`
	DeliveryScore     float64  `json:"delivery_score"`
	ClarityScore      int      `json:"clarity_score"`
	PacingScore       int      `json:"pacing_score"`
	DurationSeconds   float64  `json:"duration_seconds"`
	Transcription     string   `json:"transcription"`
	KeyPhrases        []string `json:"key_phrases"`
	Feedback          string   `json:"feedback"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	Suggestions       string   `json:"suggestions"`
	Recommendation    string   `json:"recommendation"`
	ClarityAssessment string   `json:"clarity_assessment"`
	PacingAssessment  string   `json:"pacing_assessment"`
	WordCount         int      `json:"word_count"`
	WordsPerMinute    float64  `json:"words_per_minute"`
}

// AudioAnalysis carries delivery metrics only; the content of the answer
// is not evaluated.
type AudioAnalysis struct {
	Transcription   string         `json:"transcription"`
	Clarity         ClarityMetrics `json:"clarity"`
	Pacing          PacingMetrics  `json:"pacing"`
	KeyPhrases      []string       `json:"key_phrases"`
	DurationSeconds float64        `json:"duration_seconds"`
}

// AudioFile describes a stored upload.
type AudioFile struct {
	FileID           string `json:"file_id"`
	Filename         string `json:"filename"`
	Path             string `json:"path"`
	SizeBytes        int    `json:"size_bytes"`
	Format           string `json:"format"`
	MimeType         string `json:"mime_type"`
	OriginalFilename string `json:"original_filename,omitempty"`
}
