package entity

// VideoAnalysis is the result returned by the emotion-analysis model for a
// single video: aggregate counts per emotion plus a per-timestamp timeline.
type VideoAnalysis struct {
	EmotionSummary map[string]int    `json:"emotion_summary"`
	Timeline       map[string]string `json:"timeline"`
}

// EmotionCount is one aggregated emotion/count pair used by the analytics views.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}
