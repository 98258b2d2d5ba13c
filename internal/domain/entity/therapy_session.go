package entity

import "time"

// TherapySession is one recorded therapy session of a patient, holding the
// emotion-analysis results produced by the video model. Results and
// observations are confidential and stored encrypted at rest.
type TherapySession struct {
	ID           int64     // Unique numeric identifier.
	PatientID    int64     // The patient this session belongs to.
	Date         time.Time // When the session took place.
	Results      string    // JSON document with emotion_summary and timeline. Encrypted at rest.
	Observations string    // Free-text therapist observations, may be empty. Encrypted at rest.
	CreatedAt    time.Time // Timestamp of record creation.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
