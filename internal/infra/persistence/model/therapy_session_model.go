package model

import "time"

// TherapySessionModel mirrors the 'therapy_sessions' table. Results and
// Observations are stored encrypted; Observations is nullable and nil means
// the therapist never recorded any.
type TherapySessionModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	PatientID    int64     `gorm:"index;not null"`
	Date         time.Time `gorm:"not null"`
	Results      string    `gorm:"type:text;not null"`
	Observations *string   `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (TherapySessionModel) TableName() string {
	return "therapy_sessions"
}
