package model

import "time"

// PatientModel mirrors the 'patients' table. Name is stored encrypted; the
// varchar width bounds the ciphertext, not the plaintext.
type PatientModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(512);not null"`
	Age       int    `gorm:"not null"`
	AccountID int64  `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PatientModel) TableName() string {
	return "patients"
}

// PatientNoteModel mirrors the 'patient_notes' table. Text is stored encrypted.
type PatientNoteModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	PatientID int64  `gorm:"index;not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PatientNoteModel) TableName() string {
	return "patient_notes"
}
