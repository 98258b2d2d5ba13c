package entity

import "time"

// Patient represents a person receiving therapy at a clinic. The Name field is
// confidential and stored encrypted at rest; in memory it is always plaintext.
type Patient struct {
	ID        int64     // Unique numeric identifier.
	Name      string    // Patient display name. Encrypted at the persistence boundary.
	Age       int       // Patient age in years.
	AccountID int64     // Owning account. Every query filters on this FK.
	CreatedAt time.Time // Timestamp of record creation.
	UpdatedAt time.Time // Timestamp of the last modification.
}

// PatientNote is a free-text clinical note attached to a patient.
// The text is confidential and stored encrypted at rest.
type PatientNote struct {
	ID        int64     // Unique numeric identifier.
	PatientID int64     // The patient this note belongs to.
	Text      string    // Note body. Encrypted at the persistence boundary.
	CreatedAt time.Time // Timestamp of note creation.
}
