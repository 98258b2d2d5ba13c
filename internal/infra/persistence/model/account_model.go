// Package model contains the GORM persistence models mirroring the database
// schema. Confidential columns hold ciphertext; the postgres repositories run
// every value through the field codec when mapping to and from domain entities.
package model

import "time"

// AccountModel mirrors the 'accounts' table.
type AccountModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:varchar(255);not null"`
	Email        string `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(32);not null;default:clinic"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
