package models

import (
	"time"
)

// Document kind tags. KindGovtID is attached automatically when a farmer
// registered with an identity document on file.
const (
	KindIDProof = "ID_PROOF"
	KindLandDoc = "LAND_DOC"
	KindBank    = "BANK"
	KindOther   = "OTHER"
	KindGovtID  = "Govt ID"
)

type Document struct {
	DocumentID    int       `gorm:"primaryKey;column:document_id" json:"document_id"`
	Kind          string    `gorm:"column:kind" json:"kind"`
	FilePath      string    `gorm:"column:file_path" json:"file_path"`
	UserID        *int      `gorm:"column:user_id;index" json:"user_id,omitempty"`
	ApplicationID *int      `gorm:"column:application_id;index" json:"application_id,omitempty"`
	UploadedAt    time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

// TableName override
func (Document) TableName() string {
	return "documents"
}
