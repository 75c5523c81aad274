package models

import (
	"time"
)

// Application status values. Transitions only move forward:
// pending -> under_review -> approved | rejected.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

type Application struct {
	ApplicationID int       `gorm:"primaryKey;column:application_id" json:"application_id"`
	UserID        int       `gorm:"column:user_id;index" json:"user_id"`
	ProgramID     int       `gorm:"column:program_id;index" json:"program_id"`
	CropID        int       `gorm:"column:crop_id;index" json:"crop_id"`
	Acreage       float64   `gorm:"column:acreage" json:"acreage"`
	Season        string    `gorm:"column:season" json:"season"`
	Status        string    `gorm:"column:status;default:pending" json:"status"`
	Score         *float64  `gorm:"column:score" json:"score,omitempty"`
	Remarks       *string   `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
	SubmittedAt   time.Time `gorm:"column:submitted_at" json:"submitted_at"`

	// Relations
	User          User                       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Program       Program                    `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	Crop          Crop                       `gorm:"foreignKey:CropID" json:"crop,omitempty"`
	Documents     []Document                 `gorm:"foreignKey:ApplicationID" json:"documents,omitempty"`
	StatusHistory []ApplicationStatusHistory `gorm:"foreignKey:ApplicationID" json:"status_history,omitempty"`
}

// IsInFlight reports whether the application still blocks resubmission to
// the same program.
func (a *Application) IsInFlight() bool {
	return a.Status == StatusPending || a.Status == StatusUnderReview
}

// ApplicationStatusHistory is an append-only audit record. Rows are never
// updated or deleted.
type ApplicationStatusHistory struct {
	HistoryID     int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	ApplicationID int       `gorm:"column:application_id;index" json:"application_id"`
	Status        string    `gorm:"column:status" json:"status"`
	ByAdminID     *int      `gorm:"column:by_admin_id" json:"by_admin_id,omitempty"`
	Note          *string   `gorm:"column:note;type:text" json:"note,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (Application) TableName() string {
	return "applications"
}

func (ApplicationStatusHistory) TableName() string {
	return "application_status_history"
}
