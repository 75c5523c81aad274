package models

import (
	"time"
)

// Season values accepted on programs and applications. "Any" on a program
// means the scheme runs year round.
const (
	SeasonKharif = "Kharif"
	SeasonRabi   = "Rabi"
	SeasonZaid   = "Zaid"
	SeasonAny    = "Any"
)

type Crop struct {
	CropID int    `gorm:"primaryKey;column:crop_id" json:"crop_id"`
	Name   string `gorm:"column:name;unique" json:"name"`
}

type Program struct {
	ProgramID   int       `gorm:"primaryKey;column:program_id" json:"program_id"`
	Title       string    `gorm:"column:title" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Authority   string    `gorm:"column:authority;default:Dept. of Agriculture" json:"authority"`
	Season      string    `gorm:"column:season" json:"season"`
	MinLandSize *float64  `gorm:"column:min_land_size" json:"min_land_size,omitempty"`
	MaxLandSize *float64  `gorm:"column:max_land_size" json:"max_land_size,omitempty"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	Crops []Crop `gorm:"many2many:program_crops;foreignKey:ProgramID;joinForeignKey:ProgramID;References:CropID;joinReferences:CropID" json:"crops,omitempty"`
}

// ProgramCrop is the join row linking a program to the crops it covers.
type ProgramCrop struct {
	ProgramID int `gorm:"primaryKey;column:program_id" json:"program_id"`
	CropID    int `gorm:"primaryKey;column:crop_id" json:"crop_id"`
}

// TableName overrides
func (Crop) TableName() string {
	return "crops"
}

func (Program) TableName() string {
	return "programs"
}

func (ProgramCrop) TableName() string {
	return "program_crops"
}
