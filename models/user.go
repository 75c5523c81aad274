package models

import (
	"time"
)

// Role values stored on users.role.
const (
	RoleFarmer = "farmer"
	RoleAdmin  = "admin"
)

type User struct {
	UserID       int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name         string     `gorm:"column:name" json:"name"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	Phone        *string    `gorm:"column:phone" json:"phone,omitempty"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	Gender       *string    `gorm:"column:gender" json:"gender,omitempty"`
	Dob          *string    `gorm:"column:dob" json:"dob,omitempty"`
	State        string     `gorm:"column:state" json:"state"`
	District     string     `gorm:"column:district" json:"district"`
	Aadhar       *string    `gorm:"column:aadhar;unique" json:"aadhar,omitempty"`
	DocPath      *string    `gorm:"column:doc_path" json:"doc_path,omitempty"`
	Role         string     `gorm:"column:role;default:farmer" json:"role"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`

	// Relations
	Farms        []Farm        `gorm:"foreignKey:UserID" json:"farms,omitempty"`
	Applications []Application `gorm:"foreignKey:UserID" json:"applications,omitempty"`
	Documents    []Document    `gorm:"foreignKey:UserID" json:"documents,omitempty"`
}

type Farm struct {
	FarmID        int     `gorm:"primaryKey;column:farm_id" json:"farm_id"`
	UserID        int     `gorm:"column:user_id;index" json:"user_id"`
	LandSizeAcres float64 `gorm:"column:land_size_acres;default:1" json:"land_size_acres"`
	Address       *string `gorm:"column:address" json:"address,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Farm) TableName() string {
	return "farms"
}
