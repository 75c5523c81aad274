package config

import (
	"log"
	"os"

	"kissan-konnect-api/models"

	"golang.org/x/crypto/bcrypt"
)

// Migrate creates or updates the portal schema.
func Migrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Farm{},
		&models.Crop{},
		&models.Program{},
		&models.ProgramCrop{},
		&models.Application{},
		&models.ApplicationStatusHistory{},
		&models.Document{},
		&models.UserToken{},
	)
}

// Seed inserts the demo crops, programs and the admin account. Every step
// checks for existing rows first, so running it on every boot is safe.
func Seed() error {
	crops := []string{"Rice", "Wheat", "Maize", "Cotton", "Sugarcane", "Pulses"}
	for _, name := range crops {
		var existing models.Crop
		err := DB.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if err := DB.Create(&models.Crop{Name: name}).Error; err != nil {
			return err
		}
	}

	var programCount int64
	if err := DB.Model(&models.Program{}).Count(&programCount).Error; err != nil {
		return err
	}
	if programCount == 0 {
		half := 0.5
		five := 5.0
		zero := 0.0
		ten := 10.0

		programs := []models.Program{
			{
				Title:       "Kharif Input Subsidy",
				Description: "Support for input costs during Kharif season for smallholders.",
				Authority:   "State Agriculture Dept.",
				Season:      models.SeasonKharif,
				MinLandSize: &half,
				MaxLandSize: &five,
				IsActive:    true,
			},
			{
				Title:       "Smallholder Equipment Grant",
				Description: "Grant for small-scale farm equipment purchase.",
				Authority:   "Central Agri Scheme",
				Season:      models.SeasonAny,
				MinLandSize: &zero,
				MaxLandSize: &ten,
				IsActive:    true,
			},
			{
				Title:       "Soil Health Card",
				Description: "Soil testing and advisory services subsidy.",
				Authority:   "State Agriculture Dept.",
				Season:      models.SeasonAny,
				IsActive:    true,
			},
		}
		for i := range programs {
			if err := DB.Create(&programs[i]).Error; err != nil {
				return err
			}
		}

		// Every demo program supports Rice and Wheat.
		var rice, wheat models.Crop
		if err := DB.Where("name = ?", "Rice").First(&rice).Error; err != nil {
			return err
		}
		if err := DB.Where("name = ?", "Wheat").First(&wheat).Error; err != nil {
			return err
		}
		for i := range programs {
			links := []models.ProgramCrop{
				{ProgramID: programs[i].ProgramID, CropID: rice.CropID},
				{ProgramID: programs[i].ProgramID, CropID: wheat.CropID},
			}
			if err := DB.Create(&links).Error; err != nil {
				return err
			}
		}
	}

	var admin models.User
	if err := DB.Where("email = ?", "admin@kissan.com").First(&admin).Error; err != nil {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "Admin@12345"
			log.Println("ADMIN_PASSWORD not set, seeding admin with default password")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin = models.User{
			Name:         "Admin",
			Email:        "admin@kissan.com",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			State:        "Andhra Pradesh",
			District:     "HQ",
		}
		if err := DB.Create(&admin).Error; err != nil {
			return err
		}
	}

	return nil
}
