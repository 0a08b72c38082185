package boot

import (
	"cems/src/db"
	"cems/src/models"
	"cems/src/types"
	"log"
	"os"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Venue{},
		&models.Category{},
		&models.Event{},
		&models.Booking{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// Seed provisions the first admin account and the default catalog rows
// on an empty database. Safe to run on every boot.
func Seed(conn *gorm.DB) {
	var admins int64
	conn.Model(&models.User{}).Where("role = ?", types.ROLE_ADMIN).Count(&admins)
	if admins == 0 {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "adminpass"
		}
		admin := models.User{
			Email:    "admin@campus.edu",
			FullName: "Administrator",
			Role:     types.ROLE_ADMIN,
			Active:   true,
		}
		if err := admin.SetPassword(password); err != nil {
			log.Printf("[seed] Error hashing admin password: %s\n", err.Error())
		} else if err := conn.Create(&admin).Error; err != nil {
			log.Printf("[seed] Error creating admin: %s\n", err.Error())
		}
	}

	var categories int64
	conn.Model(&models.Category{}).Count(&categories)
	if categories == 0 {
		for _, name := range []string{"Tech", "Cultural", "Sports", "Workshops"} {
			if err := conn.Create(&models.Category{Name: name}).Error; err != nil {
				log.Printf("[seed] Error creating category %s: %s\n", name, err.Error())
			}
		}
	}

	var venues int64
	conn.Model(&models.Venue{}).Count(&venues)
	if venues == 0 {
		seedVenues := []models.Venue{
			{Name: "Main Auditorium", Capacity: 500, Status: types.VENUE_FREE, Location: "Block A"},
			{Name: "Seminar Hall 1", Capacity: 120, Status: types.VENUE_FREE, Location: "Block B"},
			{Name: "Open Grounds", Capacity: 0, Status: types.VENUE_FREE, Location: "East Campus"},
		}
		for _, venue := range seedVenues {
			if err := conn.Create(&venue).Error; err != nil {
				log.Printf("[seed] Error creating venue %s: %s\n", venue.Name, err.Error())
			}
		}
	}
}
