package main

import (
	"adhya/config"
	"adhya/database"
	"adhya/models"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the single owner account. Reads OWNER_EMAIL and OWNER_PASSWORD from
// the environment and refuses to overwrite an existing owner.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	email := os.Getenv("OWNER_EMAIL")
	password := os.Getenv("OWNER_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("OWNER_EMAIL and OWNER_PASSWORD must be set")
	}

	db := database.Database.Db

	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleOwner).Count(&count)
	if count > 0 {
		log.Fatal("Owner account already exists, refusing to overwrite")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	owner := models.User{
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleOwner,
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Fatalf("Failed to create owner: %v", err)
	}

	log.Printf("Owner account created: %s", email)
}
