package main

import (
	"crypto/sha1"
	"encoding/hex"
	"log"
	"os"

	"voucher-backend/internal/app/ds"
	"voucher-backend/internal/app/dsn"
	"voucher-backend/internal/app/role"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	// Получение DSN строки подключения
	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Миграция всех моделей
	err = db.AutoMigrate(
		&ds.User{},
		&ds.UserProfile{},
		&ds.Designation{},
		&ds.ActiveApprovalDesignation{},
		&ds.Voucher{},
		&ds.Particular{},
		&ds.VoucherApproval{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully")

	seedSuperuser(db)
}

// seedSuperuser создает учетную запись администратора, если ее еще нет
func seedSuperuser(db *gorm.DB) {
	login := os.Getenv("ADMIN_LOGIN")
	if login == "" {
		login = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var count int64
	db.Model(&ds.User{}).Where("login = ?", login).Count(&count)
	if count > 0 {
		log.Printf("Superuser %q already exists, skipping seed", login)
		return
	}

	hash := sha1.Sum([]byte(password))
	admin := ds.User{
		Login:       login,
		Password:    hex.EncodeToString(hash[:]),
		FullName:    "Администратор системы",
		Role:        role.AdminStaff,
		IsSuperuser: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to seed superuser: %v", err)
	}

	log.Printf("Superuser %q created", login)
}
