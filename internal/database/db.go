package database

import (
	"os"
	"time"

	"teamtrack/internal/logging"
	"teamtrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		logging.Logger.Infof("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			logging.Logger.Info("connected to DB successfully")
			break
		}

		logging.Logger.Warnf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		logging.Logger.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	// миграции
	err = DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Process{},
		&models.ArchivedProject{},
		&models.Task{},
		&models.Comment{},
		&models.AuditLog{},
	)
	if err != nil {
		logging.Logger.Fatalf("failed to migrate: %v", err)
	}

	// создаём дефолтного админа
	createDefaultAdmin()
}

// админ только из кода/конфига
func createDefaultAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		logging.Logger.Warnf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		// админ уже есть — ничего не делаем
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logging.Logger.Warnf("failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		Username:      username,
		PasswordHash:  string(hash),
		Role:          models.RoleAdmin,
		Name:          "Administrator",
		AccountStatus: models.AccountActive,
	}

	if err := DB.Create(&admin).Error; err != nil {
		logging.Logger.Warnf("failed to create default admin: %v", err)
		return
	}

	logging.Logger.Infof("created default admin user: %s", username)
}
