package config

import (
	"log"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	if err := s.seedRoles(); err != nil {
		return err
	}

	if err := s.seedAdminUser(); err != nil {
		log.Printf("Warning: admin seeder skipped: %v", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// seedRoles seeds the static role table
func (s *Seeder) seedRoles() error {
	for _, name := range []string{models.RoleAdmin, models.RoleUser} {
		var count int64
		if err := s.db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&models.Role{Name: name}).Error; err != nil {
			return err
		}
		log.Printf("Role seeded: %s", name)
	}
	return nil
}

// seedAdminUser seeds a default admin user for development.
// In production, create the admin through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", models.RoleAdmin).
		Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	var adminRole models.Role
	if err := s.db.Where("name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	admin := &models.User{
		ID:       uuid.New().String(),
		Username: "admin",
		Email:    "admin@companyhub.local",
		Password: hashedPassword,
		Roles:    []models.Role{adminRole},
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user created: %s", admin.Username)
	return nil
}
