package config

import (
	"log"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/pkg/password"

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
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminMember(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedDefaultSettings(); err != nil {
		log.Printf("⚠️ Settings seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminMember seeds the default back-office admin account.
// Development/testing only; production admins are created through a
// secure process.
func (s *Seeder) seedAdminMember() error {
	var count int64
	s.db.Model(&models.Member{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.Member{
		MemberNo:   "SACCO-0001",
		FirstName:  "System",
		LastName:   "Administrator",
		Phone:      "+254700000000",
		Email:      "admin@umojasacco.co.ke",
		NationalID: "00000000",
		Password:   hashedPassword,
		JoinDate:   time.Now(),
		IsActive:   true,
		Role:       "ADMIN",
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("✅ Default admin member seeded")
	return nil
}

// seedDefaultSettings seeds operational defaults when missing
func (s *Seeder) seedDefaultSettings() error {
	defaults := map[string]string{
		"loan_limit_multiplier":     "3",
		"large_transaction_limit":   "500000",
		"late_penalty_rate_percent": "2",
	}

	for key, value := range defaults {
		var count int64
		s.db.Model(&models.Setting{}).Where("setting_key = ?", key).Count(&count)
		if count > 0 {
			continue
		}
		if err := s.db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
			return err
		}
	}

	return nil
}

// SeedMasterData keeps main.go wiring symmetrical with the seeder
func SeedMasterData(db *gorm.DB) error {
	return NewSeeder(db).Run()
}
