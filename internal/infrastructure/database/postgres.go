package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/config"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/money"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Operator and store entities
		&entity.User{},
		&entity.Terminal{},
		&entity.Customer{},
		&entity.PosSettings{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},
		&entity.Variation{},
		&entity.ModifierOption{},

		// Transaction entities
		&entity.Order{},
		&entity.OrderLine{},
		&entity.TenderSubmission{},
		&entity.GiftCard{},

		// Shift and audit entities
		&entity.Shift{},
		&entity.CashTransaction{},
		&entity.OverrideAuditEntry{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the settings row, a default terminal, and the
// operator accounts a fresh install needs to take its first order.
func SeedDefaultData(db *gorm.DB, pos *config.POSConfig) error {
	log.Println("Seeding default data...")

	var settings entity.PosSettings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.PosSettings{
			Currency:                 pos.Currency,
			TaxRate:                  pos.TaxRate,
			CashierMaxDiscountPct:    pos.CashierMaxDiscountPct,
			CashierMaxDiscountAmount: money.Cents(pos.CashierMaxDiscountCents),
			ManagerMaxDiscountPct:    pos.ManagerMaxDiscountPct,
			ManagerMaxDiscountAmount: money.Cents(pos.ManagerMaxDiscountCents),
		}
		if err := db.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
	}

	var terminal entity.Terminal
	if err := db.Where("name = ?", "Front Counter").First(&terminal).Error; err != nil {
		terminal = entity.Terminal{Name: "Front Counter", Location: "Main floor"}
		if err := db.Create(&terminal).Error; err != nil {
			log.Printf("Warning: failed to create default terminal: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminPIN := viper.GetString("ADMIN_PIN")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				adminUser := entity.User{
					ID:        uuid.New(),
					FirstName: "Store",
					LastName:  "Admin",
					Email:     adminEmail,
					Password:  string(hashedPassword),
					Role:      enum.RoleAdmin,
					Active:    true,
				}
				if adminPIN != "" {
					hashedPIN, err := bcrypt.GenerateFromPassword([]byte(adminPIN), bcrypt.DefaultCost)
					if err != nil {
						log.Printf("Warning: failed to hash admin PIN: %v", err)
					} else {
						pin := string(hashedPIN)
						adminUser.PinHash = &pin
					}
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	if viper.GetBool("SEED_DEMO_DATA") {
		seedDemoData(db, terminal.ID)
	}

	log.Println("Default data seeding completed")
	return nil
}

// seedDemoData loads a small catalog and staff accounts so a fresh
// install can ring up orders without any back-office work. Never
// enabled by default; the demo accounts share the PIN 1234.
func seedDemoData(db *gorm.DB, terminalID uuid.UUID) {
	var count int64
	db.Model(&entity.Product{}).Count(&count)
	if count > 0 {
		return
	}

	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	pinHash, _ := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	pin := string(pinHash)

	staff := []entity.User{
		{ID: uuid.New(), FirstName: "Demo", LastName: "Manager", Email: "manager@demo.local", Password: string(password), PinHash: &pin, Role: enum.RoleManager, Active: true},
		{ID: uuid.New(), FirstName: "Demo", LastName: "Cashier", Email: "cashier@demo.local", Password: string(password), Role: enum.RoleCashier, Active: true},
	}
	for i := range staff {
		if err := db.Where("email = ?", staff[i].Email).FirstOrCreate(&staff[i]).Error; err != nil {
			log.Printf("Warning: failed to seed demo user %s: %v", staff[i].Email, err)
		}
	}

	food := entity.Category{ID: uuid.New(), Name: "Food", Slug: "food"}
	drinks := entity.Category{ID: uuid.New(), Name: "Drinks", Slug: "drinks"}
	for _, cat := range []*entity.Category{&food, &drinks} {
		if err := db.Where("name = ?", cat.Name).FirstOrCreate(cat).Error; err != nil {
			log.Printf("Warning: failed to seed demo category %s: %v", cat.Name, err)
		}
	}

	burger := entity.Product{
		ID: uuid.New(), Name: "Burger", SKU: "DEMO-BURGER", CategoryID: &food.ID,
		Price: 1050, Stock: 100, Active: true,
		Modifiers: []entity.ModifierOption{
			{ID: uuid.New(), Name: "Extra Cheese", Price: 150},
			{ID: uuid.New(), Name: "Bacon", Price: 250},
		},
	}
	soda := entity.Product{
		ID: uuid.New(), Name: "Soda", SKU: "DEMO-SODA", CategoryID: &drinks.ID,
		Price: 250, Stock: 500, Active: true,
		Variations: []entity.Variation{
			{ID: uuid.New(), Name: "Small", Price: 250, Stock: 250},
			{ID: uuid.New(), Name: "Large", Price: 350, Stock: 250},
		},
	}
	for _, p := range []*entity.Product{&burger, &soda} {
		if err := db.Create(p).Error; err != nil {
			log.Printf("Warning: failed to seed demo product %s: %v", p.Name, err)
		}
	}

	log.Printf("Demo data seeded for terminal %s", terminalID)
}
