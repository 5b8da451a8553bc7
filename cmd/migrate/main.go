// Command migrate applies the schema migrations to the configured SQLite
// database. With -seed it also inserts a few development records.
package main

import (
	"flag"
	"os"

	"server/config"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/migrations"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

func main() {
	seed := flag.Bool("seed", false, "insert development seed data after migrating")
	flag.Parse()

	log := logger.New("migrate").Function("main")

	config, err := config.InitConfig()
	if err != nil {
		os.Exit(1)
	}
	logger.Configure(config.LogLevel)

	db, err := database.New(config)
	if err != nil {
		os.Exit(1)
	}
	defer db.Close()

	sqlDB, err := db.SQL.DB()
	if err != nil {
		log.Er("failed to get sql database", err)
		os.Exit(1)
	}

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations.FS,
		Root:       ".",
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", source, migrate.Up)
	if err != nil {
		log.Er("failed to apply migrations", err)
		os.Exit(1)
	}
	log.Info("migrations applied", "count", applied)

	if *seed {
		if err := seedVisaStats(db.SQL, log); err != nil {
			os.Exit(1)
		}
	}
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

func seedVisaStats(db *gorm.DB, log logger.Logger) error {
	log = log.Function("seedVisaStats")
	log.Info("Seeding development data")

	stats := []VisaStat{
		{
			City:                 Cities[0],
			VisaApplicationDate:  "2024-01-10",
			VisaIssueDate:        "2024-02-02",
			WaitingDays:          23,
			TravelPurpose:        "туризм",
			AdditionalDocRequest: false,
			TicketsPurchased:     true,
			HotelsPurchased:      true,
			FinancialGuarantee:   floatPtr(250),
			VisaCenter:           VisaCenters[0],
			VisaStatus:           VisaStatusIssued,
			VisaIssuedForDays:    intPtr(90),
			CorridorDays:         intPtr(180),
		},
		{
			City:                 Cities[8],
			VisaApplicationDate:  "2024-01-15",
			VisaIssueDate:        "2024-02-20",
			WaitingDays:          36,
			TravelPurpose:        "туризм",
			AdditionalDocRequest: true,
			VisaCenter:           VisaCenters[1],
			VisaStatus:           VisaStatusIssued,
			VisaIssuedForDays:    intPtr(30),
		},
		{
			City:                Cities[0],
			VisaApplicationDate: "2024-02-01",
			VisaIssueDate:       "2024-02-12",
			WaitingDays:         11,
			TravelPurpose:       "деловая поездка",
			VisaCenter:          VisaCenters[0],
			VisaStatus:          VisaStatusRefused,
		},
	}

	var existing int64
	if err := db.Model(&VisaStat{}).Count(&existing).Error; err != nil {
		return log.Err("failed to count existing records", err)
	}
	if existing > 0 {
		log.Info("Records already present, skipping seed", "count", existing)
		return nil
	}

	for _, stat := range stats {
		if err := db.Create(&stat).Error; err != nil {
			log.Er("failed to seed visa stat", err, "stat", stat)
		}
	}

	log.Info("Seed complete", "count", len(stats))
	return nil
}
