// Command backup snapshots the record store to a semicolon-delimited CSV
// file in the same format the import command consumes.
package main

import (
	"context"
	"flag"
	"os"

	"server/config"
	"server/internal/database"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/utils"
)

func main() {
	file := flag.String("file", "stats_visa.csv", "path of the CSV file to write")
	flag.Parse()

	log := logger.New("backup").Function("main")

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

	repo := repositories.New(db)
	stats, err := repo.GetAll(context.Background())
	if err != nil {
		log.Er("failed to read records", err)
		os.Exit(1)
	}

	f, err := os.Create(*file)
	if err != nil {
		log.Er("failed to create backup file", err, "file", *file)
		os.Exit(1)
	}
	defer f.Close()

	if err := utils.EncodeCSV(f, stats); err != nil {
		log.Er("failed to write backup file", err, "file", *file)
		os.Exit(1)
	}

	log.Info("backup complete", "records", len(stats), "file", *file)
}
