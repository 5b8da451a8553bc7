// Command import loads a semicolon-delimited CSV export into the record
// store, replacing the whole table. The file is parsed completely before
// anything is written, so a malformed file leaves the store untouched.
//
// Operator-run maintenance tool; never run it concurrently with the server
// against the same database file.
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
	file := flag.String("file", "stats_visa.csv", "path of the CSV file to import")
	flag.Parse()

	log := logger.New("import").Function("main")

	config, err := config.InitConfig()
	if err != nil {
		os.Exit(1)
	}
	logger.Configure(config.LogLevel)

	f, err := os.Open(*file)
	if err != nil {
		log.Er("failed to open import file", err, "file", *file)
		os.Exit(1)
	}
	defer f.Close()

	stats, err := utils.DecodeCSV(f)
	if err != nil {
		log.Er("failed to parse import file, nothing imported", err, "file", *file)
		os.Exit(1)
	}
	log.Info("CSV file successfully parsed", "records", len(stats))

	db, err := database.New(config)
	if err != nil {
		os.Exit(1)
	}
	defer db.Close()

	repo := repositories.New(db)
	if err := repo.ReplaceAll(context.Background(), stats); err != nil {
		log.Er("failed to replace records", err)
		os.Exit(1)
	}

	log.Info("import complete", "records", len(stats))
}
