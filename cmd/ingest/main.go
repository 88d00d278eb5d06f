package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"estimmo/server/internal/database"
	"estimmo/server/internal/dvf"
	"estimmo/server/internal/source"
)

// ingest loads a geo-DVF commune CSV file into a local sqlite extract, so
// the server can run against local data instead of the remote mirror.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	dbPath := flag.String("db", "database/dvf.db", "path to the sqlite extract")
	csvPath := flag.String("file", "", "path to a geo-DVF commune CSV file")
	municipality := flag.String("municipality", "", "INSEE code of the commune being loaded")
	flag.Parse()

	if *csvPath == "" || *municipality == "" {
		logger.Fatal("Both -file and -municipality are required")
	}
	if !source.ValidMunicipalityCode(*municipality) {
		logger.Fatalf("Invalid INSEE code: %s", *municipality)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open DVF file")
	}
	defer f.Close()

	rows, err := dvf.ParseCSV(f)
	if err != nil {
		logger.WithError(err).Fatal("Failed to parse DVF file")
	}
	logger.Infof("Parsed %d sale rows from %s", len(rows), *csvPath)

	importer, err := database.NewImporter(*dbPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open import database")
	}
	defer importer.Close()

	if err := importer.ReplaceTransactions(*municipality, rows); err != nil {
		logger.WithError(err).Fatal("Failed to import transactions")
	}
}
