package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"estimmo/server/internal/models"
)

// Database reads DVF transactions from a local sqlite extract. It serves
// as the local-file transaction connector when a commune's data has been
// ingested ahead of time.
type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// Fetch returns the stored raw rows for a municipality, oldest first.
func (d *Database) Fetch(ctx context.Context, municipalityCode string) ([]models.RawTransaction, error) {
	query := `
        SELECT
            COALESCE(date, '') as date,
            price,
            surface
        FROM transactions
        WHERE municipality_code = ?
        ORDER BY date ASC
    `

	rows, err := d.db.QueryContext(ctx, query, municipalityCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.RawTransaction
	for rows.Next() {
		var date string
		var price, surface sql.NullFloat64

		if err := rows.Scan(&date, &price, &surface); err != nil {
			return nil, err
		}

		// Unparseable cells stay zero-valued; the normalizer drops them.
		parsed, _ := time.Parse("2006-01-02", date)

		transactions = append(transactions, models.RawTransaction{
			Date:    parsed,
			Price:   price.Float64,
			Surface: surface.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// CountByMunicipality returns the number of stored rows per commune.
func (d *Database) CountByMunicipality() (map[string]int, error) {
	rows, err := d.db.Query(`SELECT municipality_code, COUNT(*) FROM transactions GROUP BY municipality_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var code string
		var count int
		if err := rows.Scan(&code, &count); err != nil {
			return nil, err
		}
		counts[code] = count
	}
	return counts, rows.Err()
}

func (d *Database) Close() error {
	return d.db.Close()
}

// GetDB exposes the underlying handle for migrations and tests.
func (d *Database) GetDB() *sql.DB {
	return d.db
}
