package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"estimmo/server/internal/models"
)

const importBatchSize = 500

// transactionRow is the gorm mapping of the transactions table written by
// the importer and read back by Database.Fetch.
type transactionRow struct {
	ID               int64  `gorm:"column:id;primaryKey"`
	MunicipalityCode string `gorm:"column:municipality_code"`
	Date             string `gorm:"column:date"`
	Price            float64
	Surface          float64
}

func (transactionRow) TableName() string {
	return "transactions"
}

// Importer bulk-loads DVF rows into the local sqlite extract.
type Importer struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewImporter(dbPath string, log *logrus.Logger) (*Importer, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open import database: %w", err)
	}

	if err := db.AutoMigrate(&transactionRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate transactions table: %w", err)
	}

	return &Importer{db: db, logger: log}, nil
}

// ReplaceTransactions replaces the stored rows of a municipality with the
// given raw rows, writing in batches inside one transaction.
func (i *Importer) ReplaceTransactions(municipalityCode string, rows []models.RawTransaction) error {
	batch := make([]transactionRow, len(rows))
	for n, row := range rows {
		batch[n] = transactionRow{
			MunicipalityCode: municipalityCode,
			Date:             row.Date.Format("2006-01-02"),
			Price:            row.Price,
			Surface:          row.Surface,
		}
	}

	err := i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("municipality_code = ?", municipalityCode).Delete(&transactionRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear existing rows: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(batch, importBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert transaction batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	i.logger.WithFields(logrus.Fields{
		"municipality": municipalityCode,
		"rows":         len(rows),
	}).Info("Imported transactions")

	return nil
}

// Close releases the underlying connection pool.
func (i *Importer) Close() error {
	sqlDB, err := i.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
