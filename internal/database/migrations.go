package database

func (d *Database) RunMigrations() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			municipality_code TEXT NOT NULL,
			date TEXT NOT NULL,
			price REAL NOT NULL,
			surface REAL NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_municipality
		ON transactions(municipality_code, date);
	`)
	if err != nil {
		return err
	}

	return nil
}
