package sqlite

func (s Storage) RunMigrations() error {
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS syncs (
		calendar_id VARCHAR NOT NULL PRIMARY KEY,
		sync_token VARCHAR NOT NULL DEFAULT '',
		events INTEGER NOT NULL DEFAULT 0,
		synced_at INTEGER NOT NULL
	)`,
}
