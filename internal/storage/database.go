package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite); required for the
	// clip -> segment cascade.
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS clips (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			path TEXT NOT NULL,
			game_id INTEGER,
			canonical_game_id TEXT,
			canonical_clip_id TEXT,
			opponent TEXT,
			opponent_slug TEXT,
			location TEXT,
			game_score TEXT,
			quarter INTEGER,
			possession INTEGER,
			situation TEXT,
			formation TEXT,
			play_name TEXT,
			scout_coverage TEXT,
			action_trigger TEXT,
			action_types TEXT,
			action_sequence TEXT,
			coverage TEXT,
			ball_screen TEXT,
			off_ball_screen TEXT,
			help_rotation TEXT,
			disruption TEXT,
			breakdown TEXT,
			result TEXT,
			paint_touch TEXT,
			shooter TEXT,
			shot_location TEXT,
			contest TEXT,
			rebound TEXT,
			points INTEGER,
			has_shot TEXT,
			shot_x TEXT,
			shot_y TEXT,
			shot_result TEXT,
			notes TEXT,
			start_time TEXT,
			end_time TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_clips_game ON clips (game_id);`,
		`CREATE INDEX IF NOT EXISTS idx_clips_canonical_game ON clips (canonical_game_id);`,
		`CREATE INDEX IF NOT EXISTS idx_clips_canonical_clip ON clips (canonical_clip_id);`,
		`CREATE TABLE IF NOT EXISTS comm_segments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			clip_id TEXT NOT NULL REFERENCES clips(id) ON DELETE CASCADE,
			start REAL NOT NULL,
			"end" REAL NOT NULL,
			duration REAL NOT NULL,
			peak_dbfs REAL,
			rms REAL,
			rms_dbfs REAL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_comm_clip ON comm_segments (clip_id);`,
		`CREATE INDEX IF NOT EXISTS idx_comm_start ON comm_segments (clip_id, start);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
