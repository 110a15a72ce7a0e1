package analytics

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for analytics.
type Store struct {
	db *sql.DB
}

// NewStore creates a new analytics store.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			browser TEXT NOT NULL,
			os TEXT NOT NULL,
			device TEXT NOT NULL,
			path TEXT NOT NULL,
			referrer TEXT,
			screen_size TEXT,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_visits_visitor_id ON visits(visitor_id);
		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// SaveVisit stores a new visit in the database.
func (s *Store) SaveVisit(v *Visit) error {
	_, err := s.db.Exec(`
		INSERT INTO visits (visitor_id, ip_hash, browser, os, device, path, referrer, screen_size, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.VisitorID, v.IPHash, v.Browser, v.OS, v.Device, v.Path, v.Referrer, v.ScreenSize, v.Timestamp.UTC())
	return err
}

// GetStats returns aggregated statistics for the given time period.
func (s *Store) GetStats(from, to time.Time) (*Stats, error) {
	stats := &Stats{
		Period:        from.Format("2006-01-02") + " to " + to.Format("2006-01-02"),
		TopPages:      []PageStat{},
		BrowserStats:  []DimensionStat{},
		DeviceStats:   []DimensionStat{},
		ReferrerStats: []DimensionStat{},
		DailyViews:    []DailyView{},
	}

	err := s.db.QueryRow(`SELECT COUNT(*) FROM visits WHERE timestamp BETWEEN ? AND ?`, from, to).
		Scan(&stats.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("count views: %w", err)
	}

	err = s.db.QueryRow(`SELECT COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp BETWEEN ? AND ?`, from, to).
		Scan(&stats.UniqueVisitors)
	if err != nil {
		return nil, fmt.Errorf("count unique visitors: %w", err)
	}

	pages, err := s.pageStats(from, to)
	if err != nil {
		return nil, fmt.Errorf("top pages: %w", err)
	}
	stats.TopPages = pages

	for _, dim := range []struct {
		column string
		dest   *[]DimensionStat
	}{
		{"browser", &stats.BrowserStats},
		{"device", &stats.DeviceStats},
		{"referrer", &stats.ReferrerStats},
	} {
		rows, err := s.dimensionStats(dim.column, from, to)
		if err != nil {
			return nil, fmt.Errorf("%s stats: %w", dim.column, err)
		}
		*dim.dest = rows
	}

	daily, err := s.dailyViews(from, to)
	if err != nil {
		return nil, fmt.Errorf("daily views: %w", err)
	}
	stats.DailyViews = daily

	return stats, nil
}

func (s *Store) pageStats(from, to time.Time) ([]PageStat, error) {
	rows, err := s.db.Query(`
		SELECT path, COUNT(*) AS views FROM visits
		WHERE timestamp BETWEEN ? AND ?
		GROUP BY path ORDER BY views DESC LIMIT 20`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []PageStat{}
	for rows.Next() {
		var p PageStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *Store) dimensionStats(column string, from, to time.Time) ([]DimensionStat, error) {
	// column comes from a fixed internal list, never from user input.
	rows, err := s.db.Query(`
		SELECT `+column+`, COUNT(*) AS count FROM visits
		WHERE timestamp BETWEEN ? AND ?
		GROUP BY `+column+` ORDER BY count DESC LIMIT 10`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []DimensionStat{}
	for rows.Next() {
		var d DimensionStat
		if err := rows.Scan(&d.Name, &d.Count); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (s *Store) dailyViews(from, to time.Time) ([]DailyView, error) {
	rows, err := s.db.Query(`
		SELECT date(timestamp) AS day, COUNT(*) AS views FROM visits
		WHERE timestamp BETWEEN ? AND ?
		GROUP BY day ORDER BY day ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []DailyView{}
	for rows.Next() {
		var d DailyView
		if err := rows.Scan(&d.Date, &d.Views); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// CleanupOldVisits deletes visits older than retentionDays.
func (s *Store) CleanupOldVisits(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	_, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	return err
}

// StartCleanupScheduler runs periodic cleanup of old data. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				_ = s.CleanupOldVisits(retentionDays)
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}
