// Package store provides SQLite persistence for govlens: collected
// signals between runs and a record of every digest sent.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/abelbrown/govlens/internal/signal"
)

// Store handles SQLite persistence. All methods are safe for concurrent
// use via an internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates a Store at the given database path, creating tables as
// needed. File-based databases run in WAL mode.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS signals (
		stable_id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		source_id TEXT NOT NULL,
		title TEXT NOT NULL,
		summary TEXT,
		link TEXT,
		agency TEXT,
		bill_id TEXT,
		docket_id TEXT,
		action_type TEXT,
		comment_count INTEGER DEFAULT 0,
		deadline DATETIME,
		timestamp DATETIME NOT NULL,
		issue_codes TEXT,
		metrics TEXT,
		signal_type TEXT,
		urgency TEXT,
		priority_score REAL DEFAULT 0,
		industry TEXT,
		watchlist_matches TEXT,
		first_seen DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_signals_timestamp ON signals(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_signals_source ON signals(source);
	CREATE INDEX IF NOT EXISTS idx_signals_score ON signals(priority_score DESC);

	CREATE TABLE IF NOT EXISTS digest_runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		hours_back INTEGER NOT NULL,
		signal_count INTEGER NOT NULL,
		emitted_count INTEGER NOT NULL,
		overflow_count INTEGER NOT NULL,
		body TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON digest_runs(created_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveSignals stores a batch, returning the count of first-time rows.
// Known signals keep their first_seen but get their volatile fields
// (counts, derived fields) refreshed.
func (s *Store) SaveSignals(signals []signal.Signal, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(signals) == 0 {
		return 0, nil
	}

	insert, err := s.db.Prepare(`
		INSERT OR IGNORE INTO signals (
			stable_id, source, source_id, title, summary, link, agency,
			bill_id, docket_id, action_type, comment_count, deadline,
			timestamp, issue_codes, metrics, signal_type, urgency,
			priority_score, industry, watchlist_matches, first_seen
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer insert.Close()

	update, err := s.db.Prepare(`
		UPDATE signals SET
			comment_count = ?, deadline = ?, metrics = ?, signal_type = ?,
			urgency = ?, priority_score = ?, industry = ?, watchlist_matches = ?
		WHERE stable_id = ?
	`)
	if err != nil {
		return 0, err
	}
	defer update.Close()

	newCount := 0
	for i := range signals {
		sig := &signals[i]
		codes, metrics, matches, err := encodeJSONFields(sig)
		if err != nil {
			return newCount, fmt.Errorf("encode %s: %w", sig.StableID(), err)
		}

		result, err := insert.Exec(
			sig.StableID(), string(sig.Source), sig.SourceID, sig.Title,
			sig.Summary, sig.Link, sig.Agency, sig.BillID, sig.DocketID,
			sig.ActionType, sig.CommentCount, nullableTime(sig.Deadline),
			sig.Timestamp, codes, metrics, string(sig.Type),
			string(sig.Urgency), sig.PriorityScore, sig.Industry, matches,
			now.UTC(),
		)
		if err != nil {
			return newCount, err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return newCount, err
		}
		if affected > 0 {
			newCount++
			continue
		}

		if _, err := update.Exec(
			sig.CommentCount, nullableTime(sig.Deadline), metrics,
			string(sig.Type), string(sig.Urgency), sig.PriorityScore,
			sig.Industry, matches, sig.StableID(),
		); err != nil {
			return newCount, err
		}
	}

	return newCount, nil
}

// ListSince retrieves signals with a timestamp after the given instant,
// newest first.
func (s *Store) ListSince(since time.Time) ([]signal.Signal, error) {
	return s.ListFiltered(Filter{Since: since})
}

// Filter narrows ListFiltered results. Zero values mean "no constraint".
type Filter struct {
	Source   signal.Source
	Since    time.Time
	MinScore float64
	Limit    int
}

// ListFiltered retrieves signals matching the filter, newest first.
func (s *Store) ListFiltered(f Filter) ([]signal.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := sq.Select(signalColumns).
		From("signals").
		OrderBy("timestamp DESC")

	if f.Source != "" {
		q = q.Where(sq.Eq{"source": string(f.Source)})
	}
	if !f.Since.IsZero() {
		q = q.Where(sq.Gt{"timestamp": f.Since})
	}
	if f.MinScore > 0 {
		q = q.Where(sq.GtOrEq{"priority_score": f.MinScore})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return s.querySignals(query, args...)
}

// CommentCount returns the stored comment count for a signal, with ok
// false when the signal has never been seen. Collectors use this to
// compute 24h comment deltas.
func (s *Store) CommentCount(stableID string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(
		"SELECT comment_count FROM signals WHERE stable_id = ?", stableID,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// DigestRun records one composed digest.
type DigestRun struct {
	ID            string
	CreatedAt     time.Time
	HoursBack     int
	SignalCount   int
	EmittedCount  int
	OverflowCount int
	Body          string
}

// SaveRun persists a digest run, assigning a fresh UUID when the run
// has none. Returns the run ID.
func (s *Store) SaveRun(run DigestRun) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO digest_runs (
			id, created_at, hours_back, signal_count, emitted_count,
			overflow_count, body
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.CreatedAt, run.HoursBack, run.SignalCount,
		run.EmittedCount, run.OverflowCount, run.Body)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return run.ID, nil
}

// ListRuns retrieves the most recent digest runs, newest first.
func (s *Store) ListRuns(limit int) ([]DigestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, created_at, hours_back, signal_count, emitted_count,
			overflow_count, body
		FROM digest_runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []DigestRun
	for rows.Next() {
		var r DigestRun
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.HoursBack,
			&r.SignalCount, &r.EmittedCount, &r.OverflowCount, &r.Body); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Stats summarizes stored content for the stats command.
type Stats struct {
	TotalSignals    int
	BySource        map[signal.Source]int
	WatchlistHits   int
	DigestRunsTotal int
}

// GetStats aggregates signal and run counts.
func (s *Store) GetStats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{BySource: make(map[signal.Source]int)}

	rows, err := s.db.Query("SELECT source, COUNT(*) FROM signals GROUP BY source")
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var src string
		var n int
		if err := rows.Scan(&src, &n); err != nil {
			return stats, err
		}
		stats.BySource[signal.Source(src)] = n
		stats.TotalSignals += n
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM signals WHERE watchlist_matches NOT IN ('', 'null', '[]') AND watchlist_matches IS NOT NULL",
	).Scan(&stats.WatchlistHits)
	if err != nil {
		return stats, err
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM digest_runs").Scan(&stats.DigestRunsTotal)
	return stats, err
}

const signalColumns = `stable_id, source, source_id, title, summary, link,
	agency, bill_id, docket_id, action_type, comment_count, deadline,
	timestamp, issue_codes, metrics, signal_type, urgency, priority_score,
	industry, watchlist_matches`

func (s *Store) querySignals(query string, args ...any) ([]signal.Signal, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []signal.Signal
	for rows.Next() {
		sig, err := scanSignal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sig)
	}
	return out, rows.Err()
}

func scanSignal(rows *sql.Rows) (signal.Signal, error) {
	var (
		sig      signal.Signal
		stableID string
		source   string
		deadline sql.NullTime
		codes    sql.NullString
		metrics  sql.NullString
		sigType  string
		urgency  string
		matches  sql.NullString
	)
	err := rows.Scan(
		&stableID, &source, &sig.SourceID, &sig.Title, &sig.Summary,
		&sig.Link, &sig.Agency, &sig.BillID, &sig.DocketID, &sig.ActionType,
		&sig.CommentCount, &deadline, &sig.Timestamp, &codes, &metrics,
		&sigType, &urgency, &sig.PriorityScore, &sig.Industry, &matches,
	)
	if err != nil {
		return sig, err
	}

	sig.Source = signal.Source(source)
	sig.Type = signal.Type(sigType)
	sig.Urgency = signal.Urgency(urgency)
	if deadline.Valid {
		d := deadline.Time.UTC()
		sig.Deadline = &d
	}
	if err := decodeJSONField(codes, &sig.IssueCodes); err != nil {
		return sig, fmt.Errorf("decode issue codes for %s: %w", stableID, err)
	}
	if err := decodeJSONField(metrics, &sig.Metrics); err != nil {
		return sig, fmt.Errorf("decode metrics for %s: %w", stableID, err)
	}
	if err := decodeJSONField(matches, &sig.WatchlistMatches); err != nil {
		return sig, fmt.Errorf("decode watchlist matches for %s: %w", stableID, err)
	}
	return sig, nil
}

func encodeJSONFields(sig *signal.Signal) (codes, metrics, matches string, err error) {
	enc := func(v any) (string, error) {
		if v == nil {
			return "", nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	if codes, err = enc(sig.IssueCodes); err != nil {
		return
	}
	if metrics, err = enc(sig.Metrics); err != nil {
		return
	}
	matches, err = enc(sig.WatchlistMatches)
	return
}

func decodeJSONField[T any](col sql.NullString, dst *T) error {
	if !col.Valid || col.String == "" || col.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
