package notebook

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/k-otsuka/lexinote/internal/dictionary"
)

// SQLiteStore implements Store on a local SQLite database. It offers the
// same contract as SnapshotStore for notebooks that outgrow a single
// rewritten JSON file.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ Store = (*SQLiteStore)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	term TEXT NOT NULL,
	translated_term TEXT NOT NULL,
	definition_target TEXT NOT NULL,
	definition_native TEXT NOT NULL,
	examples TEXT NOT NULL,
	scenario TEXT NOT NULL,
	usage_note TEXT NOT NULL,
	image_url TEXT NOT NULL DEFAULT '',
	source_lang TEXT NOT NULL,
	target_lang TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	saved_at TIMESTAMP NOT NULL,
	easiness_factor REAL NOT NULL,
	interval_days INTEGER NOT NULL DEFAULT 0,
	correct_streak INTEGER NOT NULL DEFAULT 0,
	due_at TIMESTAMP,
	reviewed_at TIMESTAMP
);
`

type entryRow struct {
	ID               string       `db:"id"`
	Term             string       `db:"term"`
	TranslatedTerm   string       `db:"translated_term"`
	DefinitionTarget string       `db:"definition_target"`
	DefinitionNative string       `db:"definition_native"`
	Examples         string       `db:"examples"`
	Scenario         string       `db:"scenario"`
	UsageNote        string       `db:"usage_note"`
	ImageURL         string       `db:"image_url"`
	SourceLang       string       `db:"source_lang"`
	TargetLang       string       `db:"target_lang"`
	CreatedAt        time.Time    `db:"created_at"`
	SavedAt          time.Time    `db:"saved_at"`
	EasinessFactor   float64      `db:"easiness_factor"`
	IntervalDays     int          `db:"interval_days"`
	CorrectStreak    int          `db:"correct_streak"`
	DueAt            sql.NullTime `db:"due_at"`
	ReviewedAt       sql.NullTime `db:"reviewed_at"`
}

// NewSQLiteStore opens (and if necessary initializes) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Connect(%s) > %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Exec(schema) > %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Add implements Store. INSERT OR IGNORE makes duplicate IDs a no-op.
func (s *SQLiteStore) Add(entry dictionary.Entry) error {
	examples, err := json.Marshal(entry.Examples)
	if err != nil {
		return fmt.Errorf("json.Marshal(examples) > %w", err)
	}
	scenario, err := json.Marshal(entry.Scenario)
	if err != nil {
		return fmt.Errorf("json.Marshal(scenario) > %w", err)
	}

	_, err = s.db.Exec(`INSERT OR IGNORE INTO entries
		(id, term, translated_term, definition_target, definition_native,
		 examples, scenario, usage_note, image_url, source_lang, target_lang,
		 created_at, saved_at, easiness_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Term, entry.TranslatedTerm, entry.DefinitionTarget, entry.DefinitionNative,
		string(examples), string(scenario), entry.UsageNote, entry.ImageURL, entry.SourceLang, entry.TargetLang,
		entry.CreatedAt, time.Now(), DefaultEasinessFactor)
	if err != nil {
		return fmt.Errorf("db.Exec(insert entry) > %w", err)
	}
	return nil
}

// Remove implements Store.
func (s *SQLiteStore) Remove(id string) error {
	result, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.Exec(delete entry) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(id string) (SavedEntry, error) {
	var row entryRow
	err := s.db.Get(&row, "SELECT * FROM entries WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if err != nil {
		return SavedEntry{}, fmt.Errorf("db.Get(entry) > %w", err)
	}
	return row.toSavedEntry()
}

// List implements Store: most recently added first.
func (s *SQLiteStore) List() ([]SavedEntry, error) {
	var rows []entryRow
	if err := s.db.Select(&rows, "SELECT * FROM entries ORDER BY saved_at DESC, rowid DESC"); err != nil {
		return nil, fmt.Errorf("db.Select(entries) > %w", err)
	}
	result := make([]SavedEntry, 0, len(rows))
	for _, row := range rows {
		saved, err := row.toSavedEntry()
		if err != nil {
			return nil, err
		}
		result = append(result, saved)
	}
	return result, nil
}

// Len implements Store.
func (s *SQLiteStore) Len() (int, error) {
	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM entries"); err != nil {
		return 0, fmt.Errorf("db.Get(count) > %w", err)
	}
	return count, nil
}

// UpdateReview implements Store.
func (s *SQLiteStore) UpdateReview(id string, review ReviewState) error {
	result, err := s.db.Exec(`UPDATE entries SET
		easiness_factor = ?, interval_days = ?, correct_streak = ?, due_at = ?, reviewed_at = ?
		WHERE id = ?`,
		review.EasinessFactor, review.IntervalDays, review.CorrectStreak,
		nullableTime(review.DueAt), nullableTime(review.ReviewedAt), id)
	if err != nil {
		return fmt.Errorf("db.Exec(update review) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return nil
}

func (row entryRow) toSavedEntry() (SavedEntry, error) {
	var examples []dictionary.Example
	if err := json.Unmarshal([]byte(row.Examples), &examples); err != nil {
		return SavedEntry{}, fmt.Errorf("json.Unmarshal(examples) > %w", err)
	}
	var scenario []dictionary.ScenarioLine
	if err := json.Unmarshal([]byte(row.Scenario), &scenario); err != nil {
		return SavedEntry{}, fmt.Errorf("json.Unmarshal(scenario) > %w", err)
	}

	saved := SavedEntry{
		Entry: dictionary.Entry{
			ID:               row.ID,
			Term:             row.Term,
			TranslatedTerm:   row.TranslatedTerm,
			DefinitionTarget: row.DefinitionTarget,
			DefinitionNative: row.DefinitionNative,
			Examples:         examples,
			Scenario:         scenario,
			UsageNote:        row.UsageNote,
			ImageURL:         row.ImageURL,
			SourceLang:       row.SourceLang,
			TargetLang:       row.TargetLang,
			CreatedAt:        row.CreatedAt,
		},
		SavedAt: row.SavedAt,
		Review: ReviewState{
			EasinessFactor: row.EasinessFactor,
			IntervalDays:   row.IntervalDays,
			CorrectStreak:  row.CorrectStreak,
		},
	}
	if row.DueAt.Valid {
		saved.Review.DueAt = row.DueAt.Time
	}
	if row.ReviewedAt.Valid {
		saved.Review.ReviewedAt = row.ReviewedAt.Time
	}
	return saved, nil
}

func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
