package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

var (
	ErrClassNotFound  = errors.New("class type not found")
	ErrDuplicateClass = errors.New("class type already exists")
	ErrInvalidClass   = errors.New("class type needs a name and a description")
)

type Database struct {
	db *sql.DB
}

// ClassType is a stored yoga class template. Optional columns are nil when unset.
type ClassType struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	TypicalDuration *int      `json:"typical_duration,omitempty"`
	EnergyLevel     *string   `json:"energy_level,omitempty"`
	MusicStyleNotes *string   `json:"music_style_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ExportRecord struct {
	ID                 string    `json:"id"`
	PlaylistName       string    `json:"playlist_name"`
	ExternalPlaylistID string    `json:"external_playlist_id"`
	ExternalURL        string    `json:"external_url"`
	TrackCount         int       `json:"track_count"`
	CreatedAt          time.Time `json:"created_at"`
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

var seedClassTypes = []ClassType{
	{
		Name:            "Traditional Hatha",
		Description:     "Classic yoga with poses held for several breaths, focusing on alignment and breathing",
		TypicalDuration: intPtr(60),
		EnergyLevel:     strPtr("low"),
		MusicStyleNotes: strPtr("Soft instrumental, nature sounds, or traditional yoga music"),
	},
	{
		Name:            "Vinyasa Flow",
		Description:     "Dynamic flow linking breath with movement",
		TypicalDuration: intPtr(75),
		EnergyLevel:     strPtr("medium"),
		MusicStyleNotes: strPtr("Steady 90-120 BPM grooves that build through the standing sequence"),
	},
	{
		Name:            "Yoga Sculpt",
		Description:     "Fitness-integrated yoga with strength training elements using weights",
		TypicalDuration: intPtr(60),
		EnergyLevel:     strPtr("high"),
		MusicStyleNotes: strPtr("Upbeat hip-hop and pop for strength intervals"),
	},
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Database, error) {
	if dbPath == "" {
		dbPath = "./data/yogabeats.db"
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := d.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed class types: %w", err)
	}

	log.Infof("Database initialized at %s", dbPath)
	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS class_types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE COLLATE NOCASE,
			description TEXT NOT NULL,
			typical_duration INTEGER,
			energy_level TEXT,
			music_style_notes TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS playlist_exports (
			id TEXT PRIMARY KEY,
			playlist_name TEXT NOT NULL,
			external_playlist_id TEXT NOT NULL,
			external_url TEXT NOT NULL DEFAULT '',
			track_count INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_playlist_exports_created_at ON playlist_exports(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

func (d *Database) seed() error {
	for _, class := range seedClassTypes {
		_, err := d.db.Exec(
			`INSERT OR IGNORE INTO class_types (name, description, typical_duration, energy_level, music_style_notes, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			class.Name, class.Description, nullInt(class.TypicalDuration), nullString(class.EnergyLevel),
			nullString(class.MusicStyleNotes), now(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateClassType stores a new class type. Names are unique ignoring case.
func (d *Database) CreateClassType(class ClassType) (*ClassType, error) {
	class.Name = strings.TrimSpace(class.Name)
	class.Description = strings.TrimSpace(class.Description)
	if class.Name == "" || class.Description == "" {
		return nil, ErrInvalidClass
	}

	if _, err := d.GetClassType(class.Name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateClass, class.Name)
	} else if !errors.Is(err, ErrClassNotFound) {
		return nil, err
	}

	created := now()
	res, err := d.db.Exec(
		`INSERT INTO class_types (name, description, typical_duration, energy_level, music_style_notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		class.Name, class.Description, nullInt(class.TypicalDuration), nullString(class.EnergyLevel),
		nullString(class.MusicStyleNotes), created,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create class type: %w", err)
	}

	class.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read class type id: %w", err)
	}
	class.CreatedAt = parseTime(created)
	return &class, nil
}

// ListClassTypes returns every class type ordered by name.
func (d *Database) ListClassTypes() ([]ClassType, error) {
	return d.queryClassTypes(`SELECT id, name, description, typical_duration, energy_level, music_style_notes, created_at
		FROM class_types ORDER BY name COLLATE NOCASE`)
}

// SearchClassTypes matches query against names and descriptions, case-insensitively.
func (d *Database) SearchClassTypes(query string) ([]ClassType, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return d.ListClassTypes()
	}

	pattern := "%" + escapeLike(query) + "%"
	return d.queryClassTypes(`SELECT id, name, description, typical_duration, energy_level, music_style_notes, created_at
		FROM class_types
		WHERE name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'
		ORDER BY name COLLATE NOCASE`, pattern, pattern)
}

// GetClassType looks a class type up by name, ignoring case.
func (d *Database) GetClassType(name string) (*ClassType, error) {
	rows, err := d.queryClassTypes(`SELECT id, name, description, typical_duration, energy_level, music_style_notes, created_at
		FROM class_types WHERE name = ? COLLATE NOCASE`, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrClassNotFound
	}
	return &rows[0], nil
}

func (d *Database) queryClassTypes(query string, args ...any) ([]ClassType, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query class types: %w", err)
	}
	defer rows.Close()

	records := []ClassType{}
	for rows.Next() {
		var (
			r         ClassType
			duration  sql.NullInt64
			energy    sql.NullString
			notes     sql.NullString
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &duration, &energy, &notes, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan class type row: %w", err)
		}
		if duration.Valid {
			r.TypicalDuration = intPtr(int(duration.Int64))
		}
		if energy.Valid {
			r.EnergyLevel = strPtr(energy.String)
		}
		if notes.Valid {
			r.MusicStyleNotes = strPtr(notes.String)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// RecordExport logs a completed playlist export and returns the stored record.
func (d *Database) RecordExport(playlistName, externalPlaylistID, externalURL string, trackCount int) (*ExportRecord, error) {
	created := now()
	record := ExportRecord{
		ID:                 uuid.NewString(),
		PlaylistName:       playlistName,
		ExternalPlaylistID: externalPlaylistID,
		ExternalURL:        externalURL,
		TrackCount:         trackCount,
		CreatedAt:          parseTime(created),
	}

	_, err := d.db.Exec(
		`INSERT INTO playlist_exports (id, playlist_name, external_playlist_id, external_url, track_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.PlaylistName, record.ExternalPlaylistID, record.ExternalURL, record.TrackCount, created,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record export: %w", err)
	}
	return &record, nil
}

// ListExports returns the most recent exports, newest first.
func (d *Database) ListExports(limit int) ([]ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.Query(
		`SELECT id, playlist_name, external_playlist_id, external_url, track_count, created_at
		 FROM playlist_exports
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer rows.Close()

	records := []ExportRecord{}
	for rows.Next() {
		var r ExportRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.PlaylistName, &r.ExternalPlaylistID, &r.ExternalURL, &r.TrackCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func now() string {
	return time.Now().UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		log.Warnf("failed to parse timestamp '%s': %v", value, err)
		return time.Time{}
	}
	return t
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func escapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}
