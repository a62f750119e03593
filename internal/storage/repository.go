// Package storage implements the persistence capabilities on an embedded
// SQLite database. One SQLiteRepository owns one connection; the schema
// is migrated to the latest version before the constructor returns, so
// every operation can assume it is ready.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alekseinovikov/tui-money/internal/core"
	"github.com/alekseinovikov/tui-money/internal/passhash"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ core.Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens (creating if absent) the database file at
// dbPath and runs all pending migrations. A migration failure is fatal:
// no repository is returned.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w: %w", core.ErrStorage, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w: %w", core.ErrStorage, err)
	}
	// Single exclusive connection; the repository is driven synchronously
	// from one control flow.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w: %w", core.ErrStorage, err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := runMigrations(db, migrations); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Add inserts the entry and returns it with the storage-assigned id.
// The caller has already validated the entry; there is no partial insert.
func (r *SQLiteRepository) Add(ctx context.Context, entry core.NewEntry) (core.Entry, error) {
	var note sql.NullString
	if entry.Note != "" {
		note = sql.NullString{String: entry.Note, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO entries (kind, amount_cents, category, note, occurred_on)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`,
		kindToString(entry.Kind),
		moneyToCents(entry.Amount),
		entry.Category.String(),
		note,
		dateToString(entry.OccurredOn),
	).Scan(&id)
	if err != nil {
		return core.Entry{}, fmt.Errorf("insert entry: %w: %w", core.ErrStorage, err)
	}

	slog.InfoContext(ctx, "entry saved",
		"id", id,
		"kind", string(entry.Kind),
		"amount_cents", entry.Amount.Cents,
		"category", entry.Category.String(),
		"occurred_on", dateToString(entry.OccurredOn))

	return core.Entry{
		ID:         core.EntryID(id),
		Kind:       entry.Kind,
		Amount:     entry.Amount,
		Category:   entry.Category,
		Note:       entry.Note,
		OccurredOn: entry.OccurredOn,
	}, nil
}

// List returns the complete matching set, newest first. Absent filter
// fields impose no predicate; present ones are AND-conjoined.
func (r *SQLiteRepository) List(ctx context.Context, filter core.EntryFilter) ([]core.Entry, error) {
	var conditions []string
	var args []any

	if !filter.From.IsEmpty() {
		conditions = append(conditions, "occurred_on >= ?")
		args = append(args, dateToString(filter.From))
	}
	if !filter.To.IsEmpty() {
		conditions = append(conditions, "occurred_on <= ?")
		args = append(args, dateToString(filter.To))
	}
	if !filter.Category.IsZero() {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category.String())
	}

	query := `SELECT id, kind, amount_cents, category, note, occurred_on FROM entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY occurred_on DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w: %w", core.ErrStorage, err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w: %w", core.ErrStorage, err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (core.Entry, error) {
	var (
		id         int64
		kindText   string
		cents      int64
		category   string
		note       sql.NullString
		occurredOn string
	)
	if err := rows.Scan(&id, &kindText, &cents, &category, &note, &occurredOn); err != nil {
		return core.Entry{}, fmt.Errorf("scan entry: %w: %w", core.ErrStorage, err)
	}

	kind, err := kindFromString(kindText)
	if err != nil {
		return core.Entry{}, err
	}
	date, err := dateFromString(occurredOn)
	if err != nil {
		return core.Entry{}, err
	}
	cat, err := core.NewCategory(category)
	if err != nil {
		return core.Entry{}, err
	}

	return core.Entry{
		ID:         core.EntryID(id),
		Kind:       kind,
		Amount:     centsToMoney(cents),
		Category:   cat,
		Note:       note.String,
		OccurredOn: date,
	}, nil
}

// CreateUser stores the username with an Argon2id hash of the password.
// Uniqueness is left to the UNIQUE constraint; there is no pre-check, so
// there is no check-then-act race to worry about.
func (r *SQLiteRepository) CreateUser(ctx context.Context, username, password string) (core.User, error) {
	hash, err := passhash.Hash(password)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w: %w", core.ErrStorage, err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?) RETURNING id`,
		username, hash,
	).Scan(&id)
	if err != nil {
		return core.User{}, fmt.Errorf("insert user: %w: %w", core.ErrStorage, err)
	}

	slog.InfoContext(ctx, "user created", "id", id, "username", username)

	return core.User{ID: id, Username: username}, nil
}

// VerifyUser reports a match only when the username exists and the
// password verifies against its stored hash. Both failure cases look
// identical to the caller.
func (r *SQLiteRepository) VerifyUser(ctx context.Context, username, password string) (*core.User, error) {
	var (
		id   int64
		name string
		hash string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = ?`,
		username,
	).Scan(&id, &name, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w: %w", core.ErrStorage, err)
	}

	ok, err := passhash.Check(password, hash)
	if err != nil {
		return nil, fmt.Errorf("verify password for %q: %w: %w", username, core.ErrStorage, err)
	}
	if !ok {
		return nil, nil
	}
	return &core.User{ID: id, Username: name}, nil
}

// ListUsers returns all usernames in lexicographic order.
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w: %w", core.ErrStorage, err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("scan username: %w: %w", core.ErrStorage, err)
		}
		usernames = append(usernames, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w: %w", core.ErrStorage, err)
	}
	return usernames, nil
}
