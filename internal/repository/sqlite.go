package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS todos (
			todo_id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL,
			text TEXT NOT NULL,
			done INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_todos_event ON todos(event_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS imports (
			import_id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			record_count INTEGER NOT NULL,
			excluded_count INTEGER NOT NULL DEFAULT 0,
			skipped_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_imports_created ON imports(created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTodo creates a new to-do item.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo *domain.Todo) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (todo_id, event_id, text, done, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		todo.TodoID, todo.EventID, todo.Text, todo.Done, todo.CreatedAt, todo.UpdatedAt)
	return err
}

// GetTodo retrieves a to-do item by ID. It returns nil when none exists.
func (s *SQLiteStore) GetTodo(ctx context.Context, todoID string) (*domain.Todo, error) {
	var todo domain.Todo
	err := s.db.QueryRowContext(ctx,
		`SELECT todo_id, event_id, text, done, created_at, updated_at FROM todos WHERE todo_id = ?`,
		todoID).Scan(&todo.TodoID, &todo.EventID, &todo.Text, &todo.Done, &todo.CreatedAt, &todo.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// ListTodos lists the to-do items of an event in creation order.
func (s *SQLiteStore) ListTodos(ctx context.Context, eventID string) ([]domain.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT todo_id, event_id, text, done, created_at, updated_at FROM todos WHERE event_id = ? ORDER BY created_at ASC, rowid ASC`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		var todo domain.Todo
		if err := rows.Scan(&todo.TodoID, &todo.EventID, &todo.Text, &todo.Done, &todo.CreatedAt, &todo.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// UpdateTodo updates the text and done flag of a to-do item.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo *domain.Todo) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET text = ?, done = ?, updated_at = ? WHERE todo_id = ?`,
		todo.Text, todo.Done, todo.UpdatedAt, todo.TodoID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteTodo deletes a to-do item and reports whether it existed.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, todoID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE todo_id = ?`, todoID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RecordImport stores an import summary.
func (s *SQLiteStore) RecordImport(ctx context.Context, imp *domain.Import) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO imports (import_id, source, row_count, record_count, excluded_count, skipped_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		imp.ImportID, imp.Source, imp.RowCount, imp.RecordCount, imp.ExcludedCount, imp.SkippedCount, imp.CreatedAt)
	return err
}

// ListImports returns the most recent imports first.
func (s *SQLiteStore) ListImports(ctx context.Context, limit int) ([]domain.Import, error) {
	query := `SELECT import_id, source, row_count, record_count, excluded_count, skipped_count, created_at FROM imports ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	imports := []domain.Import{}
	for rows.Next() {
		var imp domain.Import
		if err := rows.Scan(&imp.ImportID, &imp.Source, &imp.RowCount, &imp.RecordCount, &imp.ExcludedCount, &imp.SkippedCount, &imp.CreatedAt); err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}
