package domain

import "time"

// DefaultTodoText is the placeholder text of a new to-do item.
const DefaultTodoText = "event-todo-text"

// Todo is one item of an event's to-do list.
type Todo struct {
	TodoID    string    `json:"todo_id"`
	EventID   string    `json:"event_id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Import records one dataset import.
type Import struct {
	ImportID      string    `json:"import_id"`
	Source        string    `json:"source"`
	RowCount      int       `json:"row_count"`
	RecordCount   int       `json:"record_count"`
	ExcludedCount int       `json:"excluded_count"`
	SkippedCount  int       `json:"skipped_count"`
	CreatedAt     time.Time `json:"created_at"`
}
