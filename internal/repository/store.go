// Package repository provides storage for to-do lists and import history.
package repository

import (
	"context"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Todo operations
	CreateTodo(ctx context.Context, todo *domain.Todo) error
	GetTodo(ctx context.Context, todoID string) (*domain.Todo, error)
	ListTodos(ctx context.Context, eventID string) ([]domain.Todo, error)
	UpdateTodo(ctx context.Context, todo *domain.Todo) error
	DeleteTodo(ctx context.Context, todoID string) (bool, error)

	// Import operations
	RecordImport(ctx context.Context, imp *domain.Import) error
	ListImports(ctx context.Context, limit int) ([]domain.Import, error)

	Close() error
}
