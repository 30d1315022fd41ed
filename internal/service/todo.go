package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// ListTodos lists the to-do items of an event.
func (s *Service) ListTodos(ctx context.Context, eventID string) ([]domain.Todo, error) {
	todos, err := s.store.ListTodos(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// CreateTodo adds a to-do item to an event of the current dataset.
// Empty text gets the default placeholder.
func (s *Service) CreateTodo(ctx context.Context, eventID, text string, done bool) (*domain.Todo, error) {
	if _, err := s.Record(ctx, eventID); err != nil {
		return nil, err
	}
	if text == "" {
		text = domain.DefaultTodoText
	}
	now := s.now()
	todo := &domain.Todo{
		TodoID:    uuid.New().String(),
		EventID:   eventID,
		Text:      text,
		Done:      done,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateTodo(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// UpdateTodo changes the text and/or done flag of a to-do item.
func (s *Service) UpdateTodo(ctx context.Context, todoID string, text *string, done *bool) (*domain.Todo, error) {
	todo, err := s.getTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if text != nil {
		todo.Text = *text
	}
	if done != nil {
		todo.Done = *done
	}
	return s.saveTodo(ctx, todo)
}

// ToggleTodo flips the done flag of a to-do item.
func (s *Service) ToggleTodo(ctx context.Context, todoID string) (*domain.Todo, error) {
	todo, err := s.getTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	todo.Done = !todo.Done
	return s.saveTodo(ctx, todo)
}

// DeleteTodo removes a to-do item.
func (s *Service) DeleteTodo(ctx context.Context, todoID string) error {
	ok, err := s.store.DeleteTodo(ctx, todoID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if !ok {
		return fmt.Errorf("todo %q: %w", todoID, domain.ErrNotFound)
	}
	return nil
}

func (s *Service) getTodo(ctx context.Context, todoID string) (*domain.Todo, error) {
	todo, err := s.store.GetTodo(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	if todo == nil {
		return nil, fmt.Errorf("todo %q: %w", todoID, domain.ErrNotFound)
	}
	return todo, nil
}

func (s *Service) saveTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	todo.UpdatedAt = s.now()
	if err := s.store.UpdateTodo(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return todo, nil
}
