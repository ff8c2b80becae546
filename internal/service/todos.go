package service

import (
	"context"
	"strings"
	"time"

	"todo_service/internal/models"
	"todo_service/internal/repository"
)

// NewTodo is the input for creating a todo.
type NewTodo struct {
	Title    string
	Deadline time.Time
}

// TodoPatch carries a partial update. A nil field was omitted by the caller
// and is left untouched; a non-nil field is applied even if it holds a zero value.
type TodoPatch struct {
	Title       *string
	Deadline    *time.Time
	IsCompleted *bool
}

// TodoService is the owner-scoped store of to-do items.
type TodoService struct {
	repo repository.Todos
	now  func() time.Time
}

func NewTodoService(repo repository.Todos) *TodoService {
	return &TodoService{repo: repo, now: time.Now}
}

func (s *TodoService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid("title", "must not be empty")
	}
	return title, nil
}

// Create stores a new incomplete todo for ownerID.
func (s *TodoService) Create(ctx context.Context, ownerID int64, in NewTodo) (models.Todo, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return models.Todo{}, err
	}
	if in.Deadline.IsZero() {
		return models.Todo{}, invalid("deadline", "is required")
	}

	t := models.Todo{
		Title:       title,
		Deadline:    in.Deadline.UTC(),
		CreatedAt:   s.timestamp(),
		IsCompleted: false,
		CreatorID:   ownerID,
	}
	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return models.Todo{}, err
	}
	t.ID = id
	return t, nil
}

// ListByOwner returns all of ownerID's todos.
func (s *TodoService) ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	return todos, nil
}

// Get returns the todo only if ownerID owns it.
func (s *TodoService) Get(ctx context.Context, ownerID, id int64) (models.Todo, error) {
	t, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return models.Todo{}, err
	}
	if t == nil {
		return models.Todo{}, ErrNotFound
	}
	return *t, nil
}

// Update applies patch to ownerID's todo.
func (s *TodoService) Update(ctx context.Context, ownerID, id int64, patch TodoPatch) (models.Todo, error) {
	if patch.Title != nil {
		title, err := validateTitle(*patch.Title)
		if err != nil {
			return models.Todo{}, err
		}
		patch.Title = &title
	}

	t, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return models.Todo{}, err
	}
	if !applyPatch(&t, patch, s.timestamp()) {
		return t, nil
	}

	ok, err := s.repo.Update(ctx, t)
	if err != nil {
		return models.Todo{}, err
	}
	if !ok {
		// deleted between read and write
		return models.Todo{}, ErrNotFound
	}
	return t, nil
}

// applyPatch mutates t and reports whether anything changed.
// completedAt follows isCompleted transitions only.
func applyPatch(t *models.Todo, p TodoPatch, now time.Time) bool {
	changed := false
	if p.Title != nil && *p.Title != t.Title {
		t.Title = *p.Title
		changed = true
	}
	if p.Deadline != nil && !p.Deadline.Equal(t.Deadline) {
		t.Deadline = p.Deadline.UTC()
		changed = true
	}
	if p.IsCompleted != nil && *p.IsCompleted != t.IsCompleted {
		t.IsCompleted = *p.IsCompleted
		if t.IsCompleted {
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
		changed = true
	}
	return changed
}

// Delete removes ownerID's todo permanently.
func (s *TodoService) Delete(ctx context.Context, ownerID, id int64) error {
	ok, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
