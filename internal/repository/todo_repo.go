package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo_service/internal/models"

	"github.com/jmoiron/sqlx"
)

type TodoRepository struct {
	db *sqlx.DB
}

func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

var _ Todos = (*TodoRepository)(nil)

const todoColumns = `id, title, deadline, created_at, is_completed, completed_at, creator_id`

const (
	insertTodoSQL = `INSERT INTO todos (title, deadline, created_at, is_completed, completed_at, creator_id) ` +
		`VALUES (?, ?, ?, ?, ?, ?) RETURNING id`
	selectTodosByOwnerSQL = `SELECT ` + todoColumns + ` FROM todos WHERE creator_id = ? ORDER BY id ASC`
	selectTodoSQL         = `SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND creator_id = ?`
	updateTodoSQL         = `UPDATE todos SET title = ?, deadline = ?, is_completed = ?, completed_at = ? ` +
		`WHERE id = ? AND creator_id = ?`
	deleteTodoSQL = `DELETE FROM todos WHERE id = ? AND creator_id = ?`
)

// Create inserts a todo and returns its ID.
func (r *TodoRepository) Create(ctx context.Context, t models.Todo) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(insertTodoSQL),
		t.Title,
		t.Deadline.UTC(),
		t.CreatedAt.UTC(),
		t.IsCompleted,
		utcPtr(t.CompletedAt),
		t.CreatorID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert todo for user %d: %w", t.CreatorID, err)
	}
	return id, nil
}

// ListByOwner returns every todo of ownerID in insertion order. Never returns a nil slice.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	out := make([]models.Todo, 0)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(selectTodosByOwnerSQL), ownerID); err != nil {
		return nil, fmt.Errorf("select todos for user %d: %w", ownerID, err)
	}
	for i := range out {
		normalizeTimes(&out[i])
	}
	return out, nil
}

// GetByID fetches one todo owned by ownerID. Returns (nil, nil) if absent or owned by someone else.
func (r *TodoRepository) GetByID(ctx context.Context, ownerID, id int64) (*models.Todo, error) {
	var t models.Todo
	err := r.db.GetContext(ctx, &t, r.db.Rebind(selectTodoSQL), id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select todo %d: %w", id, err)
	}
	normalizeTimes(&t)
	return &t, nil
}

// Update overwrites the mutable fields of t. It reports false when no row
// matched both t.ID and t.CreatorID.
func (r *TodoRepository) Update(ctx context.Context, t models.Todo) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(updateTodoSQL),
		t.Title,
		t.Deadline.UTC(),
		t.IsCompleted,
		utcPtr(t.CompletedAt),
		t.ID,
		t.CreatorID,
	)
	if err != nil {
		return false, fmt.Errorf("update todo %d: %w", t.ID, err)
	}
	return affectedOne(res, "update todo", t.ID)
}

// Delete removes the todo permanently. It reports false when nothing matched.
func (r *TodoRepository) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteTodoSQL), id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete todo %d: %w", id, err)
	}
	return affectedOne(res, "delete todo", id)
}

func affectedOne(res sql.Result, op string, id int64) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s %d: rows affected: %w", op, id, err)
	}
	return n > 0, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func normalizeTimes(t *models.Todo) {
	t.Deadline = t.Deadline.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	t.CompletedAt = utcPtr(t.CompletedAt)
}
