package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"todo_service/internal/models"
)

// fakeTodoRepo is an in-memory repository.Todos with owner scoping.
type fakeTodoRepo struct {
	nextID  int64
	rows    map[int64]models.Todo
	updates int
	err     error
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{rows: map[int64]models.Todo{}}
}

func (f *fakeTodoRepo) Create(_ context.Context, t models.Todo) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	t.ID = f.nextID
	f.rows[t.ID] = t
	return t.ID, nil
}

func (f *fakeTodoRepo) ListByOwner(_ context.Context, ownerID int64) ([]models.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Todo
	for id := int64(1); id <= f.nextID; id++ {
		if t, ok := f.rows[id]; ok && t.CreatorID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTodoRepo) GetByID(_ context.Context, ownerID, id int64) (*models.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.rows[id]
	if !ok || t.CreatorID != ownerID {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTodoRepo) Update(_ context.Context, t models.Todo) (bool, error) {
	f.updates++
	cur, ok := f.rows[t.ID]
	if !ok || cur.CreatorID != t.CreatorID {
		return false, nil
	}
	f.rows[t.ID] = t
	return true, nil
}

func (f *fakeTodoRepo) Delete(_ context.Context, ownerID, id int64) (bool, error) {
	t, ok := f.rows[id]
	if !ok || t.CreatorID != ownerID {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

var (
	testNow      = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	testDeadline = time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
)

func newTestTodos() (*TodoService, *fakeTodoRepo) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	svc.now = fixedClock(testNow)
	return svc, repo
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestTodoService_CreateDefaults(t *testing.T) {
	svc, repo := newTestTodos()

	got, err := svc.Create(context.Background(), 1, NewTodo{Title: "  buy milk ", Deadline: testDeadline})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID != 1 || got.CreatorID != 1 {
		t.Fatalf("unexpected ids: %+v", got)
	}
	if got.Title != "buy milk" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.IsCompleted || got.CompletedAt != nil {
		t.Errorf("new todo must be incomplete: %+v", got)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, testNow)
	}
	if repo.rows[1].Title != "buy milk" {
		t.Errorf("stored row mismatch: %+v", repo.rows[1])
	}
}

func TestTodoService_CreateValidation(t *testing.T) {
	svc, repo := newTestTodos()

	cases := map[string]NewTodo{
		"blank title":      {Title: "   ", Deadline: testDeadline},
		"missing deadline": {Title: "x"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
	if len(repo.rows) != 0 {
		t.Fatalf("invalid input reached storage: %v", repo.rows)
	}
}

func TestTodoService_ListByOwnerNeverNil(t *testing.T) {
	svc, _ := newTestTodos()

	list, err := svc.ListByOwner(context.Background(), 99)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", list)
	}
}

func TestTodoService_OwnershipIsolation(t *testing.T) {
	svc, _ := newTestTodos()
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, NewTodo{Title: "a's", Deadline: testDeadline})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, 2, NewTodo{Title: "b's", Deadline: testDeadline}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(ctx, 2, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get as non-owner: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, 2, a.ID, TodoPatch{Title: strPtr("hijack")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update as non-owner: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, 2, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete as non-owner: expected ErrNotFound, got %v", err)
	}

	list, err := svc.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "a's" {
		t.Fatalf("owner 1 list = %+v", list)
	}
}

func TestTodoService_UpdatePartial(t *testing.T) {
	svc, repo := newTestTodos()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, NewTodo{Title: "draft", Deadline: testDeadline})
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Update(ctx, 1, created.ID, TodoPatch{Title: strPtr("final")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != "final" || !got.Deadline.Equal(testDeadline) || got.IsCompleted {
		t.Fatalf("only title should change: %+v", got)
	}

	newDeadline := testDeadline.Add(24 * time.Hour)
	got, err = svc.Update(ctx, 1, created.ID, TodoPatch{Deadline: &newDeadline})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "final" || !got.Deadline.Equal(newDeadline) {
		t.Fatalf("only deadline should change: %+v", got)
	}
	if !repo.rows[created.ID].Deadline.Equal(newDeadline) {
		t.Fatalf("deadline not persisted")
	}
}

func TestTodoService_CompletionTransitions(t *testing.T) {
	svc, _ := newTestTodos()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, NewTodo{Title: "t", Deadline: testDeadline})
	if err != nil {
		t.Fatal(err)
	}

	doneAt := testNow.Add(time.Hour)
	svc.now = fixedClock(doneAt)
	got, err := svc.Update(ctx, 1, created.ID, TodoPatch{IsCompleted: boolPtr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsCompleted || got.CompletedAt == nil || !got.CompletedAt.Equal(doneAt) {
		t.Fatalf("completing should stamp completedAt: %+v", got)
	}

	// repeating true keeps the original stamp
	svc.now = fixedClock(doneAt.Add(time.Hour))
	got, err = svc.Update(ctx, 1, created.ID, TodoPatch{IsCompleted: boolPtr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(doneAt) {
		t.Fatalf("completedAt changed on no-op: %+v", got.CompletedAt)
	}

	got, err = svc.Update(ctx, 1, created.ID, TodoPatch{IsCompleted: boolPtr(false)})
	if err != nil {
		t.Fatal(err)
	}
	if got.IsCompleted || got.CompletedAt != nil {
		t.Fatalf("reopening should clear completedAt: %+v", got)
	}
}

func TestTodoService_UpdateNoChangeSkipsWrite(t *testing.T) {
	svc, repo := newTestTodos()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, NewTodo{Title: "same", Deadline: testDeadline})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(ctx, 1, created.ID, TodoPatch{Title: strPtr("same")}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(ctx, 1, created.ID, TodoPatch{}); err != nil {
		t.Fatal(err)
	}
	if repo.updates != 0 {
		t.Fatalf("expected no writes, got %d", repo.updates)
	}
}

func TestTodoService_UpdateRejectsBlankTitle(t *testing.T) {
	svc, repo := newTestTodos()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, NewTodo{Title: "keep", Deadline: testDeadline})
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.Update(ctx, 1, created.ID, TodoPatch{Title: strPtr(" ")})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("expected title ValidationError, got %v", err)
	}
	if repo.rows[created.ID].Title != "keep" {
		t.Fatalf("title overwritten")
	}
}

func TestTodoService_DeleteThenGet(t *testing.T) {
	svc, _ := newTestTodos()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, NewTodo{Title: "gone", Deadline: testDeadline})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, 1, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, 1, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, 1, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestTodoService_RepoErrorPropagates(t *testing.T) {
	svc, repo := newTestTodos()
	repo.err = errors.New("db down")

	if _, err := svc.ListByOwner(context.Background(), 1); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 1, 1); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
