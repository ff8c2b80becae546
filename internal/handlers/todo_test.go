package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"todo_service/internal/models"
	"todo_service/internal/service"
)

func newTodoRouter(todos *mockTodos) http.Handler {
	guard := &mockGuard{user: models.User{ID: 3, Email: "owner@x.com"}}
	return newTestRouter(&service.Service{Guard: guard, Todos: todos})
}

func TestCreateTodo(t *testing.T) {
	deadline := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	todos := &mockTodos{createResp: models.Todo{ID: 1, Title: "buy milk", Deadline: deadline, CreatorID: 3}}
	r := newTodoRouter(todos)

	w := doRequest(r, http.MethodPost, "/create", `{"title":"buy milk","deadline":"2025-01-01"}`, authHeader("tok"))
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if todos.lastOwnerID != 3 || todos.lastNew.Title != "buy milk" || !todos.lastNew.Deadline.Equal(deadline) {
		t.Fatalf("unexpected create call: owner=%d in=%+v", todos.lastOwnerID, todos.lastNew)
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["isCompleted"] != false || m["completedAt"] != nil {
		t.Fatalf("unexpected body: %v", m)
	}
}

func TestCreateTodo_DeadlineFormats(t *testing.T) {
	want := map[string]time.Time{
		"2025-01-01":                time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		"2025-01-01 15:04:05":       time.Date(2025, 1, 1, 15, 4, 5, 0, time.UTC),
		"2025-01-01T17:04:05+02:00": time.Date(2025, 1, 1, 15, 4, 5, 0, time.UTC),
	}
	for in, exp := range want {
		todos := &mockTodos{}
		r := newTodoRouter(todos)
		w := doRequest(r, http.MethodPost, "/create", `{"title":"t","deadline":"`+in+`"}`, authHeader("tok"))
		if w.Code != http.StatusCreated {
			t.Fatalf("%s: status=%d body=%s", in, w.Code, w.Body.String())
		}
		if !todos.lastNew.Deadline.Equal(exp) {
			t.Fatalf("%s: deadline=%v want %v", in, todos.lastNew.Deadline, exp)
		}
	}
}

func TestCreateTodo_BadRequests(t *testing.T) {
	bodies := map[string]string{
		"missing title":    `{"deadline":"2025-01-01"}`,
		"missing deadline": `{"title":"x"}`,
		"bad deadline":     `{"title":"x","deadline":"tomorrow"}`,
		"not json":         `{`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			todos := &mockTodos{}
			w := doRequest(newTodoRouter(todos), http.MethodPost, "/create", body, authHeader("tok"))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if todos.calls != 0 {
				t.Fatalf("service reached with invalid body")
			}
		})
	}

	todos := &mockTodos{createErr: &service.ValidationError{Field: "title", Reason: "must not be empty"}}
	w := doRequest(newTodoRouter(todos), http.MethodPost, "/create", `{"title":" ","deadline":"2025-01-01"}`, authHeader("tok"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("service validation: status=%d", w.Code)
	}
}

func TestListTodos(t *testing.T) {
	todos := &mockTodos{listResp: []models.Todo{}}
	w := doRequest(newTodoRouter(todos), http.MethodGet, "/getAll", "", authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", w.Body.String())
	}

	todos = &mockTodos{listResp: []models.Todo{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}}
	w = doRequest(newTodoRouter(todos), http.MethodGet, "/getAll", "", authHeader("tok"))
	var list []models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 || list[1].Title != "b" {
		t.Fatalf("unexpected list: %+v", list)
	}

	todos = &mockTodos{listErr: errors.New("db gone")}
	w = doRequest(newTodoRouter(todos), http.MethodGet, "/getAll", "", authHeader("tok"))
	if w.Code != http.StatusInternalServerError || strings.Contains(w.Body.String(), "db gone") {
		t.Fatalf("expected opaque 500, got %d %s", w.Code, w.Body.String())
	}
}

func TestGetTodo(t *testing.T) {
	todos := &mockTodos{getResp: models.Todo{ID: 9, Title: "x", CreatorID: 3}}
	w := doRequest(newTodoRouter(todos), http.MethodGet, "/getAll/9", "", authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if todos.lastOwnerID != 3 || todos.lastID != 9 {
		t.Fatalf("unexpected get call: owner=%d id=%d", todos.lastOwnerID, todos.lastID)
	}

	todos = &mockTodos{getErr: service.ErrNotFound}
	w = doRequest(newTodoRouter(todos), http.MethodGet, "/getAll/9", "", authHeader("tok"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTodoRoutes_InvalidID(t *testing.T) {
	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/getAll/abc", ""},
		{http.MethodGet, "/getAll/0", ""},
		{http.MethodDelete, "/delete/-1", ""},
		{http.MethodPut, "/update/1.5", `{"title":"x"}`},
	} {
		todos := &mockTodos{}
		w := doRequest(newTodoRouter(todos), tc.method, tc.path, tc.body, authHeader("tok"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: status=%d", tc.method, tc.path, w.Code)
		}
		if todos.calls != 0 {
			t.Fatalf("%s %s: service reached", tc.method, tc.path)
		}
	}
}

func TestUpdateTodo_PartialPayload(t *testing.T) {
	todos := &mockTodos{updateResp: models.Todo{ID: 5, IsCompleted: true}}
	w := doRequest(newTodoRouter(todos), http.MethodPut, "/update/5", `{"isCompleted":true}`, authHeader("tok"))
	if w.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	p := todos.lastPatch
	if p.IsCompleted == nil || !*p.IsCompleted || p.Title != nil || p.Deadline != nil {
		t.Fatalf("unexpected patch: %+v", p)
	}

	w = doRequest(newTodoRouter(todos), http.MethodPut, "/update/5",
		`{"title":"new","deadline":"2025-02-03","isCompleted":false}`, authHeader("tok"))
	if w.Code != http.StatusAccepted {
		t.Fatalf("status=%d", w.Code)
	}
	p = todos.lastPatch
	if p.Title == nil || *p.Title != "new" || p.IsCompleted == nil || *p.IsCompleted {
		t.Fatalf("unexpected patch: %+v", p)
	}
	if p.Deadline == nil || !p.Deadline.Equal(time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected deadline: %v", p.Deadline)
	}
}

func TestUpdateTodo_Errors(t *testing.T) {
	todos := &mockTodos{updateErr: service.ErrNotFound}
	w := doRequest(newTodoRouter(todos), http.MethodPut, "/update/5", `{"title":"x"}`, authHeader("tok"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	todos = &mockTodos{}
	w = doRequest(newTodoRouter(todos), http.MethodPut, "/update/5", `{"deadline":"soon"}`, authHeader("tok"))
	if w.Code != http.StatusBadRequest || todos.calls != 0 {
		t.Fatalf("expected 400 without service call, got %d (calls=%d)", w.Code, todos.calls)
	}

	w = doRequest(newTodoRouter(todos), http.MethodPut, "/update/5", `{"isCompleted":"yes"}`, authHeader("tok"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong type, got %d", w.Code)
	}
}

func TestDeleteTodo(t *testing.T) {
	todos := &mockTodos{}
	w := doRequest(newTodoRouter(todos), http.MethodDelete, "/delete/4", "", authHeader("tok"))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %s", w.Body.String())
	}
	if todos.lastOwnerID != 3 || todos.lastID != 4 {
		t.Fatalf("unexpected delete call: owner=%d id=%d", todos.lastOwnerID, todos.lastID)
	}

	todos = &mockTodos{deleteErr: service.ErrNotFound}
	w = doRequest(newTodoRouter(todos), http.MethodDelete, "/delete/4", "", authHeader("tok"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
