package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	"todo_service/internal/models"
	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser models.User
	signUpErr  error
	loginToken service.AccessToken
	loginErr   error

	lastSignUpName     string
	lastSignUpEmail    string
	lastSignUpPassword string
	lastLoginEmail     string
	lastLoginPassword  string
}

func (m *mockAuth) SignUp(_ context.Context, name, email, password string) (models.User, error) {
	m.lastSignUpName = name
	m.lastSignUpEmail = email
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (service.AccessToken, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

type mockGuard struct {
	user      models.User
	err       error
	lastToken string
	calls     int
}

func (m *mockGuard) Resolve(_ context.Context, rawToken string) (models.User, error) {
	m.calls++
	m.lastToken = rawToken
	if rawToken == "" {
		return models.User{}, service.ErrMissingCredential
	}
	return m.user, m.err
}

type mockTodos struct {
	createResp models.Todo
	createErr  error
	listResp   []models.Todo
	listErr    error
	getResp    models.Todo
	getErr     error
	updateResp models.Todo
	updateErr  error
	deleteErr  error

	lastOwnerID int64
	lastID      int64
	lastNew     service.NewTodo
	lastPatch   service.TodoPatch
	calls       int
}

func (m *mockTodos) Create(_ context.Context, ownerID int64, in service.NewTodo) (models.Todo, error) {
	m.calls++
	m.lastOwnerID = ownerID
	m.lastNew = in
	return m.createResp, m.createErr
}

func (m *mockTodos) ListByOwner(_ context.Context, ownerID int64) ([]models.Todo, error) {
	m.calls++
	m.lastOwnerID = ownerID
	return m.listResp, m.listErr
}

func (m *mockTodos) Get(_ context.Context, ownerID, id int64) (models.Todo, error) {
	m.calls++
	m.lastOwnerID, m.lastID = ownerID, id
	return m.getResp, m.getErr
}

func (m *mockTodos) Update(_ context.Context, ownerID, id int64, patch service.TodoPatch) (models.Todo, error) {
	m.calls++
	m.lastOwnerID, m.lastID = ownerID, id
	m.lastPatch = patch
	return m.updateResp, m.updateErr
}

func (m *mockTodos) Delete(_ context.Context, ownerID, id int64) error {
	m.calls++
	m.lastOwnerID, m.lastID = ownerID, id
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// doRequest sends a request with an optional JSON body through the router.
func doRequest(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
