package service

import (
	"testing"
	"time"

	"todo_service/internal/repository"
)

func TestNewService_Wiring(t *testing.T) {
	repos := &repository.Repository{
		Users: &mockUserRepo{GetByEmailFn: notFoundUser},
		Todos: newFakeTodoRepo(),
	}
	svc := NewService(repos, Config{SigningKey: "k", TokenTTL: time.Minute, BcryptCost: 4})

	if _, ok := svc.Authorization.(*AuthService); !ok {
		t.Fatalf("Authorization is %T", svc.Authorization)
	}
	if _, ok := svc.Guard.(*AuthGuard); !ok {
		t.Fatalf("Guard is %T", svc.Guard)
	}
	if _, ok := svc.Todos.(*TodoService); !ok {
		t.Fatalf("Todos is %T", svc.Todos)
	}
}
