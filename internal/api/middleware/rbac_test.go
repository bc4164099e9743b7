package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-api/internal/core/authz"
	"github.com/taskhub/task-api/internal/core/domain"
)

func runRequire(t *testing.T, role any, op authz.Operation) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(CtxRole, role)
	}

	called := false
	handler := Require(op)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, handler(c)
}

func TestRequire_OwnerAllowedAllOperations(t *testing.T) {
	ops := []authz.Operation{authz.ViewTasks, authz.CreateTask, authz.EditTask, authz.DeleteTask, authz.CompleteTask}
	for _, op := range ops {
		called, err := runRequire(t, domain.RoleOwner, op)
		if err != nil {
			t.Fatalf("%s: handler error: %v", op, err)
		}
		if !called {
			t.Fatalf("%s: next handler not called", op)
		}
	}
}

func TestRequire_GuestDeniedMutations(t *testing.T) {
	called, err := runRequire(t, domain.RoleGuest, authz.ViewTasks)
	if err != nil || !called {
		t.Fatalf("guest must be able to view: called=%v err=%v", called, err)
	}

	ops := []authz.Operation{authz.CreateTask, authz.EditTask, authz.DeleteTask, authz.CompleteTask}
	for _, op := range ops {
		called, err := runRequire(t, domain.RoleGuest, op)
		if called {
			t.Fatalf("%s: handler must not run for guest", op)
		}
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s: expected ErrForbidden, got %v", op, err)
		}
	}
}

func TestRequire_MissingRoleDenied(t *testing.T) {
	called, err := runRequire(t, nil, authz.ViewTasks)
	if called {
		t.Fatalf("handler must not run without a role")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
