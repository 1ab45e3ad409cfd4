package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"teamtrack/internal/models"
)

func TestCreateUserWithDefaultPassword(t *testing.T) {
	r, tokens := setup(t)
	admin := createUser(t, "admin@example.com", models.RoleAdmin, "Secret123")

	w := doJSON(t, r, http.MethodPost, "/api/users", tokenFor(t, tokens, admin), map[string]string{
		"username": "newbie@example.com",
		"role":     "member",
		"name":     "Newbie",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// входит с дефолтным паролем из конфига
	w = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"account": "newbie@example.com", "password": "Xxx@123456",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login with default password: status = %d", w.Code)
	}
}

func TestCreateUserValidation(t *testing.T) {
	r, tokens := setup(t)
	admin := createUser(t, "admin@example.com", models.RoleAdmin, "Secret123")
	token := tokenFor(t, tokens, admin)

	// роль вне перечисления
	w := doJSON(t, r, http.MethodPost, "/api/users", token, map[string]string{
		"username": "x@example.com", "role": "superuser",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad role: status = %d, want 400", w.Code)
	}

	// дубль имени — конфликт
	w = doJSON(t, r, http.MethodPost, "/api/users", token, map[string]string{
		"username": "admin@example.com", "role": "member",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate: status = %d, want 409", w.Code)
	}
}

func TestUserAdminEndpointsRequireAdmin(t *testing.T) {
	r, tokens := setup(t)
	manager := createUser(t, "manager@example.com", models.RoleManager, "Secret123")
	token := tokenFor(t, tokens, manager)

	w := doJSON(t, r, http.MethodGet, "/api/users", token, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("list users: status = %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/users", token, map[string]string{
		"username": "x@example.com", "role": "member",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("create user: status = %d, want 403", w.Code)
	}
}

func TestDisableAccountBlocksLogin(t *testing.T) {
	r, tokens := setup(t)
	admin := createUser(t, "admin@example.com", models.RoleAdmin, "Secret123")
	victim := createUser(t, "victim@example.com", models.RoleMember, "Secret123")

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d/status", victim.ID),
		tokenFor(t, tokens, admin), map[string]bool{"account_status": false})
	if w.Code != http.StatusOK {
		t.Fatalf("disable: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"account": "victim@example.com", "password": "Secret123",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("login disabled: status = %d, want 403", w.Code)
	}
}

func TestListMembers(t *testing.T) {
	r, tokens := setup(t)
	manager := createUser(t, "manager@example.com", models.RoleManager, "Secret123")
	createUser(t, "m1@example.com", models.RoleMember, "Secret123")
	createUser(t, "m2@example.com", models.RoleMember, "Secret123")
	createUser(t, "u@example.com", models.RoleUser, "Secret123")

	w := doJSON(t, r, http.MethodGet, "/api/users/members", tokenFor(t, tokens, manager), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := decode(t, w)["total"].(float64); total != 2 {
		t.Errorf("total = %v, want 2", total)
	}
}
