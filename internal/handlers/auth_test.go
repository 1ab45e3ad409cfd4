package handlers_test

import (
	"net/http"
	"testing"

	"teamtrack/internal/database"
	"teamtrack/internal/models"
)

func TestLoginRoundTrip(t *testing.T) {
	r, tokens := setup(t)
	user := createUser(t, "alice@example.com", models.RoleManager, "Secret123")

	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"account":  "alice@example.com",
		"password": "Secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatal("no token in response")
	}

	userID, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if userID != user.ID {
		t.Errorf("token user id = %d, want %d", userID, user.ID)
	}

	// отметки входа обновились
	var stored models.User
	if err := database.DB.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Error("last_login_at not set")
	}
}

func TestLoginWrongPasswordRepeated(t *testing.T) {
	r, _ := setup(t)
	createUser(t, "bob@example.com", models.RoleMember, "Secret123")

	// без блокировки: каждый раз просто одинаковый отказ
	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
			"account":  "bob@example.com",
			"password": "wrong",
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i+1, w.Code)
		}
		if kind := decode(t, w)["error"]; kind != "unauthorized" {
			t.Errorf("attempt %d: error = %v", i+1, kind)
		}
	}
}

func TestLoginUnknownAccountSameAsWrongPassword(t *testing.T) {
	r, _ := setup(t)
	createUser(t, "carol@example.com", models.RoleMember, "Secret123")

	unknown := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"account": "nobody@example.com", "password": "Secret123",
	})
	wrong := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"account": "carol@example.com", "password": "wrong",
	})

	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("codes = %d, %d, want 401 both", unknown.Code, wrong.Code)
	}
	if unknown.Body.String() != wrong.Body.String() {
		t.Errorf("responses differ: %s vs %s", unknown.Body.String(), wrong.Body.String())
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	r, _ := setup(t)
	user := createUser(t, "dave@example.com", models.RoleMember, "Secret123")
	database.DB.Model(&user).Update("account_status", models.AccountInactive)

	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"account": "dave@example.com", "password": "Secret123",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRegisterAndConflict(t *testing.T) {
	r, _ := setup(t)

	body := map[string]string{"email": "new@example.com", "password": "Secret123"}

	w := doJSON(t, r, http.MethodPost, "/api/register", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// самостоятельная регистрация даёт базовую роль
	var user models.User
	if err := database.DB.Where("username = ?", "new@example.com").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %s, want user", user.Role)
	}

	w = doJSON(t, r, http.MethodPost, "/api/register", "", body)
	if w.Code != http.StatusConflict {
		t.Errorf("second register status = %d, want 409", w.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r, tokens := setup(t)
	user := createUser(t, "eve@example.com", models.RoleMember, "Secret123")

	w := doJSON(t, r, http.MethodGet, "/api/user-role", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/user-role", "garbage", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/user-role", tokenFor(t, tokens, user), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("good token: status = %d, body = %s", w.Code, w.Body.String())
	}
	if role := decode(t, w)["role"]; role != "member" {
		t.Errorf("role = %v, want member", role)
	}
}

func TestRecoverAccount(t *testing.T) {
	r, _ := setup(t)
	createUser(t, "frank@example.com", models.RoleUser, "OldSecret1")

	w := doJSON(t, r, http.MethodPost, "/api/recover-account", "", map[string]string{
		"email": "frank@example.com", "newPassword": "NewSecret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// старый пароль больше не подходит, новый работает
	w = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"account": "frank@example.com", "password": "OldSecret1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("old password: status = %d, want 401", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"account": "frank@example.com", "password": "NewSecret1",
	})
	if w.Code != http.StatusOK {
		t.Errorf("new password: status = %d, want 200", w.Code)
	}
}
