package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"teamtrack/internal/database"
	"teamtrack/internal/models"
)

func loadProcess(t *testing.T, projectID uint) models.Process {
	t.Helper()
	var process models.Process
	if err := database.DB.Where("project_id = ?", projectID).First(&process).Error; err != nil {
		t.Fatalf("load process: %v", err)
	}
	return process
}

func TestUpdateProcessByOwner(t *testing.T) {
	r, tokens := setup(t)
	manager := createUser(t, "manager@example.com", models.RoleManager, "Secret123")
	project := createProject(t, manager, "P", models.ProjectInProgress)
	process := loadProcess(t, project.ID)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/processes/%d", process.ID),
		tokenFor(t, tokens, manager), map[string]float64{"completion_rate": 72})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// внутри храним долю, наружу отдаём проценты
	stored := loadProcess(t, project.ID)
	if stored.CompletionRate != 0.72 {
		t.Errorf("stored rate = %v, want 0.72", stored.CompletionRate)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/processes/%d", process.ID),
		tokenFor(t, tokens, manager), nil)
	if rate := decode(t, w)["completion_rate"].(float64); rate != 72 {
		t.Errorf("displayed rate = %v, want 72", rate)
	}
}

func TestUpdateProcessForbiddenForOthers(t *testing.T) {
	r, tokens := setup(t)
	manager := createUser(t, "manager@example.com", models.RoleManager, "Secret123")
	other := createUser(t, "other@example.com", models.RoleManager, "Secret123")
	admin := createUser(t, "admin@example.com", models.RoleAdmin, "Secret123")

	project := createProject(t, manager, "P", models.ProjectInProgress)
	process := loadProcess(t, project.ID)
	path := fmt.Sprintf("/api/processes/%d", process.ID)

	for _, u := range []models.User{other, admin} {
		w := doJSON(t, r, http.MethodPut, path, tokenFor(t, tokens, u),
			map[string]float64{"completion_rate": 50})
		if w.Code != http.StatusForbidden {
			t.Errorf("%s: status = %d, want 403", u.Username, w.Code)
		}
	}
}

func TestUpdateProcessValidatesRate(t *testing.T) {
	r, tokens := setup(t)
	manager := createUser(t, "manager@example.com", models.RoleManager, "Secret123")
	project := createProject(t, manager, "P", models.ProjectInProgress)
	process := loadProcess(t, project.ID)
	path := fmt.Sprintf("/api/processes/%d", process.ID)
	token := tokenFor(t, tokens, manager)

	for _, rate := range []float64{-1, 101} {
		w := doJSON(t, r, http.MethodPut, path, token, map[string]float64{"completion_rate": rate})
		if w.Code != http.StatusBadRequest {
			t.Errorf("rate %v: status = %d, want 400", rate, w.Code)
		}
	}
}

func TestListProcessesExcludesArchived(t *testing.T) {
	r, tokens := setup(t)
	manager := createUser(t, "manager@example.com", models.RoleManager, "Secret123")
	admin := createUser(t, "admin@example.com", models.RoleAdmin, "Secret123")

	createProject(t, manager, "Live", models.ProjectInProgress)
	createProject(t, manager, "Gone", models.ProjectArchived)

	w := doJSON(t, r, http.MethodGet, "/api/processes", tokenFor(t, tokens, admin), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := decode(t, w)["total"].(float64); total != 1 {
		t.Errorf("total = %v, want 1", total)
	}
}
