package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"teamtrack/internal/auth"
	"teamtrack/internal/config"
	"teamtrack/internal/database"
	"teamtrack/internal/mailer"
	"teamtrack/internal/models"
	"teamtrack/internal/server"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setup поднимает роутер поверх sqlite в памяти.
func setup(t *testing.T) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// одна вязка к одной in-memory базе
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Process{},
		&models.ArchivedProject{},
		&models.Task{},
		&models.Comment{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	cfg := &config.Config{
		DefaultPassword: "Xxx@123456",
		UploadDir:       t.TempDir(),
	}
	tokens := auth.NewTokenService("test-secret")

	return server.NewRouter(cfg, tokens, mailer.New(cfg)), tokens
}

func createUser(t *testing.T, username string, role models.UserRole, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		Username:      username,
		PasswordHash:  string(hash),
		Role:          role,
		Name:          username,
		AccountStatus: models.AccountActive,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func tokenFor(t *testing.T, tokens *auth.TokenService, user models.User) string {
	t.Helper()
	token, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func createProject(t *testing.T, manager models.User, name string, status models.ProjectStatus) models.Project {
	t.Helper()

	project := models.Project{
		Name:      name,
		StartDate: models.BeijingNow(),
		EndDate:   models.BeijingNow().AddDate(0, 6, 0),
		Status:    status,
		Priority:  models.PriorityNormal,
		ManagerID: manager.ID,
	}
	if err := database.DB.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	process := models.Process{
		ProjectID:  project.ID,
		UpdateTime: models.BeijingNow(),
	}
	if err := database.DB.Create(&process).Error; err != nil {
		t.Fatalf("create process: %v", err)
	}
	return project
}

func createTask(t *testing.T, project models.Project, assignee models.User, title string) models.Task {
	t.Helper()

	task := models.Task{
		Title:      title,
		DueDate:    models.BeijingNow().AddDate(0, 1, 0),
		AssigneeID: assignee.ID,
		ProjectID:  project.ID,
		Status:     models.TaskInProgress,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
