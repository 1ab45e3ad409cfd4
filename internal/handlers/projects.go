package handlers

import (
	"net/http"
	"time"

	"teamtrack/internal/apperr"
	"teamtrack/internal/auth"
	"teamtrack/internal/database"
	"teamtrack/internal/middleware"
	"teamtrack/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// parseDateTime принимает дату с временем или без.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

//
// СПИСОК ПРОЕКТОВ
//

func (h *Handler) ListProjects(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	dbq := database.DB.Preload("Manager").
		Where("status <> ?", models.ProjectArchived).
		Order("created_at desc")

	// админ видит все неархивные проекты, остальные — только свои
	if actor.Role != models.RoleAdmin {
		dbq = dbq.Where("manager_id = ?", actor.ID)
	}

	var projects []models.Project
	if err := dbq.Find(&projects).Error; err != nil {
		fail(c, apperr.Store, "failed to load projects")
		return
	}

	dicts := make([]map[string]any, 0, len(projects))
	for i := range projects {
		dicts = append(dicts, projects[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"total": len(projects), "projects": dicts})
}

func (h *Handler) GetProject(c *gin.Context) {
	var project models.Project
	if err := database.DB.Preload("Manager").First(&project, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "project not found")
		return
	}
	c.JSON(http.StatusOK, project.ToDict())
}

//
// СОЗДАНИЕ ПРОЕКТА
//

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !auth.Can(actor, auth.CreateProject, auth.Resource{}) {
		fail(c, apperr.Forbidden, "no permission to create projects")
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation, "invalid request body")
		return
	}
	if req.Name == "" {
		fail(c, apperr.Validation, "project name is required")
		return
	}

	startDate := models.BeijingNow()
	if req.StartDate != "" {
		t, err := parseDateTime(req.StartDate)
		if err != nil {
			fail(c, apperr.Validation, "invalid start_date")
			return
		}
		startDate = t
	}

	endDate, err := parseDateTime(req.EndDate)
	if err != nil {
		fail(c, apperr.Validation, "invalid end_date")
		return
	}

	status := models.ProjectInProgress
	if req.Status != "" {
		status = models.ProjectStatus(req.Status)
		if !status.Valid() {
			fail(c, apperr.Validation, "invalid status")
			return
		}
	}

	priority := models.PriorityNormal
	if req.Priority != "" {
		priority = models.ProjectPriority(req.Priority)
		if !priority.Valid() {
			fail(c, apperr.Validation, "invalid priority")
			return
		}
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      status,
		Priority:    priority,
		ManagerID:   actor.ID,
	}

	// проект и его прогресс создаются в одной транзакции
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		process := models.Process{
			ProjectID:      project.ID,
			CompletionRate: 0,
			UpdateTime:     models.BeijingNow(),
		}
		return tx.Create(&process).Error
	})
	if err != nil {
		fail(c, apperr.Store, "failed to create project")
		return
	}

	database.CreateAuditLog(actor.ID, "project", project.ID, "create", "created project "+project.Name)

	c.JSON(http.StatusCreated, gin.H{"id": project.ID, "message": "project created"})
}

//
// РЕДАКТИРОВАНИЕ ПРОЕКТА
//

func (h *Handler) UpdateProject(c *gin.Context) {
	var project models.Project
	if err := database.DB.First(&project, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "project not found")
		return
	}

	actor := middleware.CurrentUser(c)
	if !auth.Can(actor, auth.UpdateProject, auth.Resource{ManagerID: project.ManagerID}) {
		fail(c, apperr.Forbidden, "no permission to update this project")
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation, "invalid request body")
		return
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.StartDate != "" {
		t, err := parseDateTime(req.StartDate)
		if err != nil {
			fail(c, apperr.Validation, "invalid start_date")
			return
		}
		project.StartDate = t
	}
	if req.EndDate != "" {
		t, err := parseDateTime(req.EndDate)
		if err != nil {
			fail(c, apperr.Validation, "invalid end_date")
			return
		}
		project.EndDate = t
	}
	if req.Priority != "" {
		priority := models.ProjectPriority(req.Priority)
		if !priority.Valid() {
			fail(c, apperr.Validation, "invalid priority")
			return
		}
		project.Priority = priority
	}

	archiving := false
	if req.Status != "" {
		newStatus := models.ProjectStatus(req.Status)
		if !newStatus.Valid() {
			fail(c, apperr.Validation, "invalid status")
			return
		}
		// из архива обратной дороги нет
		if project.Status == models.ProjectArchived && newStatus != models.ProjectArchived {
			fail(c, apperr.Validation, "archived project cannot change status")
			return
		}
		archiving = newStatus == models.ProjectArchived && project.Status != models.ProjectArchived
		project.Status = newStatus
	}

	// архивация пишет снимок в той же транзакции, что и сам проект
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&project).Error; err != nil {
			return err
		}
		if archiving {
			snapshot := models.ArchivedProject{
				ProjectID:    project.ID,
				ArchivedDate: models.BeijingNow(),
			}
			return tx.Create(&snapshot).Error
		}
		return nil
	})
	if err != nil {
		fail(c, apperr.Store, "failed to update project")
		return
	}

	database.CreateAuditLog(actor.ID, "project", project.ID, "update", "updated project "+project.Name)

	c.JSON(http.StatusOK, gin.H{"id": project.ID, "message": "project updated"})
}

//
// УДАЛЕНИЕ ПРОЕКТА
//

func (h *Handler) DeleteProject(c *gin.Context) {
	var project models.Project
	if err := database.DB.First(&project, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "project not found")
		return
	}

	actor := middleware.CurrentUser(c)
	if !auth.Can(actor, auth.DeleteProject, auth.Resource{ManagerID: project.ManagerID}) {
		fail(c, apperr.Forbidden, "no permission to delete this project")
		return
	}

	// задачи, прогресс и сам проект уходят одной транзакцией
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Process{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		fail(c, apperr.Store, "failed to delete project")
		return
	}

	database.CreateAuditLog(actor.ID, "project", project.ID, "delete", "deleted project "+project.Name)

	c.JSON(http.StatusOK, gin.H{"result": true, "message": "project deleted"})
}

//
// АРХИВ
//

func (h *Handler) ListArchivedProjects(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	dbq := database.DB.Preload("Project.Manager").
		Joins("JOIN projects ON projects.id = archived_projects.project_id").
		Order("archived_projects.archived_date desc")

	if actor.Role != models.RoleAdmin {
		dbq = dbq.Where("projects.manager_id = ?", actor.ID)
	}

	var archived []models.ArchivedProject
	if err := dbq.Find(&archived).Error; err != nil {
		fail(c, apperr.Store, "failed to load archived projects")
		return
	}

	dicts := make([]map[string]any, 0, len(archived))
	for i := range archived {
		dicts = append(dicts, archived[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"total": len(archived), "projects": dicts})
}
