package handlers

import (
	"math"
	"net/http"

	"teamtrack/internal/apperr"
	"teamtrack/internal/auth"
	"teamtrack/internal/database"
	"teamtrack/internal/middleware"
	"teamtrack/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListProcesses(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	dbq := database.DB.Preload("Project").
		Joins("JOIN projects ON projects.id = processes.project_id").
		Where("projects.status <> ?", models.ProjectArchived)

	if actor.Role != models.RoleAdmin {
		dbq = dbq.Where("projects.manager_id = ?", actor.ID)
	}

	var processes []models.Process
	if err := dbq.Find(&processes).Error; err != nil {
		fail(c, apperr.Store, "failed to load processes")
		return
	}

	dicts := make([]map[string]any, 0, len(processes))
	for i := range processes {
		dicts = append(dicts, processes[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"total": len(processes), "processes": dicts})
}

func (h *Handler) GetProcess(c *gin.Context) {
	var process models.Process
	if err := database.DB.Preload("Project").First(&process, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "process not found")
		return
	}
	c.JSON(http.StatusOK, process.ToDict())
}

type processRequest struct {
	CompletionRate *float64 `json:"completion_rate"`
}

func (h *Handler) UpdateProcess(c *gin.Context) {
	var process models.Process
	if err := database.DB.Preload("Project").First(&process, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "process not found")
		return
	}

	actor := middleware.CurrentUser(c)
	if !auth.Can(actor, auth.UpdateProcess, auth.Resource{ManagerID: process.Project.ManagerID}) {
		fail(c, apperr.Forbidden, "no permission to update this process")
		return
	}

	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CompletionRate == nil {
		fail(c, apperr.Validation, "completion_rate is required")
		return
	}
	if *req.CompletionRate < 0 || *req.CompletionRate > 100 {
		fail(c, apperr.Validation, "completion_rate must be between 0 and 100")
		return
	}

	// клиент шлёт проценты, храним долю с округлением до сотых
	process.CompletionRate = math.Round(*req.CompletionRate) / 100
	process.UpdateTime = models.BeijingNow()

	if err := database.DB.Save(&process).Error; err != nil {
		fail(c, apperr.Store, "failed to update process")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": process.ID, "message": "process updated"})
}
