package handlers

import (
	"net/http"

	"teamtrack/internal/apperr"
	"teamtrack/internal/auth"
	"teamtrack/internal/database"
	"teamtrack/internal/middleware"
	"teamtrack/internal/models"

	"github.com/gin-gonic/gin"
)

//
// СПИСКИ ЗАДАЧ
//

func (h *Handler) ListTasks(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	dbq := database.DB.Preload("Assignee").Preload("Project.Manager").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.status <> ?", models.ProjectArchived)

	if actor.Role != models.RoleAdmin {
		dbq = dbq.Where("projects.manager_id = ?", actor.ID)
	}

	var tasks []models.Task
	if err := dbq.Find(&tasks).Error; err != nil {
		fail(c, apperr.Store, "failed to load tasks")
		return
	}

	dicts := make([]map[string]any, 0, len(tasks))
	for i := range tasks {
		dicts = append(dicts, tasks[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"total": len(tasks), "tasks": dicts})
}

// задачи, где текущий пользователь — исполнитель
func (h *Handler) ListMemberTasks(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var tasks []models.Task
	if err := database.DB.Preload("Assignee").Preload("Project.Manager").
		Where("assignee_id = ?", actor.ID).
		Find(&tasks).Error; err != nil {
		fail(c, apperr.Store, "failed to load tasks")
		return
	}

	dicts := make([]map[string]any, 0, len(tasks))
	for i := range tasks {
		dicts = append(dicts, tasks[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"total": len(tasks), "tasks": dicts})
}

func (h *Handler) GetTask(c *gin.Context) {
	var task models.Task
	if err := database.DB.Preload("Assignee").Preload("Project.Manager").
		First(&task, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "task not found")
		return
	}
	c.JSON(http.StatusOK, task.ToDict())
}

//
// СОЗДАНИЕ ЗАДАЧИ
//

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	AssigneeID  uint   `json:"assignee_id"`
	ProjectID   uint   `json:"project_id"`
	Status      string `json:"status"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !auth.Can(actor, auth.CreateTask, auth.Resource{}) {
		fail(c, apperr.Forbidden, "no permission to create tasks")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation, "invalid request body")
		return
	}
	if req.Title == "" {
		fail(c, apperr.Validation, "title is required")
		return
	}

	dueDate, err := parseDateTime(req.DueDate)
	if err != nil {
		fail(c, apperr.Validation, "invalid due_date")
		return
	}

	status := models.TaskInProgress
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
		if !status.Valid() {
			fail(c, apperr.Validation, "invalid status")
			return
		}
	}

	var project models.Project
	if err := database.DB.First(&project, req.ProjectID).Error; err != nil {
		fail(c, apperr.NotFound, "project not found")
		return
	}
	var assignee models.User
	if err := database.DB.First(&assignee, req.AssigneeID).Error; err != nil {
		fail(c, apperr.NotFound, "assignee not found")
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		AssigneeID:  assignee.ID,
		ProjectID:   project.ID,
		Status:      status,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		fail(c, apperr.Store, "failed to create task")
		return
	}

	database.CreateAuditLog(actor.ID, "task", task.ID, "create", "created task "+task.Title)

	c.JSON(http.StatusCreated, gin.H{"id": task.ID, "message": "task created"})
}

//
// РЕДАКТИРОВАНИЕ ЗАДАЧИ
//

func (h *Handler) UpdateTask(c *gin.Context) {
	var task models.Task
	if err := database.DB.Preload("Project").First(&task, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "task not found")
		return
	}

	actor := middleware.CurrentUser(c)
	if !auth.Can(actor, auth.UpdateTask, auth.Resource{ManagerID: task.Project.ManagerID}) {
		fail(c, apperr.Forbidden, "no permission to update this task")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation, "invalid request body")
		return
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.DueDate != "" {
		t, err := parseDateTime(req.DueDate)
		if err != nil {
			fail(c, apperr.Validation, "invalid due_date")
			return
		}
		task.DueDate = t
	}
	if req.AssigneeID != 0 {
		var assignee models.User
		if err := database.DB.First(&assignee, req.AssigneeID).Error; err != nil {
			fail(c, apperr.NotFound, "assignee not found")
			return
		}
		task.AssigneeID = assignee.ID
	}
	if req.ProjectID != 0 {
		var project models.Project
		if err := database.DB.First(&project, req.ProjectID).Error; err != nil {
			fail(c, apperr.NotFound, "project not found")
			return
		}
		task.ProjectID = project.ID
	}
	if req.Status != "" {
		status := models.TaskStatus(req.Status)
		if !status.Valid() {
			fail(c, apperr.Validation, "invalid status")
			return
		}
		task.Status = status
	}

	if err := database.DB.Save(&task).Error; err != nil {
		fail(c, apperr.Store, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task updated"})
}

//
// УДАЛЕНИЕ ЗАДАЧИ
//

func (h *Handler) DeleteTask(c *gin.Context) {
	var task models.Task
	if err := database.DB.First(&task, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "task not found")
		return
	}

	actor := middleware.CurrentUser(c)
	if !auth.Can(actor, auth.DeleteTask, auth.Resource{AssigneeID: task.AssigneeID}) {
		fail(c, apperr.Forbidden, "no permission to delete this task")
		return
	}

	// комментарии задачи намеренно остаются — поведение исходной системы
	if err := database.DB.Delete(&task).Error; err != nil {
		fail(c, apperr.Store, "failed to delete task")
		return
	}

	database.CreateAuditLog(actor.ID, "task", task.ID, "delete", "deleted task "+task.Title)

	c.JSON(http.StatusOK, gin.H{"result": true, "message": "task deleted"})
}

//
// СМЕНА СТАТУСА
//

type taskStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	var task models.Task
	if err := database.DB.First(&task, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "task not found")
		return
	}

	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		fail(c, apperr.Validation, "status is required")
		return
	}

	status := models.TaskStatus(req.Status)
	if !status.Valid() {
		fail(c, apperr.Validation, "invalid status")
		return
	}

	task.Status = status
	if err := database.DB.Save(&task).Error; err != nil {
		fail(c, apperr.Store, "failed to update task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "task status updated",
		"task_id": task.ID,
		"status":  string(status),
	})
}
