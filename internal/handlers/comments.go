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

func (h *Handler) ListTaskComments(c *gin.Context) {
	var task models.Task
	if err := database.DB.First(&task, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "task not found")
		return
	}

	var comments []models.Comment
	if err := database.DB.Where("task_id = ?", task.ID).
		Order("created_at asc").Find(&comments).Error; err != nil {
		fail(c, apperr.Store, "failed to load comments")
		return
	}

	dicts := make([]map[string]any, 0, len(comments))
	for i := range comments {
		dicts = append(dicts, comments[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"comments": dicts})
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) CreateTaskComment(c *gin.Context) {
	var task models.Task
	if err := database.DB.First(&task, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "task not found")
		return
	}

	actor := middleware.CurrentUser(c)
	if !auth.Can(actor, auth.CreateComment, auth.Resource{}) {
		fail(c, apperr.Forbidden, "no permission to comment")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		fail(c, apperr.Validation, "content is required")
		return
	}

	// имя автора фиксируем на момент создания
	authorName := actor.Name
	if authorName == "" {
		authorName = actor.Username
	}

	comment := models.Comment{
		TaskID:     task.ID,
		AuthorName: authorName,
		Content:    req.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		fail(c, apperr.Store, "failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "comment created", "comment": comment.ToDict()})
}
