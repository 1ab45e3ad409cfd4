package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"teamtrack/internal/apperr"
	"teamtrack/internal/auth"
	"teamtrack/internal/database"
	"teamtrack/internal/middleware"
	"teamtrack/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, apperr.Validation, "file is required")
		return
	}

	taskID := c.PostForm("task_id")
	var task models.Task
	if err := database.DB.First(&task, taskID).Error; err != nil {
		fail(c, apperr.NotFound, "task not found")
		return
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		fail(c, apperr.Store, "failed to prepare upload dir")
		return
	}

	// префикс от коллизий имён
	name := uuid.New().String() + "_" + filepath.Base(file.Filename)
	storedPath := filepath.ToSlash(filepath.Join(h.cfg.UploadDir, name))

	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		fail(c, apperr.Store, "failed to save file")
		return
	}

	task.AttachmentURL = storedPath
	if err := database.DB.Save(&task).Error; err != nil {
		fail(c, apperr.Store, "failed to update task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "file uploaded", "file_path": storedPath})
}

func (h *Handler) DownloadFile(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !auth.Can(actor, auth.DownloadAttachment, auth.Resource{}) {
		fail(c, apperr.Forbidden, "no permission to download files")
		return
	}

	// отдаём только файлы из каталога загрузок;
	// сравниваем абсолютные пути, каталог может быть задан и абсолютным
	raw := c.Param("filepath")
	requested := filepath.Clean(strings.TrimPrefix(raw, "/"))
	if filepath.IsAbs(h.cfg.UploadDir) {
		requested = filepath.Clean(raw)
	}
	requestedAbs, err := filepath.Abs(requested)
	if err != nil {
		fail(c, apperr.Forbidden, "no permission to access this file")
		return
	}
	uploadAbs, err := filepath.Abs(h.cfg.UploadDir)
	if err != nil || !strings.HasPrefix(requestedAbs, uploadAbs+string(filepath.Separator)) {
		fail(c, apperr.Forbidden, "no permission to access this file")
		return
	}

	if _, err := os.Stat(requestedAbs); err != nil {
		fail(c, apperr.NotFound, "file not found")
		return
	}

	c.File(requestedAbs)
}
