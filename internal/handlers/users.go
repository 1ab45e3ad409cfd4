package handlers

import (
	"net/http"
	"time"

	"teamtrack/internal/apperr"
	"teamtrack/internal/database"
	"teamtrack/internal/export"
	"teamtrack/internal/middleware"
	"teamtrack/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("id asc").Find(&users).Error; err != nil {
		fail(c, apperr.Store, "failed to load users")
		return
	}

	dicts := make([]map[string]any, 0, len(users))
	for i := range users {
		dicts = append(dicts, users[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"total": len(users), "users": dicts})
}

func (h *Handler) ListMembers(c *gin.Context) {
	var members []models.User
	if err := database.DB.Where("role = ?", models.RoleMember).
		Order("id asc").Find(&members).Error; err != nil {
		fail(c, apperr.Store, "failed to load members")
		return
	}

	dicts := make([]map[string]any, 0, len(members))
	for i := range members {
		dicts = append(dicts, members[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"total": len(members), "members": dicts})
}

func (h *Handler) GetUser(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, user.ToDict())
}

type createUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Birthday string `json:"birthday"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation, "invalid request body")
		return
	}
	if req.Username == "" {
		fail(c, apperr.Validation, "username is required")
		return
	}

	role := models.UserRole(req.Role)
	if !role.Valid() {
		fail(c, apperr.Validation, "invalid role")
		return
	}

	var birthday *time.Time
	if req.Birthday != "" {
		t, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			fail(c, apperr.Validation, "invalid birthday")
			return
		}
		birthday = &t
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		fail(c, apperr.Conflict, "user already exists")
		return
	}

	// новый пользователь получает дефолтный пароль из конфига
	hash, err := bcrypt.GenerateFromPassword([]byte(h.cfg.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		fail(c, apperr.Store, "failed to hash password")
		return
	}

	user := models.User{
		Username:      req.Username,
		PasswordHash:  string(hash),
		Role:          role,
		Name:          req.Name,
		Gender:        req.Gender,
		Birthday:      birthday,
		AccountStatus: models.AccountActive,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		fail(c, apperr.Store, "failed to create user")
		return
	}

	if actor := middleware.CurrentUser(c); actor != nil {
		database.CreateAuditLog(actor.ID, "user", user.ID, "create", "created user "+user.Username)
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "message": "user created"})
}

func (h *Handler) UpdateUserInfo(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "user not found")
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation, "invalid request body")
		return
	}

	role := models.UserRole(req.Role)
	if !role.Valid() {
		fail(c, apperr.Validation, "invalid role")
		return
	}

	if req.Birthday != "" {
		t, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			fail(c, apperr.Validation, "invalid birthday")
			return
		}
		user.Birthday = &t
	}

	user.Username = req.Username
	user.Role = role
	user.Name = req.Name
	user.Gender = req.Gender

	if err := database.DB.Save(&user).Error; err != nil {
		fail(c, apperr.Store, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

type userStatusRequest struct {
	AccountStatus *bool `json:"account_status"`
}

func (h *Handler) UpdateUserStatus(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "user not found")
		return
	}

	var req userStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AccountStatus == nil {
		fail(c, apperr.Validation, "account_status is required")
		return
	}

	if *req.AccountStatus {
		user.AccountStatus = models.AccountActive
	} else {
		user.AccountStatus = models.AccountInactive
	}

	if err := database.DB.Save(&user).Error; err != nil {
		fail(c, apperr.Store, "failed to update account status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account status updated"})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		fail(c, apperr.NotFound, "user not found")
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		fail(c, apperr.Store, "failed to delete user")
		return
	}

	if actor := middleware.CurrentUser(c); actor != nil {
		database.CreateAuditLog(actor.ID, "user", user.ID, "delete", "deleted user "+user.Username)
	}

	c.JSON(http.StatusOK, gin.H{"result": true, "message": "user deleted"})
}

type exportUsersRequest struct {
	UserIDs []uint `json:"userIds"`
}

func (h *Handler) ExportUsers(c *gin.Context) {
	var req exportUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation, "invalid request body")
		return
	}

	var users []models.User
	if err := database.DB.Where("id IN ?", req.UserIDs).Find(&users).Error; err != nil {
		fail(c, apperr.Store, "failed to load users")
		return
	}

	wb, err := export.UsersWorkbook(users)
	if err != nil {
		fail(c, apperr.Store, "failed to build workbook")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="users.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := wb.Write(c.Writer); err != nil {
		fail(c, apperr.Store, "failed to write workbook")
	}
}
