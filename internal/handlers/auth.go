package handlers

import (
	"net/http"
	"strings"

	"teamtrack/internal/apperr"
	"teamtrack/internal/database"
	"teamtrack/internal/logging"
	"teamtrack/internal/mailer"
	"teamtrack/internal/middleware"
	"teamtrack/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation, "invalid request body")
		return
	}

	// неизвестный логин и неверный пароль отвечают одинаково
	var user models.User
	if err := database.DB.Where("username = ?", req.Account).First(&user).Error; err != nil {
		fail(c, apperr.Unauthorized, "wrong account or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		fail(c, apperr.Unauthorized, "wrong account or password")
		return
	}

	if user.AccountStatus == models.AccountInactive {
		fail(c, apperr.Forbidden, "account disabled")
		return
	}

	now := models.BeijingNow()
	user.LastLoginAt = &now
	user.LastLoginIP = c.ClientIP()
	if err := database.DB.Save(&user).Error; err != nil {
		fail(c, apperr.Store, "failed to update login info")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		fail(c, apperr.Store, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || len(req.Password) < 6 {
		fail(c, apperr.Validation, "email or password too short")
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Email).First(&existing).Error; err == nil {
		fail(c, apperr.Conflict, "user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, apperr.Store, "failed to hash password")
		return
	}

	// самостоятельная регистрация даёт только базовую роль
	user := models.User{
		Username:      req.Email,
		PasswordHash:  string(hash),
		Role:          models.RoleUser,
		AccountStatus: models.AccountActive,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		fail(c, apperr.Store, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "account registered"})
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) SendVerificationCode(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, apperr.Validation, "email is required")
		return
	}

	code := mailer.GenerateVerificationCode(6)

	// доставка в фоне: её неудача не валит этот запрос
	h.mail.Enqueue(mailer.Message{
		To:      req.Email,
		Subject: "Your verification code",
		Body:    "Your verification code is " + code + ". It is valid for 10 minutes.",
	})
	logging.Logger.Infof("verification code requested for %s", req.Email)

	c.JSON(http.StatusOK, gin.H{
		"message":           "verification code sent",
		"verification_code": code,
	})
}

func (h *Handler) CheckEmailRegistered(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, apperr.Validation, "email is required")
		return
	}

	var user models.User
	registered := database.DB.Where("username = ?", req.Email).First(&user).Error == nil
	c.JSON(http.StatusOK, gin.H{"registered": registered})
}

type recoverRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) RecoverAccount(c *gin.Context) {
	var req recoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation, "invalid request body")
		return
	}
	if len(req.NewPassword) < 6 {
		fail(c, apperr.Validation, "password too short")
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Email).First(&user).Error; err != nil {
		fail(c, apperr.NotFound, "email is not registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		fail(c, apperr.Store, "failed to hash password")
		return
	}
	user.PasswordHash = string(hash)
	if err := database.DB.Save(&user).Error; err != nil {
		fail(c, apperr.Store, "failed to update password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password has been reset"})
}

func (h *Handler) GetUserRole(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"role": string(user.Role)})
}

func (h *Handler) GetCurrentUserName(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"username": user.Name})
}
