package handlers

import (
	"teamtrack/internal/apperr"
	"teamtrack/internal/auth"
	"teamtrack/internal/config"
	"teamtrack/internal/mailer"

	"github.com/gin-gonic/gin"
)

// Handler держит зависимости запросных обработчиков: конфиг, токены, почту.
type Handler struct {
	cfg    *config.Config
	tokens *auth.TokenService
	mail   *mailer.Mailer
}

func New(cfg *config.Config, tokens *auth.TokenService, mail *mailer.Mailer) *Handler {
	return &Handler{cfg: cfg, tokens: tokens, mail: mail}
}

func fail(c *gin.Context, kind apperr.Kind, msg string) {
	c.JSON(kind.HTTPStatus(), gin.H{
		"error":   string(kind),
		"message": msg,
	})
}
