package middleware

import (
	"errors"
	"strings"

	"teamtrack/internal/apperr"
	"teamtrack/internal/auth"
	"teamtrack/internal/database"
	"teamtrack/internal/models"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "CurrentUser"

// RequireAuth достаёт Bearer-токен, проверяет его и кладёт пользователя в контекст.
// Любая проблема с токеном — 401 до обращения к ресурсам.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		userID, err := tokens.Validate(tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrExpired) {
				abortUnauthorized(c, "token expired")
			} else {
				abortUnauthorized(c, "invalid token")
			}
			return
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			abortUnauthorized(c, "unknown user")
			return
		}

		c.Set(currentUserKey, &user)
		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			c.AbortWithStatusJSON(apperr.Forbidden.HTTPStatus(), gin.H{
				"error":   string(apperr.Forbidden),
				"message": "access denied",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser — пользователь, положенный RequireAuth; nil вне защищённых маршрутов.
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(apperr.Unauthorized.HTTPStatus(), gin.H{
		"error":   string(apperr.Unauthorized),
		"message": msg,
	})
}
