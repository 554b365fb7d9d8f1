package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trivora/trivora/internal/config"
	"github.com/trivora/trivora/internal/indexer"
	"github.com/trivora/trivora/internal/media"
	"github.com/trivora/trivora/internal/service"
	"github.com/trivora/trivora/internal/session"
)

// Handler combines all handler types
type Handler struct {
	Auth *AuthHandler
	Post *PostHandler
	Page *PageHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, cfg *config.Config, sessions *session.Manager, uploader media.Uploader, notifier *indexer.Notifier) *Handler {
	content := service.NewContentService(db)
	creds := service.NewCredentialService(db)

	return &Handler{
		Auth: NewAuthHandler(creds, sessions),
		Post: NewPostHandler(content, uploader, notifier, cfg.BaseURL),
		Page: NewPageHandler(content, cfg.BaseURL),
	}
}

func currentUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

func currentUsername(c *gin.Context) string {
	v, exists := c.Get("username")
	if !exists {
		return ""
	}
	name, _ := v.(string)
	return name
}
