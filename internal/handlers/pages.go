package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trivora/trivora/internal/service"
	"github.com/trivora/trivora/internal/sitemap"
)

type PageHandler struct {
	content *service.ContentService
	baseURL string
}

func NewPageHandler(content *service.ContentService, baseURL string) *PageHandler {
	return &PageHandler{content: content, baseURL: baseURL}
}

func (h *PageHandler) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{"Username": currentUsername(c)})
}

func (h *PageHandler) Privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{"Username": currentUsername(c)})
}

// Sitemap serves one <url> entry per page and per post.
func (h *PageHandler) Sitemap(c *gin.Context) {
	posts, err := h.content.ListAll(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to build sitemap")
		return
	}

	set := sitemap.Build(h.baseURL, time.Now().UTC(), posts)

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Status(http.StatusOK)
	if err := set.Encode(c.Writer); err != nil {
		log.Printf("writing sitemap: %v", err)
	}
}
