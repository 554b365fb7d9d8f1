package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trivora/trivora/internal/indexer"
	"github.com/trivora/trivora/internal/media"
	"github.com/trivora/trivora/internal/models"
	"github.com/trivora/trivora/internal/render"
	"github.com/trivora/trivora/internal/service"
)

type PostHandler struct {
	content  *service.ContentService
	uploader media.Uploader
	notifier *indexer.Notifier
	baseURL  string
}

func NewPostHandler(content *service.ContentService, uploader media.Uploader, notifier *indexer.Notifier, baseURL string) *PostHandler {
	return &PostHandler{
		content:  content,
		uploader: uploader,
		notifier: notifier,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

type postView struct {
	models.Post
	Rendered template.HTML
}

func validPostForm(form models.PostForm) bool {
	return strings.TrimSpace(form.Title) != "" &&
		strings.TrimSpace(form.Category) != "" &&
		strings.TrimSpace(form.Content) != ""
}

func viewsOf(posts []models.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, postView{Post: p, Rendered: render.Render(p.Content)})
	}
	return views
}

// Home lists the most recent posts. This is the one route where a
// database failure is surfaced as plain text instead of an error page.
func (h *PostHandler) Home(c *gin.Context) {
	posts, err := h.content.ListRecent(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Database Error: %v", err)
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Posts":    viewsOf(posts),
		"Username": currentUsername(c),
	})
}

// Category lists every post with an exactly matching category string.
func (h *PostHandler) Category(c *gin.Context) {
	name := c.Param("name")

	posts, err := h.content.ListByCategory(c.Request.Context(), name)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	c.HTML(http.StatusOK, "category.html", gin.H{
		"CategoryName": name,
		"Posts":        viewsOf(posts),
		"Username":     currentUsername(c),
	})
}

func (h *PostHandler) UploadPage(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", gin.H{"Username": currentUsername(c)})
}

// Upload creates a post, storing the attached image first when a valid
// one was sent. The indexing ping happens after the commit and cannot
// fail the request.
func (h *PostHandler) Upload(c *gin.Context) {
	var form models.PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "upload.html", gin.H{"Error": "All fields are required", "Username": currentUsername(c)})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.String(http.StatusUnauthorized, "User not authenticated")
		return
	}

	// Reject incomplete forms before talking to the image host, so a
	// doomed request never orphans an upload there.
	if !validPostForm(form) {
		c.HTML(http.StatusBadRequest, "upload.html", gin.H{"Error": "All fields are required", "Username": currentUsername(c)})
		return
	}

	imageURL := h.storeImage(c)

	post, err := h.content.CreatePost(c.Request.Context(), userID, service.PostInput{
		Title:    form.Title,
		Category: form.Category,
		Content:  form.Content,
		ImageURL: imageURL,
	})
	if errors.Is(err, service.ErrInvalidInput) {
		c.HTML(http.StatusBadRequest, "upload.html", gin.H{"Error": "All fields are required", "Username": currentUsername(c)})
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to create post")
		return
	}

	h.notifier.NotifyAsync(fmt.Sprintf("%s/post/%d", h.baseURL, post.ID))

	c.Redirect(http.StatusSeeOther, "/category/"+url.PathEscape(post.Category))
}

// Detail shows a single post.
func (h *PostHandler) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.content.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		c.String(http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	c.HTML(http.StatusOK, "post_detail.html", gin.H{
		"Post":     postView{Post: *post, Rendered: render.Render(post.Content)},
		"Username": currentUsername(c),
	})
}

// gin's router cannot register /post/delete/:id next to /post/:id, so
// the two-segment forms share one parameter route and dispatch on the
// first segment.
func (h *PostHandler) DispatchGet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("sub"))
	if err != nil {
		c.String(http.StatusNotFound, "Post not found")
		return
	}

	switch c.Param("id") {
	case "delete":
		h.delete(c, id)
	case "edit":
		h.editPage(c, id)
	default:
		c.String(http.StatusNotFound, "Not found")
	}
}

func (h *PostHandler) DispatchPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("sub"))
	if err != nil {
		c.String(http.StatusNotFound, "Post not found")
		return
	}

	if c.Param("id") != "edit" {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	h.edit(c, id)
}

func (h *PostHandler) delete(c *gin.Context, id int) {
	userID, ok := currentUserID(c)
	if !ok {
		c.String(http.StatusForbidden, "Unauthorized!")
		return
	}

	err := h.content.DeletePost(c.Request.Context(), id, userID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, "Post not found")
	case errors.Is(err, service.ErrUnauthorized):
		c.String(http.StatusForbidden, "Unauthorized!")
	case err != nil:
		c.String(http.StatusInternalServerError, "Failed to delete post")
	default:
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func (h *PostHandler) editPage(c *gin.Context, id int) {
	post, err := h.content.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		c.String(http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	userID, ok := currentUserID(c)
	if !ok || post.AuthorID != userID {
		c.String(http.StatusForbidden, "Unauthorized!")
		return
	}

	c.HTML(http.StatusOK, "edit_post.html", gin.H{
		"Post":     post,
		"Username": currentUsername(c),
	})
}

func (h *PostHandler) edit(c *gin.Context, id int) {
	userID, ok := currentUserID(c)
	if !ok {
		c.String(http.StatusForbidden, "Unauthorized!")
		return
	}

	// Settle ownership and form validity before talking to the image
	// host; a rejected edit must not orphan an upload there. The
	// service re-checks both when it applies the update.
	existing, err := h.content.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		c.String(http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to fetch post")
		return
	}
	if existing.AuthorID != userID {
		c.String(http.StatusForbidden, "Unauthorized!")
		return
	}

	var form models.PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "All fields are required")
		return
	}
	if !validPostForm(form) {
		c.String(http.StatusBadRequest, "All fields are required")
		return
	}

	imageURL := h.storeImage(c)

	post, err := h.content.UpdatePost(c.Request.Context(), id, userID, service.PostInput{
		Title:    form.Title,
		Category: form.Category,
		Content:  form.Content,
		ImageURL: imageURL,
	})
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, "Post not found")
	case errors.Is(err, service.ErrUnauthorized):
		c.String(http.StatusForbidden, "Unauthorized!")
	case errors.Is(err, service.ErrInvalidInput):
		c.String(http.StatusBadRequest, "All fields are required")
	case err != nil:
		c.String(http.StatusInternalServerError, "Failed to update post")
	default:
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", post.ID))
	}
}

// storeImage uploads the attached file if one was sent and it passes
// the extension check. Any failure means the post simply has no image;
// it never fails the request.
func (h *PostHandler) storeImage(c *gin.Context) string {
	fh, err := c.FormFile("image")
	if err != nil || fh.Filename == "" {
		return ""
	}
	if !media.AllowedExtension(fh.Filename) {
		return ""
	}
	if h.uploader == nil {
		return ""
	}

	f, err := fh.Open()
	if err != nil {
		log.Printf("opening uploaded file: %v", err)
		return ""
	}
	defer f.Close()

	imageURL, err := h.uploader.Upload(c.Request.Context(), fh.Filename, f)
	if err != nil {
		log.Printf("image upload failed: %v", err)
		return ""
	}
	return imageURL
}
