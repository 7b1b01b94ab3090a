package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terravista/estates/internal/models"
	"github.com/terravista/estates/internal/services"
	"github.com/terravista/estates/internal/storage"
	"github.com/terravista/estates/internal/types"
	"github.com/terravista/estates/internal/utils"
	"github.com/terravista/estates/internal/validation"
	"gorm.io/gorm"
)

// BlogHandler handles blog post routes
type BlogHandler struct {
	DB      *gorm.DB
	Uploads *storage.Uploader
}

// mutable fields accepted in partial blog updates; the slug is the
// public lookup key and is never client-writable
var blogUpdateFields = map[string]struct{}{
	"title": {}, "excerpt": {}, "content": {}, "category": {},
	"image_url": {}, "read_time": {}, "published": {},
}

// ListBlogs handles GET /api/blogs
// @Summary List published blog posts
// @Tags Blogs
// @Produce json
// @Param category query string false "Exact category"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param search query string false "Free-text search; overrides all filters except limit"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /blogs [get]
func (h *BlogHandler) ListBlogs(c *fiber.Ctx) error {
	if term := c.Query("search"); term != "" {
		limit := 0
		if l := queryInt(c, "limit"); l != nil {
			limit = *l
		}
		posts, count, err := services.SearchBlogs(h.DB, term, limit)
		if err != nil {
			return respondServiceError(c, err)
		}
		return utils.ListResponse(c, posts, count)
	}

	filters := services.BlogFilters{
		Category: c.Query("category"),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	}
	posts, count, err := services.GetBlogs(h.DB, filters)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.ListResponse(c, posts, count)
}

// GetBlogBySlug handles GET /api/blogs/:slug
// @Summary Get a published blog post by slug
// @Tags Blogs
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /blogs/{slug} [get]
func (h *BlogHandler) GetBlogBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return utils.ErrorResponse(c, "invalid slug", fiber.StatusBadRequest)
	}

	post, err := services.GetBlogBySlug(h.DB, slug)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.DataResponse(c, fiber.StatusOK, post)
}

// ListUserBlogs handles GET /api/user/blogs
// @Summary List all blog posts for management, published or not
// @Tags Blogs
// @Produce json
// @Success 200 {object} utils.ListResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /user/blogs [get]
func (h *BlogHandler) ListUserBlogs(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	posts, count, err := services.GetAllBlogs(h.DB, sess)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.ListResponse(c, posts, count)
}

// CreateBlog handles POST /api/blogs
// @Summary Create a blog post
// @Description Create a post from JSON or multipart form data. The slug is derived from the title; a colliding slug rejects the post. A multipart 'image' part is uploaded first; a failed upload aborts creation.
// @Tags Blogs
// @Accept json
// @Produce json
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /blogs [post]
func (h *BlogHandler) CreateBlog(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	form, fileHeader, err := parseBlogPayload(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest)
	}

	if fields := validation.Check(form); fields != nil {
		return utils.FieldErrorResponse(c, "Validation failed", fiber.StatusBadRequest, fields)
	}

	imageURL := form.ImageURL
	if fileHeader != nil {
		url, err := uploadAttachment(c, h.Uploads, storage.BlogImagePrefix, fileHeader)
		if err != nil {
			return respondServiceError(c, err)
		}
		imageURL = url
	}

	// Absent published flag means live immediately.
	published := true
	if form.Published != nil {
		published = *form.Published
	}

	post := &models.BlogPost{
		Title:     form.Title,
		Excerpt:   form.Excerpt,
		Content:   form.Content,
		Category:  form.Category,
		ReadTime:  form.ReadTime,
		Published: published,
	}
	if imageURL != "" {
		post.ImageURL = &imageURL
	}

	created, err := services.CreateBlog(h.DB, sess, post)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, created)
}

// UpdateBlog handles PUT /api/blogs
// @Summary Update an owned blog post
// @Description The target id travels in the JSON payload rather than the path. It is accepted as a number or a numeric string.
// @Tags Blogs
// @Accept json
// @Produce json
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /blogs [put]
func (h *BlogHandler) UpdateBlog(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	var target struct {
		ID types.FlexUint64 `json:"id"`
	}
	if err := json.Unmarshal(c.Body(), &target); err != nil || uint64(target.ID) == 0 {
		return utils.ErrorResponse(c, "invalid or missing id", fiber.StatusBadRequest)
	}

	changes, err := parseChanges(c.Body(), blogUpdateFields)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest)
	}

	post, err := services.UpdateBlog(h.DB, sess, uint64(target.ID), changes)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.DataResponse(c, fiber.StatusOK, post)
}

// DeleteBlog handles DELETE /api/blogs/:id
// @Summary Delete an owned blog post
// @Tags Blogs
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /blogs/{id} [delete]
func (h *BlogHandler) DeleteBlog(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest)
	}

	if err := services.DeleteBlog(h.DB, sess, id); err != nil {
		return respondServiceError(c, err)
	}
	return utils.DeletedResponse(c, 1)
}

// parseBlogPayload reads a blog form from a JSON body or a multipart
// form with an optional image attach.
func parseBlogPayload(c *fiber.Ctx) (*validation.BlogForm, *multipart.FileHeader, error) {
	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		form := &validation.BlogForm{
			Title:    c.FormValue("title"),
			Excerpt:  c.FormValue("excerpt"),
			Content:  c.FormValue("content"),
			Category: c.FormValue("category"),
			ImageURL: c.FormValue("image_url"),
			ReadTime: formUint(c, "read_time"),
		}
		if raw := c.FormValue("published"); raw != "" {
			v := formBool(c, "published")
			form.Published = &v
		}
		fileHeader, err := c.FormFile("image")
		if err != nil {
			fileHeader = nil
		}
		return form, fileHeader, nil
	}

	form := &validation.BlogForm{}
	if err := c.BodyParser(form); err != nil {
		return nil, nil, err
	}
	return form, nil, nil
}
