// handlers_test.go
//
// Server-side data and lead-capture service for the Terravista estates site
// Copyright (c) 2026 Terravista Realty Advisors
//
// This file is part of estates.
// estates is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// estates is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with estates.
// If not, see <https://www.gnu.org/licenses/>.

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/terravista/estates/internal/handlers"
	"github.com/terravista/estates/internal/models"
	"github.com/terravista/estates/internal/storage"
	"github.com/terravista/estates/internal/types"
	"github.com/terravista/estates/tests/helpers"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Property{},
		&models.BlogPost{},
		&models.Lead{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// fakeSession injects an authenticated session the way the auth
// middleware would, without a live Authorizer.
func fakeSession(userID string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("session", &types.Session{UserID: userID, Roles: roles})
		return c.Next()
	}
}

// setupApp wires the full route table over the given DB and uploader,
// with the fake session in place of the Authorizer middleware.
func setupApp(db *gorm.DB, uploads *storage.Uploader) *fiber.App {
	app := fiber.New()

	propertyHandler := &handlers.PropertyHandler{DB: db, Uploads: uploads}
	blogHandler := &handlers.BlogHandler{DB: db, Uploads: uploads}

	auth := fakeSession(testUserID, "user")

	app.Get("/api/properties", propertyHandler.ListProperties)
	app.Get("/api/properties/:id", propertyHandler.GetProperty)
	app.Get("/api/user/properties", auth, propertyHandler.ListUserProperties)
	app.Post("/api/properties", auth, propertyHandler.CreateProperty)
	app.Put("/api/properties/:id", auth, propertyHandler.UpdateProperty)
	app.Delete("/api/properties/:id", auth, propertyHandler.DeleteProperty)

	app.Get("/api/blogs", blogHandler.ListBlogs)
	app.Get("/api/blogs/:slug", blogHandler.GetBlogBySlug)
	app.Get("/api/user/blogs", auth, blogHandler.ListUserBlogs)
	app.Post("/api/blogs", auth, blogHandler.CreateBlog)
	app.Put("/api/blogs", auth, blogHandler.UpdateBlog)
	app.Delete("/api/blogs/:id", auth, blogHandler.DeleteBlog)

	return app
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestListPropertiesEnvelope tests the GET /api/properties envelope
func TestListPropertiesEnvelope(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	helpers.SeedProperty(t, db, "Visible")
	helpers.SeedProperty(t, db, "Draft", func(p *models.Property) { p.Published = false })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/properties", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	env := helpers.AssertSuccessList(t, resp, 1)
	var properties []models.Property
	if err := json.Unmarshal(env.Data, &properties); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if len(properties) != 1 || properties[0].Name != "Visible" {
		t.Errorf("Expected only the published row, got %v", properties)
	}
}

// TestListPropertiesFilters tests conjunctive query filters
func TestListPropertiesFilters(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	helpers.SeedProperty(t, db, "Match", func(p *models.Property) {
		p.Location = "Baner"
		p.Featured = true
	})
	helpers.SeedProperty(t, db, "Wrong Location", func(p *models.Property) {
		p.Location = "Wakad"
		p.Featured = true
	})
	helpers.SeedProperty(t, db, "Not Featured", func(p *models.Property) {
		p.Location = "Baner"
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/properties?location=Baner&featured=true", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertSuccessList(t, resp, 1)
}

// TestListPropertiesSearchOverride tests that search ignores other filters
func TestListPropertiesSearchOverride(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	helpers.SeedProperty(t, db, "Skyline Towers", func(p *models.Property) { p.Location = "Wakad" })
	helpers.SeedProperty(t, db, "Other Place", func(p *models.Property) { p.Location = "Baner" })

	// The location filter would exclude the match; search must win.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/properties?search=skyline&location=Baner", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env := helpers.AssertSuccessList(t, resp, 1)

	var properties []models.Property
	if err := json.Unmarshal(env.Data, &properties); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if len(properties) != 1 || properties[0].Name != "Skyline Towers" {
		t.Errorf("Search must override filters, got %v", properties)
	}
}

// TestGetPropertyNotFound tests the failure envelope for a missing id
func TestGetPropertyNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/properties/9999", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertFailure(t, resp, 404)
}

// TestCreatePropertyJSON tests JSON property creation
func TestCreatePropertyJSON(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	resp, err := app.Test(jsonRequest("POST", "/api/properties", map[string]interface{}{
		"name":     "Skyline Towers",
		"location": "Pune",
		"type":     "Apartment",
		"status":   "Under Construction",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	var check models.Property
	if err := db.First(&check).Error; err != nil {
		t.Fatalf("Expected persisted row: %v", err)
	}
	if check.AuthorID != testUserID {
		t.Errorf("Expected session author stamp, got %s", check.AuthorID)
	}
}

// TestCreatePropertyValidation tests the per-field failure envelope
func TestCreatePropertyValidation(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	resp, err := app.Test(jsonRequest("POST", "/api/properties", map[string]interface{}{
		"name": "Missing Everything Else",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env := helpers.AssertFailure(t, resp, 400)
	if _, ok := env.Fields["location"]; !ok {
		t.Errorf("Expected per-field error for location, got %v", env.Fields)
	}
}

// TestCreatePropertyUploadFailureAborts tests that a failed image upload
// prevents the property insert entirely
func TestCreatePropertyUploadFailureAborts(t *testing.T) {
	db := setupTestDB(t)

	// Storage rejects everything.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	uploads := &storage.Uploader{
		BaseURL: server.URL,
		Bucket:  "media",
		APIKey:  "k",
		Client:  server.Client(),
	}
	app := setupApp(db, uploads)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("name", "Skyline Towers")
	_ = writer.WriteField("location", "Pune")
	_ = writer.WriteField("type", "Apartment")
	_ = writer.WriteField("status", "Under Construction")
	part, _ := writer.CreateFormFile("image", "front.jpg")
	_, _ = part.Write([]byte("image-bytes"))
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/api/properties", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertFailure(t, resp, 502)

	var count int64
	db.Model(&models.Property{}).Count(&count)
	if count != 0 {
		t.Errorf("Failed upload must abort creation, found %d rows", count)
	}
}

// TestCreatePropertyMultipartWithImage tests the happy multipart path
func TestCreatePropertyMultipartWithImage(t *testing.T) {
	db := setupTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	uploads := &storage.Uploader{
		BaseURL: server.URL,
		Bucket:  "media",
		APIKey:  "k",
		Client:  server.Client(),
	}
	app := setupApp(db, uploads)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("name", "Skyline Towers")
	_ = writer.WriteField("location", "Pune")
	_ = writer.WriteField("type", "Apartment")
	_ = writer.WriteField("status", "Under Construction")
	_ = writer.WriteField("price_per_sqft", "9500")
	_ = writer.WriteField("published", "true")
	part, _ := writer.CreateFormFile("image", "front.jpg")
	_, _ = part.Write([]byte("image-bytes"))
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/api/properties", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	var check models.Property
	if err := db.First(&check).Error; err != nil {
		t.Fatalf("Expected persisted row: %v", err)
	}
	if check.ImageURL == nil || *check.ImageURL == "" {
		t.Error("Expected uploaded image URL on the created row")
	}
	if check.PricePerSqft != 9500 {
		t.Errorf("Expected parsed numeric form field, got %d", check.PricePerSqft)
	}
	if !check.Published {
		t.Error("Expected parsed boolean form field")
	}
}

// TestUpdatePropertyWhitelist tests that server fields are not writable
func TestUpdatePropertyWhitelist(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	p := helpers.SeedProperty(t, db, "Owned", func(p *models.Property) {
		p.AuthorID = testUserID
	})

	resp, err := app.Test(jsonRequest("PUT", fmt.Sprintf("/api/properties/%d", p.ID), map[string]interface{}{
		"name":      "Renamed",
		"author_id": "55555555-5555-5555-5555-555555555555",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var check models.Property
	db.First(&check, p.ID)
	if check.Name != "Renamed" || check.AuthorID != testUserID {
		t.Errorf("Whitelist violated: name=%s author=%s", check.Name, check.AuthorID)
	}
}

// TestUpdatePropertyNotOwned tests the not-found-or-forbidden outcome
func TestUpdatePropertyNotOwned(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	p := helpers.SeedProperty(t, db, "Not Mine") // seeded with helpers.TestAuthorID

	resp, err := app.Test(jsonRequest("PUT", fmt.Sprintf("/api/properties/%d", p.ID), map[string]interface{}{
		"name": "Hijacked",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertFailure(t, resp, 404)
}

// TestDeleteProperty tests owner delete over HTTP
func TestDeleteProperty(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	p := helpers.SeedProperty(t, db, "Owned", func(p *models.Property) {
		p.AuthorID = testUserID
	})

	resp, err := app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/api/properties/%d", p.ID), nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var count int64
	db.Model(&models.Property{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected row deleted, %d remain", count)
	}
}

// TestBlogLifecycle tests create, public lookup by slug, payload-id
// update, and delete
func TestBlogLifecycle(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	// Create
	resp, err := app.Test(jsonRequest("POST", "/api/blogs", map[string]interface{}{
		"title":     "Pune Market Outlook",
		"excerpt":   "Where the market is heading",
		"content":   "A long enough body of content to satisfy the minimum length rule.",
		"category":  "Market Trends",
		"read_time": 6,
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	var created struct {
		Data models.BlogPost `json:"data"`
	}
	helpers.ParseJSON(t, resp, &created)
	if created.Data.Slug != "pune-market-outlook" {
		t.Fatalf("Expected derived slug, got %q", created.Data.Slug)
	}
	if !created.Data.Published {
		t.Error("Absent published flag must default to live")
	}

	// Public lookup by slug
	resp, err = app.Test(httptest.NewRequest("GET", "/api/blogs/pune-market-outlook", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	// Update with the id in the payload, as a string
	resp, err = app.Test(jsonRequest("PUT", "/api/blogs", map[string]interface{}{
		"id":    fmt.Sprintf("%d", created.Data.ID),
		"title": "Pune Market Outlook, Revised",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var check models.BlogPost
	db.First(&check, created.Data.ID)
	if check.Title != "Pune Market Outlook, Revised" {
		t.Errorf("Expected updated title, got %q", check.Title)
	}
	if check.Slug != "pune-market-outlook" {
		t.Errorf("Slug must survive the title edit, got %q", check.Slug)
	}

	// Delete
	resp, err = app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/api/blogs/%d", created.Data.ID), nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
}

// TestBlogSlugCollisionRejected tests the no-suffixing rule over HTTP
func TestBlogSlugCollisionRejected(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	helpers.SeedBlogPost(t, db, "Duplicate Title", "duplicate-title")

	resp, err := app.Test(jsonRequest("POST", "/api/blogs", map[string]interface{}{
		"title":     "Duplicate Title",
		"excerpt":   "e",
		"content":   "A long enough body of content to satisfy the minimum length rule.",
		"category":  "Guides",
		"read_time": 3,
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env := helpers.AssertFailure(t, resp, 500)
	if env.Error != "slug already exists" {
		t.Errorf("Expected collision message, got %q", env.Error)
	}
}

// TestUserBlogsIncludeDrafts tests the management listing
func TestUserBlogsIncludeDrafts(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, nil)

	helpers.SeedBlogPost(t, db, "Live", "live")
	helpers.SeedBlogPost(t, db, "Draft", "draft", func(p *models.BlogPost) { p.Published = false })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/user/blogs", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertSuccessList(t, resp, 2)

	// The public listing still hides the draft.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/blogs", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertSuccessList(t, resp, 1)
}
