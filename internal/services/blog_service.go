// blog_service.go
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

package services

import (
	"strings"

	"github.com/terravista/estates/internal/models"
	"github.com/terravista/estates/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// DefaultBlogSearchLimit caps free-text blog searches.
const DefaultBlogSearchLimit = 50

// BlogFilters narrows the public blog listing.
type BlogFilters struct {
	Category string
	Limit    *int
	Offset   *int
}

// CreateBlog derives the slug from the title, stamps ownership, and
// inserts one row. Posts go live immediately unless the payload says
// otherwise. A slug collision is a database uniqueness violation and
// surfaces as a persistence error telling the user to alter the title;
// no suffixing is attempted.
func CreateBlog(db *gorm.DB, sess *types.Session, post *models.BlogPost) (*models.BlogPost, error) {
	if sess == nil || sess.UserID == "" {
		return nil, types.NewAuthenticationError("no active session")
	}

	post.ID = 0
	post.AuthorID = sess.UserID
	post.Slug = Slugify(post.Title)
	if post.Slug == "" {
		return nil, types.NewPersistenceError("title produces an empty slug")
	}

	var existing int64
	if err := db.Model(&models.BlogPost{}).Where("slug = ?", post.Slug).Count(&existing).Error; err != nil {
		return nil, types.NewPersistenceError(err.Error())
	}
	if existing > 0 {
		return nil, types.NewPersistenceError("slug already exists")
	}

	if err := db.Create(post).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, types.NewPersistenceError("slug already exists")
		}
		return nil, types.NewPersistenceError(err.Error())
	}

	return post, nil
}

// GetBlogs returns published posts, newest first, narrowed by category
// and windowed by limit/offset. Count is the total before windowing.
func GetBlogs(db *gorm.DB, f BlogFilters) ([]models.BlogPost, int64, error) {
	query := db.Model(&models.BlogPost{}).
		Clauses(hints.Comment("select", "public-blog-listing")).
		Where("published = ?", true)

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	query = query.Order("created_at DESC, id DESC")
	query = applyWindow(query, f.Limit, f.Offset)

	var posts []models.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	return posts, count, nil
}

// GetAllBlogs is the management view: every post, published or not,
// newest first. Requires a session; never exposed to anonymous callers.
func GetAllBlogs(db *gorm.DB, sess *types.Session) ([]models.BlogPost, int64, error) {
	if sess == nil || sess.UserID == "" {
		return nil, 0, types.NewAuthenticationError("no active session")
	}

	query := db.Model(&models.BlogPost{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	var posts []models.BlogPost
	if err := query.Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	return posts, count, nil
}

// GetBlogBySlug is the public single-post lookup.
func GetBlogBySlug(db *gorm.DB, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := db.Where("slug = ? AND published = ?", slug, true).First(&post).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NewNotFoundOrForbidden("blog post")
		}
		return nil, types.NewPersistenceError(err.Error())
	}
	return &post, nil
}

// SearchBlogs performs a case-insensitive substring match over title and
// content, restricted to published rows, newest first, capped at limit.
func SearchBlogs(db *gorm.DB, term string, limit int) ([]models.BlogPost, int64, error) {
	if limit <= 0 {
		limit = DefaultBlogSearchLimit
	}

	pattern := "%" + strings.ToLower(term) + "%"
	query := db.Model(&models.BlogPost{}).
		Where("published = ?", true).
		Where("lower(title) LIKE ? OR lower(content) LIKE ?", pattern, pattern)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	var posts []models.BlogPost
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	return posts, count, nil
}

// UpdateBlog merges the supplied fields over an owned row. Ownership
// scoping is applied the same way as for properties. A changed title
// does not re-derive the slug; the slug is the public lookup key and
// stays stable once published.
func UpdateBlog(db *gorm.DB, sess *types.Session, id uint64, changes map[string]interface{}) (*models.BlogPost, error) {
	if sess == nil || sess.UserID == "" {
		return nil, types.NewAuthenticationError("no active session")
	}

	sanitizeChanges(changes)
	delete(changes, "slug")
	if len(changes) == 0 {
		return nil, types.NewPersistenceError("no mutable fields supplied")
	}

	result := db.Model(&models.BlogPost{}).
		Where("id = ? AND author_id = ?", id, sess.UserID).
		Updates(changes)
	if result.Error != nil {
		return nil, types.NewPersistenceError(result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return nil, types.NewNotFoundOrForbidden("blog post")
	}

	var post models.BlogPost
	if err := db.First(&post, id).Error; err != nil {
		return nil, types.NewPersistenceError(err.Error())
	}

	return &post, nil
}

// DeleteBlog hard-deletes an owned post.
func DeleteBlog(db *gorm.DB, sess *types.Session, id uint64) error {
	if sess == nil || sess.UserID == "" {
		return types.NewAuthenticationError("no active session")
	}

	result := db.Where("id = ? AND author_id = ?", id, sess.UserID).
		Delete(&models.BlogPost{})
	if result.Error != nil {
		return types.NewPersistenceError(result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundOrForbidden("blog post")
	}

	return nil
}

// isDuplicateKey matches uniqueness-violation messages across the
// supported drivers.
func isDuplicateKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
