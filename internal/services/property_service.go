// property_service.go
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
	"encoding/json"
	"strings"

	"github.com/terravista/estates/internal/models"
	"github.com/terravista/estates/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// DefaultPageSize applies when an offset is supplied without a limit, so
// the range window is always bounded.
const DefaultPageSize = 10

// DefaultSearchLimit caps free-text property searches.
const DefaultSearchLimit = 10

// PropertyFilters narrows the public property listing. All fields are
// optional; supplied fields combine conjunctively (AND).
type PropertyFilters struct {
	Location         string
	Type             string
	Status           string
	InvestmentPeriod string
	Valuation        string
	MinPrice         *uint // inclusive lower bound on price_per_sqft
	MaxPrice         *uint // inclusive upper bound on price_per_sqft
	Featured         *bool
	Limit            *int
	Offset           *int
}

// CreateProperty stamps ownership from the session and inserts one row.
// The returned row is whatever the store persisted, including
// server-assigned fields.
func CreateProperty(db *gorm.DB, sess *types.Session, property *models.Property) (*models.Property, error) {
	if sess == nil || sess.UserID == "" {
		return nil, types.NewAuthenticationError("no active session")
	}

	property.ID = 0
	property.AuthorID = sess.UserID

	if err := db.Create(property).Error; err != nil {
		return nil, types.NewPersistenceError(err.Error())
	}

	return property, nil
}

// GetProperties returns published properties, newest first, narrowed by
// the supplied filters. The returned count is the total number of
// matching rows before the limit/offset window. Newest-first ordering is
// a contract: offset windows are only stable under a fixed order.
func GetProperties(db *gorm.DB, f PropertyFilters) ([]models.Property, int64, error) {
	query := db.Model(&models.Property{}).
		Clauses(hints.Comment("select", "public-listing")).
		Where("published = ?", true)

	if f.Location != "" {
		query = query.Where("location = ?", f.Location)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.InvestmentPeriod != "" {
		query = query.Where("investment_period = ?", f.InvestmentPeriod)
	}
	if f.Valuation != "" {
		query = query.Where("valuation = ?", f.Valuation)
	}
	if f.MinPrice != nil {
		query = query.Where("price_per_sqft >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price_per_sqft <= ?", *f.MaxPrice)
	}
	if f.Featured != nil {
		query = query.Where("featured = ?", *f.Featured)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	query = query.Order("created_at DESC, id DESC")
	query = applyWindow(query, f.Limit, f.Offset)

	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	return properties, count, nil
}

// GetProperty returns a single published property by id.
func GetProperty(db *gorm.DB, id uint64) (*models.Property, error) {
	var property models.Property
	err := db.Where("id = ? AND published = ?", id, true).First(&property).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NewNotFoundOrForbidden("property")
		}
		return nil, types.NewPersistenceError(err.Error())
	}
	return &property, nil
}

// GetUserProperties is the owner's management view: every property the
// caller authored, published or not, newest first. Never exposed to
// anonymous callers.
func GetUserProperties(db *gorm.DB, sess *types.Session) ([]models.Property, int64, error) {
	if sess == nil || sess.UserID == "" {
		return nil, 0, types.NewAuthenticationError("no active session")
	}

	query := db.Model(&models.Property{}).Where("author_id = ?", sess.UserID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	var properties []models.Property
	if err := query.Order("created_at DESC, id DESC").Find(&properties).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	return properties, count, nil
}

// SearchProperties performs a case-insensitive substring match over name
// and description, restricted to published rows, newest first, capped at
// limit. A distinct code path from GetProperties: callers choose one or
// the other, never both combined.
func SearchProperties(db *gorm.DB, term string, limit int) ([]models.Property, int64, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	pattern := "%" + strings.ToLower(term) + "%"
	query := db.Model(&models.Property{}).
		Clauses(hints.Comment("select", "public-search")).
		Where("published = ?", true).
		Where("lower(name) LIKE ? OR lower(description) LIKE ?", pattern, pattern)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	var properties []models.Property
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&properties).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	return properties, count, nil
}

// UpdateProperty merges the supplied fields over the existing row. The
// update is filtered on author_id, so a row that exists but is owned by
// someone else reports zero rows affected and surfaces as
// not-found-or-forbidden, never as a silent success.
func UpdateProperty(db *gorm.DB, sess *types.Session, id uint64, changes map[string]interface{}) (*models.Property, error) {
	if sess == nil || sess.UserID == "" {
		return nil, types.NewAuthenticationError("no active session")
	}

	sanitizeChanges(changes)
	if len(changes) == 0 {
		return nil, types.NewPersistenceError("no mutable fields supplied")
	}

	result := db.Model(&models.Property{}).
		Where("id = ? AND author_id = ?", id, sess.UserID).
		Updates(changes)
	if result.Error != nil {
		return nil, types.NewPersistenceError(result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return nil, types.NewNotFoundOrForbidden("property")
	}

	var property models.Property
	if err := db.First(&property, id).Error; err != nil {
		return nil, types.NewPersistenceError(err.Error())
	}

	return &property, nil
}

// AddGalleryImage appends an uploaded image URL to an owned property's
// gallery. The gallery is stored as a JSON array of public URLs.
func AddGalleryImage(db *gorm.DB, sess *types.Session, id uint64, url string) (*models.Property, error) {
	if sess == nil || sess.UserID == "" {
		return nil, types.NewAuthenticationError("no active session")
	}

	var property models.Property
	err := db.Where("id = ? AND author_id = ?", id, sess.UserID).First(&property).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NewNotFoundOrForbidden("property")
		}
		return nil, types.NewPersistenceError(err.Error())
	}

	var gallery []string
	if len(property.Gallery.JSON) > 0 {
		if err := json.Unmarshal(property.Gallery.JSON, &gallery); err != nil {
			return nil, types.NewPersistenceError("gallery is not a JSON array: " + err.Error())
		}
	}
	gallery = append(gallery, url)

	raw, err := json.Marshal(gallery)
	if err != nil {
		return nil, types.NewPersistenceError(err.Error())
	}
	property.Gallery = models.JSON{JSON: datatypes.JSON(raw)}

	if err := db.Model(&property).Update("gallery", property.Gallery).Error; err != nil {
		return nil, types.NewPersistenceError(err.Error())
	}

	return &property, nil
}

// DeleteProperty hard-deletes an owned row. Irreversible; no trash state.
func DeleteProperty(db *gorm.DB, sess *types.Session, id uint64) error {
	if sess == nil || sess.UserID == "" {
		return types.NewAuthenticationError("no active session")
	}

	result := db.Where("id = ? AND author_id = ?", id, sess.UserID).
		Delete(&models.Property{})
	if result.Error != nil {
		return types.NewPersistenceError(result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundOrForbidden("property")
	}

	return nil
}

// applyWindow applies limit/offset pagination. An offset without a limit
// gets the default page size so the window stays bounded.
func applyWindow(query *gorm.DB, limit, offset *int) *gorm.DB {
	switch {
	case limit != nil:
		query = query.Limit(*limit)
	case offset != nil:
		query = query.Limit(DefaultPageSize)
	}
	if offset != nil {
		query = query.Offset(*offset)
	}
	return query
}

// sanitizeChanges strips server-owned fields from a partial update
// payload. AuthorID is set once at creation and never moves.
func sanitizeChanges(changes map[string]interface{}) {
	delete(changes, "id")
	delete(changes, "author_id")
	delete(changes, "created_at")
	delete(changes, "updated_at")
}
