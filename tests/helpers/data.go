// data.go
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

package helpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/terravista/estates/internal/models"
	"gorm.io/gorm"
)

// TestAuthorID is the owner stamped on seeded rows.
const TestAuthorID = "00000000-0000-0000-0000-000000000001"

// SeedProperty inserts a published property with the given name and
// returns it. Overrides mutate the row before insert.
func SeedProperty(t *testing.T, db *gorm.DB, name string, overrides ...func(*models.Property)) *models.Property {
	t.Helper()
	property := &models.Property{
		Name:         name,
		Description:  fmt.Sprintf("%s description", name),
		Location:     "Pune",
		Type:         "Apartment",
		Status:       "Ready to Move",
		PricePerSqft: 9000,
		Published:    true,
		AuthorID:     TestAuthorID,
	}
	for _, o := range overrides {
		o(property)
	}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("Failed to seed property %s: %v", name, err)
	}
	return property
}

// SeedBlogPost inserts a published post with a slug derived from the
// title the same way the service derives it.
func SeedBlogPost(t *testing.T, db *gorm.DB, title, slug string, overrides ...func(*models.BlogPost)) *models.BlogPost {
	t.Helper()
	post := &models.BlogPost{
		Title:     title,
		Slug:      slug,
		Excerpt:   fmt.Sprintf("%s excerpt", title),
		Content:   fmt.Sprintf("%s content body with enough length to satisfy the form schema.", title),
		Category:  "Market Trends",
		ReadTime:  5,
		Published: true,
		AuthorID:  TestAuthorID,
	}
	for _, o := range overrides {
		o(post)
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to seed blog post %s: %v", title, err)
	}
	return post
}

// SeedLead inserts a captured lead referencing the given property.
func SeedLead(t *testing.T, db *gorm.DB, property *models.Property, name string) *models.Lead {
	t.Helper()
	lead := &models.Lead{
		Name:         name,
		Phone:        "9876543210",
		PropertyID:   property.ID,
		PropertyName: property.Name,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(lead).Error; err != nil {
		t.Fatalf("Failed to seed lead %s: %v", name, err)
	}
	return lead
}
