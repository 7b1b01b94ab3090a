package services

import (
	"github.com/terravista/estates/internal/models"
	"github.com/terravista/estates/internal/types"
	"gorm.io/gorm"
)

// CreateLead inserts one lead row. Leads are anonymous writes: no
// session, no owner. The caller supplies the property-name snapshot.
func CreateLead(db *gorm.DB, lead *models.Lead) (*models.Lead, error) {
	lead.ID = 0
	if err := db.Create(lead).Error; err != nil {
		return nil, types.NewPersistenceError(err.Error())
	}
	return lead, nil
}

// GetLeads is admin-side reporting: every captured lead, newest first.
func GetLeads(db *gorm.DB, sess *types.Session) ([]models.Lead, int64, error) {
	if sess == nil || !sess.HasRole("admin") {
		return nil, 0, types.NewAuthenticationError("admin role required")
	}

	query := db.Model(&models.Lead{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	var leads []models.Lead
	if err := query.Order("created_at DESC, id DESC").Find(&leads).Error; err != nil {
		return nil, 0, types.NewPersistenceError(err.Error())
	}

	return leads, count, nil
}

// DeleteLeads removes processed leads by id. Admin only.
func DeleteLeads(db *gorm.DB, sess *types.Session, ids []uint64) (int64, error) {
	if sess == nil || !sess.HasRole("admin") {
		return 0, types.NewAuthenticationError("admin role required")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := db.Where("id IN ?", ids).Delete(&models.Lead{})
	if result.Error != nil {
		return 0, types.NewPersistenceError(result.Error.Error())
	}

	return result.RowsAffected, nil
}
