package leadflow

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/terravista/estates/internal/models"
	"github.com/terravista/estates/internal/types"
	"github.com/terravista/estates/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupFlowDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Property{}, &models.Lead{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func targetProperty(t *testing.T, db *gorm.DB, name string) models.Property {
	t.Helper()
	p := models.Property{
		Name:      name,
		Location:  "Pune",
		Type:      "Apartment",
		Status:    "Ready to Move",
		Published: true,
		AuthorID:  "00000000-0000-0000-0000-000000000001",
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}
	return p
}

func TestSubmitHappyPath(t *testing.T) {
	db := setupFlowDB(t)
	property := targetProperty(t, db, "Lakeview Residences")

	var redirects []models.Lead
	flow := New(db, func(lead models.Lead) {
		redirects = append(redirects, lead)
	})

	lead, err := flow.Submit(validation.LeadForm{
		Name:  "Jane Doe",
		Phone: "(987) 654-3210",
		Email: "jane@example.com",
	}, property)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if flow.State() != StateSubmitted {
		t.Errorf("Expected Submitted state, got %v", flow.State())
	}
	if lead.PropertyID != property.ID {
		t.Errorf("Expected lead to reference property %d, got %d", property.ID, lead.PropertyID)
	}
	if lead.PropertyName != "Lakeview Residences" {
		t.Errorf("Expected property name snapshot, got %q", lead.PropertyName)
	}
	if len(redirects) != 1 {
		t.Fatalf("Redirect must fire exactly once, fired %d times", len(redirects))
	}
	if redirects[0].ID != lead.ID {
		t.Errorf("Redirect got lead %d, want %d", redirects[0].ID, lead.ID)
	}

	var count int64
	db.Model(&models.Lead{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one persisted lead, got %d", count)
	}
}

func TestSubmitInvalidInput(t *testing.T) {
	db := setupFlowDB(t)
	property := targetProperty(t, db, "Lakeview Residences")

	redirected := false
	flow := New(db, func(models.Lead) { redirected = true })

	_, err := flow.Submit(validation.LeadForm{
		Name:  "Jane Doe",
		Phone: "12345",
	}, property)
	ce, ok := err.(*types.CustomError)
	if !ok || ce.Kind != types.KindValidation {
		t.Fatalf("Expected validation error, got %v", err)
	}

	if flow.State() != StateIdle {
		t.Errorf("Invalid input must fall back to Idle, got %v", flow.State())
	}
	if flow.FieldErrors() == nil {
		t.Error("Expected field errors after invalid submit")
	}
	if redirected {
		t.Error("Redirect must not fire on validation failure")
	}

	var count int64
	db.Model(&models.Lead{}).Count(&count)
	if count != 0 {
		t.Errorf("Invalid input must not reach the store, got %d rows", count)
	}

	// The same flow is resubmittable with corrected input.
	if _, err := flow.Submit(validation.LeadForm{
		Name:  "Jane Doe",
		Phone: "9876543210",
	}, property); err != nil {
		t.Fatalf("Resubmit after correction failed: %v", err)
	}
	if flow.State() != StateSubmitted {
		t.Errorf("Expected Submitted after correction, got %v", flow.State())
	}
}

func TestSubmitNormalizesBeforeValidation(t *testing.T) {
	db := setupFlowDB(t)
	property := targetProperty(t, db, "Lakeview Residences")
	flow := New(db, nil)

	lead, err := flow.Submit(validation.LeadForm{
		Name:  "  Jane Doe  ",
		Phone: " 9876543210 ",
	}, property)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if lead.Name != "Jane Doe" || lead.Phone != "9876543210" {
		t.Errorf("Expected trimmed values persisted, got %q / %q", lead.Name, lead.Phone)
	}
}

func TestSubmitPersistenceFailureSetsNotice(t *testing.T) {
	db := setupFlowDB(t)
	property := targetProperty(t, db, "Lakeview Residences")

	// Drop the leads table to force the insert to fail.
	if err := db.Migrator().DropTable(&models.Lead{}); err != nil {
		t.Fatalf("Failed to drop table: %v", err)
	}

	redirected := false
	flow := New(db, func(models.Lead) { redirected = true })

	_, err := flow.Submit(validation.LeadForm{
		Name:  "Jane Doe",
		Phone: "9876543210",
	}, property)
	if err == nil {
		t.Fatal("Expected persistence failure")
	}

	if flow.State() != StateIdle {
		t.Errorf("Persistence failure must fall back to Idle, got %v", flow.State())
	}
	if flow.Notice() == "" {
		t.Error("Expected failure notice to be set")
	}
	if redirected {
		t.Error("Redirect must not fire on persistence failure")
	}
}
