// Package leadflow drives the lead-capture submission sequence:
// Idle -> Validating -> Submitting -> Submitted, with invalid input or a
// persistence failure falling back to Idle. One flow instance serves one
// form instance; a submitting guard blocks re-entry while a submission
// is in flight.
package leadflow

import (
	"fmt"

	"github.com/terravista/estates/internal/models"
	"github.com/terravista/estates/internal/services"
	"github.com/terravista/estates/internal/types"
	"github.com/terravista/estates/internal/validation"
	"gorm.io/gorm"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSubmitted
)

// Flow is the per-form submission state machine. On success the redirect
// callback fires exactly once with the created lead.
type Flow struct {
	db          *gorm.DB
	state       State
	fieldErrors map[string]string
	notice      string
	redirect    func(models.Lead)
	redirected  bool
}

// New builds a flow for one form instance. redirect may be nil.
func New(db *gorm.DB, redirect func(models.Lead)) *Flow {
	return &Flow{db: db, redirect: redirect}
}

// State returns the current flow state.
func (f *Flow) State() State {
	return f.state
}

// FieldErrors returns per-field messages from the last failed
// validation, nil otherwise.
func (f *Flow) FieldErrors() map[string]string {
	return f.fieldErrors
}

// Notice returns the dismissable failure notice from the last failed
// submission, empty otherwise.
func (f *Flow) Notice() string {
	return f.notice
}

// Submit validates the form and persists one lead referencing the target
// property's id and a snapshot of its current display name. Invalid
// input returns the field errors and leaves the form resubmittable; a
// persistence failure sets the notice and leaves the form resubmittable.
// No automatic retry.
func (f *Flow) Submit(form validation.LeadForm, property models.Property) (*models.Lead, error) {
	if f.state == StateSubmitting {
		return nil, fmt.Errorf("submission already in flight")
	}

	f.state = StateValidating
	f.fieldErrors = nil
	f.notice = ""

	form.Normalize()
	form.PropertyID = property.ID
	if errs := validation.Check(&form); errs != nil {
		f.fieldErrors = errs
		f.state = StateIdle
		return nil, types.NewValidationError(errs)
	}

	f.state = StateSubmitting
	lead := models.Lead{
		Name:         form.Name,
		Phone:        form.Phone,
		Email:        form.Email,
		PropertyID:   property.ID,
		PropertyName: property.Name,
	}

	created, err := services.CreateLead(f.db, &lead)
	if err != nil {
		f.notice = err.Error()
		f.state = StateIdle
		return nil, err
	}

	f.state = StateSubmitted
	if f.redirect != nil && !f.redirected {
		f.redirected = true
		f.redirect(*created)
	}

	return created, nil
}
