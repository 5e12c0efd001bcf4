package validators

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-file-keeper/models"
)

func TestValidate_ProfileRequest(t *testing.T) {
	v := NewFileKeeperValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		request models.ProfileRequest
		wantErr error
	}{
		{name: "login", request: models.ProfileRequest{Login: strPtr("bob")}},
		{name: "name may be cleared", request: models.ProfileRequest{Name: strPtr("")}},
		{name: "nothing", request: models.ProfileRequest{}, wantErr: ErrNoFieldsToUpdate},
		{name: "blank login", request: models.ProfileRequest{Login: strPtr("  ")}, wantErr: ErrEmptyLogin},
		{name: "long login", request: models.ProfileRequest{Login: strPtr(strings.Repeat("a", MaxLoginLength+1))}, wantErr: ErrLoginTooLong},
		{name: "long name", request: models.ProfileRequest{Name: strPtr(strings.Repeat("a", MaxNameLength+1))}, wantErr: ErrDisplayNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, &tt.request)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReminderRequest(t *testing.T) {
	v := NewFileKeeperValidator()
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	hourly := models.RecurrencePattern("hourly")

	tests := []struct {
		name    string
		request models.ReminderRequest
		fields  []string
		wantErr error
	}{
		{name: "create", request: models.ReminderRequest{Title: strPtr("call"), RemindAt: &at}},
		{name: "create without title", request: models.ReminderRequest{RemindAt: &at}, wantErr: ErrEmptyTitle},
		{name: "create with blank title", request: models.ReminderRequest{Title: strPtr(" "), RemindAt: &at}, wantErr: ErrEmptyTitle},
		{name: "create without time", request: models.ReminderRequest{Title: strPtr("call")}, wantErr: ErrEmptyRemindAt},
		{name: "create with unknown pattern", request: models.ReminderRequest{Title: strPtr("call"), RemindAt: &at, RecurrencePattern: &hourly}, wantErr: ErrInvalidRecurrence},
		{name: "update one field", request: models.ReminderRequest{Description: strPtr("")}, fields: []string{FieldUpdate}},
		{name: "update nothing", request: models.ReminderRequest{}, fields: []string{FieldUpdate}, wantErr: ErrNoFieldsToUpdate},
		{name: "update long title", request: models.ReminderRequest{Title: strPtr(strings.Repeat("t", MaxTitleLength+1))}, fields: []string{FieldUpdate}, wantErr: ErrTitleTooLong},
		{name: "unknown field", request: models.ReminderRequest{}, fields: []string{FieldTags}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.request, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Reminder(t *testing.T) {
	v := NewFileKeeperValidator()
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	before := at.Add(-time.Hour)
	after := at.AddDate(0, 3, 0)

	valid := models.Reminder{Title: "renew", RemindAt: at, RecurrencePattern: models.RecurrenceOnce}

	tests := []struct {
		name    string
		edit    func(r *models.Reminder)
		wantErr error
	}{
		{name: "one-off", edit: func(r *models.Reminder) {}},
		{name: "recurring with end", edit: func(r *models.Reminder) {
			r.IsRecurring, r.RecurrencePattern, r.RecurrenceEndDate = true, models.RecurrenceWeekly, &after
		}},
		{name: "blank title", edit: func(r *models.Reminder) { r.Title = "" }, wantErr: ErrEmptyTitle},
		{name: "long description", edit: func(r *models.Reminder) { r.Description = strings.Repeat("d", MaxDescriptionLength+1) }, wantErr: ErrDescriptionTooLong},
		{name: "zero time", edit: func(r *models.Reminder) { r.RemindAt = time.Time{} }, wantErr: ErrEmptyRemindAt},
		{name: "empty pattern", edit: func(r *models.Reminder) { r.RecurrencePattern = "" }, wantErr: ErrInvalidRecurrence},
		{name: "recurring once", edit: func(r *models.Reminder) { r.IsRecurring = true }, wantErr: ErrRecurrenceNeedsStep},
		{name: "end before start", edit: func(r *models.Reminder) {
			r.IsRecurring, r.RecurrencePattern, r.RecurrenceEndDate = true, models.RecurrenceDaily, &before
		}, wantErr: ErrRecurrenceEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminder := valid
			tt.edit(&reminder)

			err := v.Validate(ctx, &reminder)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.ErrorIs(t, v.Validate(ctx, valid, FieldName), ErrUnknownField)
}
