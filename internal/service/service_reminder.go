package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/validators"
	"github.com/MKhiriev/go-file-keeper/models"
)

type reminderService struct {
	reminderRepository store.ReminderRepository
	fileRepository     store.FileRepository

	validator validators.Validator

	// now is replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewReminderService constructs a ReminderService over the reminder and
// file records of storages.
func NewReminderService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) ReminderService {
	return &reminderService{
		reminderRepository: storages.ReminderRepository,
		fileRepository:     storages.FileRepository,
		validator:          validator,
		now:                time.Now,
		logger:             logger,
	}
}

// CreateReminder stores an active reminder. A one-off reminder always has
// the once pattern and no end date; a linked file must be one of the
// user's live files.
func (s *reminderService) CreateReminder(ctx context.Context, userID int64, request models.ReminderRequest) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request, validators.FieldCreate); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("invalid reminder data provided")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	reminder := applyReminderRequest(models.Reminder{UserID: userID, IsActive: true}, request)
	if err := s.checkReminder(ctx, reminder); err != nil {
		return models.Reminder{}, err
	}

	created, err := s.reminderRepository.CreateReminder(ctx, reminder)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("reminder creation ended with error")
		return models.Reminder{}, fmt.Errorf("reminder creation ended with error: %w", err)
	}

	return created, nil
}

func (s *reminderService) GetReminder(ctx context.Context, userID, reminderID int64) (models.Reminder, error) {
	reminder, err := s.reminderRepository.GetReminder(ctx, userID, reminderID)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("error getting reminder: %w", err)
	}
	return reminder, nil
}

func (s *reminderService) ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error) {
	reminders, err := s.reminderRepository.ListReminders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing reminders: %w", err)
	}
	return reminders, nil
}

func (s *reminderService) ListUpcoming(ctx context.Context, userID int64) ([]models.Reminder, error) {
	reminders, err := s.ListReminders(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	type upcoming struct {
		reminder models.Reminder
		next     time.Time
	}
	var found []upcoming
	for _, r := range reminders {
		if !r.IsActive {
			continue
		}
		if next, ok := r.NextOccurrence(now); ok {
			found = append(found, upcoming{reminder: r, next: next})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].next.Before(found[j].next)
	})

	out := make([]models.Reminder, 0, len(found))
	for _, u := range found {
		out = append(out, u.reminder)
	}
	return out, nil
}

func (s *reminderService) ListPast(ctx context.Context, userID int64) ([]models.Reminder, error) {
	reminders, err := s.ListReminders(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]models.Reminder, 0)
	for _, r := range reminders {
		if _, ok := r.NextOccurrence(now); !ok {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RemindAt.After(out[j].RemindAt)
	})
	return out, nil
}

// UpdateReminder merges the non-nil fields of request into the stored
// reminder. A FileID of 0 removes the file link.
func (s *reminderService) UpdateReminder(ctx context.Context, userID, reminderID int64, request models.ReminderRequest) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request, validators.FieldUpdate); err != nil {
		log.Err(err).Int64("user_id", userID).Int64("reminder_id", reminderID).Msg("invalid reminder data provided")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	reminder, err := s.reminderRepository.GetReminder(ctx, userID, reminderID)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("error getting reminder: %w", err)
	}

	reminder = applyReminderRequest(reminder, request)
	if err = s.checkReminder(ctx, reminder); err != nil {
		return models.Reminder{}, err
	}

	updated, err := s.reminderRepository.UpdateReminder(ctx, reminder)
	if err != nil {
		log.Err(err).Int64("reminder_id", reminderID).Msg("reminder update ended with error")
		return models.Reminder{}, fmt.Errorf("reminder update ended with error: %w", err)
	}

	return updated, nil
}

// ToggleReminder flips IsActive.
func (s *reminderService) ToggleReminder(ctx context.Context, userID, reminderID int64) (models.Reminder, error) {
	reminder, err := s.reminderRepository.GetReminder(ctx, userID, reminderID)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("error getting reminder: %w", err)
	}

	reminder.IsActive = !reminder.IsActive
	updated, err := s.reminderRepository.UpdateReminder(ctx, reminder)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("reminder_id", reminderID).Msg("reminder toggle ended with error")
		return models.Reminder{}, fmt.Errorf("reminder toggle ended with error: %w", err)
	}

	return updated, nil
}

func (s *reminderService) DeleteReminder(ctx context.Context, userID, reminderID int64) error {
	if err := s.reminderRepository.DeleteReminder(ctx, userID, reminderID); err != nil {
		return fmt.Errorf("error deleting reminder: %w", err)
	}
	return nil
}

// checkReminder validates the merged reminder and its file link.
func (s *reminderService) checkReminder(ctx context.Context, reminder models.Reminder) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, reminder); err != nil {
		log.Err(err).Int64("user_id", reminder.UserID).Msg("invalid reminder")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if reminder.FileID == nil {
		return nil
	}
	file, err := s.fileRepository.GetFile(ctx, reminder.UserID, *reminder.FileID)
	if errors.Is(err, store.ErrFileNotFound) || (err == nil && file.IsDeleted) {
		log.Warn().Int64("user_id", reminder.UserID).Int64("file_id", *reminder.FileID).Msg("reminder links a missing file")
		return ErrLinkedFileNotFound
	}
	if err != nil {
		return fmt.Errorf("error getting linked file: %w", err)
	}
	return nil
}

// applyReminderRequest copies the non-nil fields of request onto reminder
// and normalizes the recurrence fields.
func applyReminderRequest(reminder models.Reminder, request models.ReminderRequest) models.Reminder {
	if request.Title != nil {
		reminder.Title = strings.TrimSpace(*request.Title)
	}
	if request.Description != nil {
		reminder.Description = *request.Description
	}
	if request.RemindAt != nil {
		reminder.RemindAt = request.RemindAt.UTC()
	}
	if request.IsRecurring != nil {
		reminder.IsRecurring = *request.IsRecurring
	}
	if request.RecurrencePattern != nil {
		reminder.RecurrencePattern = *request.RecurrencePattern
	}
	if request.RecurrenceEndDate != nil {
		end := request.RecurrenceEndDate.UTC()
		reminder.RecurrenceEndDate = &end
	}
	if request.FileID != nil {
		if *request.FileID == 0 {
			reminder.FileID = nil
		} else {
			fileID := *request.FileID
			reminder.FileID = &fileID
		}
	}

	if reminder.RecurrencePattern == "" {
		reminder.RecurrencePattern = models.RecurrenceOnce
	}
	if !reminder.IsRecurring {
		reminder.RecurrencePattern = models.RecurrenceOnce
		reminder.RecurrenceEndDate = nil
	}
	return reminder
}
