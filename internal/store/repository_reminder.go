package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/models"
)

type reminderRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewReminderRepository constructs a [ReminderRepository] backed by db.
func NewReminderRepository(db *DB, logger *logger.Logger) ReminderRepository {
	logger.Debug().Msg("creating reminder repository")
	return &reminderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *reminderRepository) CreateReminder(ctx context.Context, reminder models.Reminder) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertReminderQuery(r.db.builder, reminder)
	if err != nil {
		log.Err(err).Str("func", "*reminderRepository.CreateReminder").Msg("error building query")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanReminder(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*reminderRepository.CreateReminder").Int64("user_id", reminder.UserID).Msg("error inserting reminder")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *reminderRepository) GetReminder(ctx context.Context, userID, reminderID int64) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRemindersQuery(r.db.builder, userID, sq.Eq{"reminder_id": reminderID})
	if err != nil {
		log.Err(err).Str("func", "*reminderRepository.GetReminder").Msg("error building query")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var reminder models.Reminder
	err = r.db.queryRow(ctx, "*reminderRepository.GetReminder", query, args, func(row rowScanner) error {
		var scanErr error
		reminder, scanErr = scanReminder(row)
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reminder{}, ErrReminderNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*reminderRepository.GetReminder").Int64("reminder_id", reminderID).Msg("error selecting reminder")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return reminder, nil
}

func (r *reminderRepository) ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRemindersQuery(r.db.builder, userID, nil)
	if err != nil {
		log.Err(err).Str("func", "*reminderRepository.ListReminders").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	reminders, err := queryAll(ctx, r.db, "*reminderRepository.ListReminders", query, args, scanReminder)
	if err != nil {
		log.Err(err).Str("func", "*reminderRepository.ListReminders").Int64("user_id", userID).Msg("error selecting reminders")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return reminders, nil
}

// UpdateReminder overwrites every mutable column and returns the stored
// record. [ErrReminderNotFound] is returned when no row matched.
func (r *reminderRepository) UpdateReminder(ctx context.Context, reminder models.Reminder) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateReminderQuery(r.db.builder, reminder)
	if err != nil {
		log.Err(err).Str("func", "*reminderRepository.UpdateReminder").Msg("error building query")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Reminder
	err = r.db.queryRow(ctx, "*reminderRepository.UpdateReminder", query, args, func(row rowScanner) error {
		var scanErr error
		updated, scanErr = scanReminder(row)
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reminder{}, ErrReminderNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*reminderRepository.UpdateReminder").Int64("reminder_id", reminder.ReminderID).Msg("error updating reminder")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

func (r *reminderRepository) DeleteReminder(ctx context.Context, userID, reminderID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteReminderQuery(r.db.builder, userID, reminderID)
	if err != nil {
		log.Err(err).Str("func", "*reminderRepository.DeleteReminder").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.exec(ctx, "*reminderRepository.DeleteReminder", query, args)
	if err != nil {
		log.Err(err).Str("func", "*reminderRepository.DeleteReminder").Int64("reminder_id", reminderID).Msg("error deleting reminder")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrReminderNotFound
	}

	return nil
}
