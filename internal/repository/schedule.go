// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"database/sql"

	"codeberg.org/oliverandrich/kingcooking/internal/models"
)

// CreateScheduleEntry creates a schedule entry stamped with its owner.
func (r *Repository) CreateScheduleEntry(ctx context.Context, userID int64, recipeName, scheduledOn, timeOfDay string) (*models.ScheduleEntry, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO schedule_entries (user_id, recipe_name, scheduled_on, time_of_day) VALUES (?, ?, ?, ?)`,
		userID, recipeName, scheduledOn, timeOfDay)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var entry models.ScheduleEntry
	if err := r.db.GetContext(ctx, &entry,
		`SELECT * FROM schedule_entries WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return nil, wrapError(err)
	}
	return &entry, nil
}

// ListScheduleEntries returns all schedule entries owned by the user.
func (r *Repository) ListScheduleEntries(ctx context.Context, userID int64) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM schedule_entries WHERE user_id = ? ORDER BY scheduled_on, time_of_day, id`, userID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateScheduleEntry overwrites the entry's fields if it belongs to the user.
func (r *Repository) UpdateScheduleEntry(ctx context.Context, userID, id int64, recipeName, scheduledOn, timeOfDay string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE schedule_entries SET recipe_name = ?, scheduled_on = ?, time_of_day = ? WHERE id = ? AND user_id = ?`,
		recipeName, scheduledOn, timeOfDay, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteScheduleEntry deletes the entry if it belongs to the user.
func (r *Repository) DeleteScheduleEntry(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM schedule_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// requireAffected maps "no row matched" to ErrNotFound. A mutation that
// misses because the row belongs to someone else looks identical to one
// that misses because the row does not exist.
func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
