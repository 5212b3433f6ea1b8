// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// ScheduleEntry plans a recipe for a given day and time.
type ScheduleEntry struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	RecipeName  string    `db:"recipe_name" json:"recipe_name"`
	ScheduledOn string    `db:"scheduled_on" json:"scheduled_on"`
	TimeOfDay   string    `db:"time_of_day" json:"time_of_day"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
