// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/kingcooking/internal/flash"
	"codeberg.org/oliverandrich/kingcooking/internal/i18n"
	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"github.com/labstack/echo/v4"
)

// ScheduleHandlers contains handlers for the cooking schedule.
type ScheduleHandlers struct {
	base
	repo *repository.Repository
}

// NewSchedule creates a new ScheduleHandlers instance.
func NewSchedule(repo *repository.Repository, flashStore *flash.Store) *ScheduleHandlers {
	return &ScheduleHandlers{base: base{flash: flashStore}, repo: repo}
}

// List renders the schedule of the authenticated user.
func (h *ScheduleHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	entries, err := h.repo.ListScheduleEntries(ctx, user.ID)
	if err != nil {
		slog.Error("schedule_list_failed", "error", err, "user_id", user.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
	}

	return h.render(c, http.StatusOK, "schedule.html", "Schedule", map[string]any{
		"Entries": entries,
	})
}

// NewPage renders the new-entry form.
func (h *ScheduleHandlers) NewPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "newschedule.html", "New schedule entry", nil)
}

// Create adds a schedule entry for the authenticated user.
func (h *ScheduleHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)
	recipeName := strings.TrimSpace(c.FormValue("recipe_name"))
	scheduledOn := strings.TrimSpace(c.FormValue("scheduled_on"))
	timeOfDay := strings.TrimSpace(c.FormValue("time_of_day"))

	if recipeName == "" || scheduledOn == "" || timeOfDay == "" {
		h.flash.Error(c, i18n.T(ctx, "flash_missing_fields"))
		return c.Redirect(http.StatusSeeOther, "/dashboard/schedule/newschedule")
	}

	if _, err := h.repo.CreateScheduleEntry(ctx, user.ID, recipeName, scheduledOn, timeOfDay); err != nil {
		slog.Error("schedule_create_failed", "error", err, "user_id", user.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
		return c.Redirect(http.StatusSeeOther, "/dashboard/schedule/newschedule")
	}

	h.flash.Success(c, i18n.T(ctx, "flash_schedule_created"))
	return c.Redirect(http.StatusSeeOther, "/dashboard/schedule")
}

// Delete removes a schedule entry owned by the authenticated user.
func (h *ScheduleHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	id, err := idParam(c, "id")
	if err != nil {
		h.flash.Error(c, i18n.T(ctx, "flash_schedule_missing"))
		return c.Redirect(http.StatusSeeOther, "/dashboard/schedule")
	}

	switch err := h.repo.DeleteScheduleEntry(ctx, user.ID, id); {
	case errors.Is(err, repository.ErrNotFound):
		h.flash.Error(c, i18n.T(ctx, "flash_schedule_missing"))
	case err != nil:
		slog.Error("schedule_delete_failed", "error", err, "user_id", user.ID, "entry_id", id)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
	default:
		h.flash.Success(c, i18n.T(ctx, "flash_schedule_deleted"))
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard/schedule")
}
