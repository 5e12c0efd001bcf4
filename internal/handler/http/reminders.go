package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

func (h *Handler) createReminder(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	var request models.ReminderRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	reminder, err := h.services.ReminderService.CreateReminder(r.Context(), userID, request)
	if err != nil {
		writeError(w, r, err, "reminder creation failed")
		return
	}

	utils.WriteJSON(w, reminder, http.StatusCreated)
}

func (h *Handler) listReminders(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	reminders, err := h.services.ReminderService.ListReminders(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "listing reminders failed")
		return
	}

	utils.WriteJSON(w, reminders, http.StatusOK)
}

func (h *Handler) listUpcomingReminders(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	reminders, err := h.services.ReminderService.ListUpcoming(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "listing upcoming reminders failed")
		return
	}

	utils.WriteJSON(w, reminders, http.StatusOK)
}

func (h *Handler) listPastReminders(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	reminders, err := h.services.ReminderService.ListPast(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "listing past reminders failed")
		return
	}

	utils.WriteJSON(w, reminders, http.StatusOK)
}

func (h *Handler) getReminder(w http.ResponseWriter, r *http.Request) {
	userID, reminderID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad reminder request")
		return
	}

	reminder, err := h.services.ReminderService.GetReminder(r.Context(), userID, reminderID)
	if err != nil {
		writeError(w, r, err, "getting reminder failed")
		return
	}

	utils.WriteJSON(w, reminder, http.StatusOK)
}

func (h *Handler) updateReminder(w http.ResponseWriter, r *http.Request) {
	userID, reminderID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad reminder request")
		return
	}

	var request models.ReminderRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	reminder, err := h.services.ReminderService.UpdateReminder(r.Context(), userID, reminderID, request)
	if err != nil {
		writeError(w, r, err, "reminder update failed")
		return
	}

	utils.WriteJSON(w, reminder, http.StatusOK)
}

func (h *Handler) toggleReminder(w http.ResponseWriter, r *http.Request) {
	userID, reminderID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad reminder request")
		return
	}

	reminder, err := h.services.ReminderService.ToggleReminder(r.Context(), userID, reminderID)
	if err != nil {
		writeError(w, r, err, "reminder toggle failed")
		return
	}

	utils.WriteJSON(w, reminder, http.StatusOK)
}

func (h *Handler) deleteReminder(w http.ResponseWriter, r *http.Request) {
	userID, reminderID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad reminder request")
		return
	}

	if err = h.services.ReminderService.DeleteReminder(r.Context(), userID, reminderID); err != nil {
		writeError(w, r, err, "reminder deletion failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
