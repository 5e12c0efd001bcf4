package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	registeredUser, fek, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		writeError(w, r, err, "user registration failed")
		return
	}

	h.writeSession(w, r, registeredUser, fek, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	foundUser, fek, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		writeError(w, r, err, "user login failed")
		return
	}

	logger.FromRequest(r).Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")
	h.writeSession(w, r, foundUser, fek, http.StatusOK)
}

// changePassword rewraps the file key under the new password. Tokens issued
// before the change stop working, so a fresh session is returned.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	var request models.ChangePasswordRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	user, fek, err := h.services.AuthService.ChangePassword(ctx, userID, request)
	if err != nil {
		writeError(w, r, err, "password change failed")
		return
	}

	h.writeSession(w, r, user, fek, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	var request models.DeleteAccountRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	if err = h.services.AuthService.DeleteAccount(ctx, userID, request.Password); err != nil {
		writeError(w, r, err, "account deletion failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "getting profile failed")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateProfile changes login or display name. Passwords are refused here;
// they change through changePassword, which also rewraps the file key.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	var request models.ProfileRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	user, err := h.services.AuthService.UpdateProfile(r.Context(), userID, request)
	if err != nil {
		writeError(w, r, err, "profile update failed")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// verifySession confirms the bearer token still opens the account and hands
// out a fresh one. The file key is not part of the answer: the server can
// only recover it from the password.
func (h *Handler) verifySession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	user, err := h.services.AuthService.GetUser(ctx, userID)
	if err != nil {
		writeError(w, r, err, "session verification failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeError(w, r, err, "creation of token failed")
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.Session{Token: token.SignedString, User: &user}, http.StatusOK)
}

// writeSession issues a token for user and answers with the token and the
// base64 file key. The token is also set as a bearer Authorization header.
func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, user models.User, fek []byte, status int) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "creation of token failed")
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.Session{
		Token:   token.SignedString,
		FileKey: encodeFileKey(fek),
		User:    &user,
	}, status)
}
