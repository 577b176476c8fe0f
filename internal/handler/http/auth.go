package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/service"
	"github.com/sanoneto/registro-horas/internal/store"
	"github.com/sanoneto/registro-horas/internal/utils"
	"github.com/sanoneto/registro-horas/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		log.Err(err).Msg("invalid registration request")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			log.Err(err).Msg("username already exists")
		default:
			log.Err(err).Msg("error occurred during registration")
		}
		h.writeServiceError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.LoginResponse{Message: "registration successful", Token: token}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		log.Err(err).Msg("invalid login request")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn().Str("path", r.URL.Path).Msg("invalid credentials")
		} else {
			log.Err(err).Msg("error occurred during login")
		}
		h.writeServiceError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.LoginResponse{Message: "login successful", Token: token}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		h.writeServiceError(w, ErrNoIdentity)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), identity); err != nil {
		logger.FromRequest(r).Err(err).Msg("error occurred during logout")
		h.writeServiceError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}

func (h *Handler) logoutAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		h.writeServiceError(w, ErrNoIdentity)
		return
	}

	revoked, err := h.services.AuthService.LogoutAll(r.Context(), identity)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error occurred during logout of all sessions")
		h.writeServiceError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: fmt.Sprintf("revoked %d tokens", revoked)}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		h.writeServiceError(w, ErrNoIdentity)
		return
	}

	_, _ = utils.WriteJSON(w, models.IdentityResponse{
		PublicID:    identity.PublicID,
		Username:    identity.Username,
		Role:        identity.Role,
		Authorities: identity.Authorities,
	}, http.StatusOK)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	utils.WriteError(w, messageFromError(err, status), status)
}
