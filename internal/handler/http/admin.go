package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/utils"
	"github.com/sanoneto/registro-horas/models"
)

func (h *Handler) revokeToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.RevokeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.AdminService.RevokeToken(r.Context(), req.Token); err != nil {
		log.Err(err).Msg("error revoking token")
		h.writeServiceError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: "token revoked"}, http.StatusOK)
}

func (h *Handler) deletePrincipal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	publicID, err := uuid.Parse(chi.URLParam(r, "publicID"))
	if err != nil {
		h.writeServiceError(w, ErrInvalidPublicID)
		return
	}

	if err = h.services.AdminService.DeletePrincipal(r.Context(), publicID); err != nil {
		log.Err(err).Str("public_id", publicID.String()).Msg("error deleting principal")
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
