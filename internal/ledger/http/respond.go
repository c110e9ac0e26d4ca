package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/service"
	"github.com/recouvro/recouvro/pkg/httpx"
	"github.com/recouvro/recouvro/pkg/ledgersdk"
	"github.com/recouvro/recouvro/pkg/slogx"
)

// actorFrom extracts the audited actor identity. The authentication
// frontend forwards it in the X-Actor header; without one the audit
// log attributes the action to the system.
func actorFrom(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(ledgersdk.ActorHeader))
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	httpx.WriteJSON(w, status, ledgersdk.ErrorResponse{Code: code, Message: message})
}

// writeServiceError translates service errors into the API envelope.
// Unexpected errors are logged and masked as a generic 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteJSON(w, http.StatusBadRequest, ledgersdk.ErrorResponse{
			Code:    ledgersdk.ErrorCodeValidation,
			Message: "Certains champs sont invalides",
			Details: verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrClientNotFound):
		writeError(w, http.StatusNotFound, ledgersdk.ErrorCodeNotFound, "Client introuvable")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, ledgersdk.ErrorCodeNotFound, "Utilisateur introuvable")
	case errors.Is(err, service.ErrEmailAlreadyUsed):
		writeError(w, http.StatusConflict, ledgersdk.ErrorCodeConflict, "Cette adresse email est déjà utilisée")
	case errors.Is(err, service.ErrUsernameAlreadyTaken):
		writeError(w, http.StatusConflict, ledgersdk.ErrorCodeConflict, "Ce nom d'utilisateur est déjà pris")
	case errors.Is(err, service.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, ledgersdk.ErrorCodeBadRequest, "Action inconnue")
	case errors.Is(err, service.ErrBadCSVHeader):
		writeError(w, http.StatusBadRequest, ledgersdk.ErrorCodeBadRequest, err.Error())
	case errors.Is(err, service.ErrDispatchFailed):
		writeError(w, http.StatusBadGateway, ledgersdk.ErrorCodeDispatch, "La relance est enregistrée mais l'envoi a échoué")
	default:
		slogx.FromContext(ctx).Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, ledgersdk.ErrorCodeServerError, "Une erreur interne est survenue")
	}
}
