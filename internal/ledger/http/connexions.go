package http

import (
	"encoding/json"
	"net/http"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/service"
	"github.com/recouvro/recouvro/pkg/httpx"
	"github.com/recouvro/recouvro/pkg/ledgersdk"
)

type ConnexionsHandler struct {
	ConnexionService *service.ConnexionService
	QueryService     *service.QueryService
}

// HandleList handles the connexion trail listing endpoint
//
//	@Summary		List connexion events
//	@Description	Returns one page of the login/logout trail, newest first.
//	@Tags			Connexions
//	@Produce		json
//	@Param			page		query		int		false	"Page number (1-based)"
//	@Param			per_page	query		int		false	"Page size (5, 10, 20 or 50)"
//	@Param			search_user	query		string	false	"Substring of the username"
//	@Param			action		query		string	false	"login, logout or tous"
//	@Param			date_debut	query		string	false	"Inclusive start date (YYYY-MM-DD)"
//	@Param			date_fin	query		string	false	"Inclusive end date (YYYY-MM-DD)"
//	@Success		200	{object}	ledgersdk.ListConnexionsResponse	"One page of connexion events"
//	@Failure		400	{object}	ledgersdk.ErrorResponse				"Invalid filter values"
//	@Failure		500	{object}	ledgersdk.ErrorResponse				"Internal server error"
//	@Router			/api/connexions [get].
func (h *ConnexionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	page, err := h.QueryService.ListConnexions(ctx, service.ConnexionQuery{
		Page:       queryInt(r, "page"),
		PerPage:    queryInt(r, "per_page"),
		SearchUser: q.Get("search_user"),
		Action:     q.Get("action"),
		DateDebut:  q.Get("date_debut"),
		DateFin:    q.Get("date_fin"),
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	resp := ledgersdk.ListConnexionsResponse{
		Connexions: make([]ledgersdk.ConnexionInfo, 0, len(page.Events)),
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}
	for _, e := range page.Events {
		resp.Connexions = append(resp.Connexions, connexionInfo(e))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRecord handles the connexion recording endpoint
//
//	@Summary		Record a connexion event
//	@Description	Appends a login or logout event for a known user. Called by the authentication
//	@Description	frontend; the username is snapshotted so the trail survives account changes.
//	@Tags			Connexions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ledgersdk.ConnexionRequest	true	"Username and action"
//	@Success		201	{object}	ledgersdk.ConnexionInfo	"Recorded event"
//	@Failure		400	{object}	ledgersdk.ErrorResponse	"Unknown action"
//	@Failure		404	{object}	ledgersdk.ErrorResponse	"Unknown user"
//	@Failure		500	{object}	ledgersdk.ErrorResponse	"Internal server error"
//	@Router			/api/connexions [post].
func (h *ConnexionsHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ledgersdk.ConnexionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ledgersdk.ErrorCodeBadRequest, "Corps JSON invalide")
		return
	}

	event, err := h.ConnexionService.RecordConnexion(ctx, req.Username, domain.ConnexionAction(req.Action))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, connexionInfo(event))
}
