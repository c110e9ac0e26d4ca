package http

import (
	"encoding/json"
	"net/http"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/service"
	"github.com/recouvro/recouvro/pkg/httpx"
	"github.com/recouvro/recouvro/pkg/ledgersdk"
	"github.com/recouvro/recouvro/pkg/slogx"
)

type ClientsHandler struct {
	ClientService *service.ClientService
	QueryService  *service.QueryService
}

func clientInputFromRequest(req ledgersdk.ClientRequest) service.ClientInput {
	return service.ClientInput{
		Nom:          req.Nom,
		Telephone:    req.Telephone,
		Email:        req.Email,
		MontantDu:    req.MontantDu.String(),
		DateEcheance: req.DateEcheance,
	}
}

// HandleList handles the client listing endpoint
//
//	@Summary		List clients
//	@Description	Returns one page of the client ledger. Filters combine with AND: name search,
//	@Description	derived status (retard/avenir/tous), and inclusive amount bounds in francs.
//	@Tags			Clients
//	@Produce		json
//	@Param			page		query		int		false	"Page number (1-based)"
//	@Param			per_page	query		int		false	"Page size (5, 10, 20 or 50)"
//	@Param			search		query		string	false	"Case-insensitive substring of the name"
//	@Param			statut		query		string	false	"retard, avenir or tous"
//	@Param			montant_min	query		string	false	"Minimum owed amount in francs"
//	@Param			montant_max	query		string	false	"Maximum owed amount in francs"
//	@Success		200	{object}	ledgersdk.ListClientsResponse	"One page of clients"
//	@Failure		400	{object}	ledgersdk.ErrorResponse			"Invalid filter values"
//	@Failure		500	{object}	ledgersdk.ErrorResponse			"Internal server error"
//	@Router			/api/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	page, err := h.QueryService.ListClients(ctx, service.ClientQuery{
		Page:       queryInt(r, "page"),
		PerPage:    queryInt(r, "per_page"),
		Search:     q.Get("search"),
		Statut:     q.Get("statut"),
		MontantMin: q.Get("montant_min"),
		MontantMax: q.Get("montant_max"),
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clientPageResponse(page))
}

// HandleCreate handles the client creation endpoint
//
//	@Summary		Add a client
//	@Description	Creates a client and its "ajout" audit entry atomically. The phone number is
//	@Description	normalized to the +225 international form; the amount accepts dot or comma decimals.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Param			X-Actor	header		string					false	"Actor recorded in the audit log"
//	@Param			request	body		ledgersdk.ClientRequest	true	"Client fields"
//	@Success		201	{object}	ledgersdk.ClientInfo	"Created client"
//	@Failure		400	{object}	ledgersdk.ErrorResponse	"Validation failure with field details"
//	@Failure		409	{object}	ledgersdk.ErrorResponse	"Email already used"
//	@Failure		500	{object}	ledgersdk.ErrorResponse	"Internal server error"
//	@Router			/api/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ledgersdk.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ledgersdk.ErrorCodeBadRequest, "Corps JSON invalide")
		return
	}

	client, err := h.ClientService.AddClient(ctx, clientInputFromRequest(req), actorFrom(r))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("client created", "client_id", client.ID)
	statut := domain.DeriveStatut(client.DateEcheance, client.CreatedAt)
	httpx.WriteJSON(w, http.StatusCreated, clientInfo(client, statut, 0))
}

// HandleGet handles the client detail endpoint
//
//	@Summary		Get a client
//	@Description	Returns one client with its derived status and payment history, newest payment first.
//	@Tags			Clients
//	@Produce		json
//	@Param			id	path		string	true	"Client ID"
//	@Success		200	{object}	ledgersdk.ClientDetailResponse	"Client with payments"
//	@Failure		404	{object}	ledgersdk.ErrorResponse			"Unknown client"
//	@Failure		500	{object}	ledgersdk.ErrorResponse			"Internal server error"
//	@Router			/api/clients/{id} [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	detail, err := h.ClientService.GetClient(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	resp := ledgersdk.ClientDetailResponse{
		Client:    clientInfo(detail.Client, detail.Statut, 0),
		Paiements: make([]ledgersdk.PaiementInfo, 0, len(detail.Paiements)),
	}
	for _, p := range detail.Paiements {
		resp.Paiements = append(resp.Paiements, paiementInfo(p))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles the client update endpoint
//
//	@Summary		Update a client
//	@Description	Replaces the client's mutable fields and records which ones changed in the audit log.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Param			X-Actor	header		string					false	"Actor recorded in the audit log"
//	@Param			id		path		string					true	"Client ID"
//	@Param			request	body		ledgersdk.ClientRequest	true	"New client fields"
//	@Success		200	{object}	ledgersdk.ClientInfo	"Updated client"
//	@Failure		400	{object}	ledgersdk.ErrorResponse	"Validation failure with field details"
//	@Failure		404	{object}	ledgersdk.ErrorResponse	"Unknown client"
//	@Failure		409	{object}	ledgersdk.ErrorResponse	"Email already used"
//	@Failure		500	{object}	ledgersdk.ErrorResponse	"Internal server error"
//	@Router			/api/clients/{id} [put].
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ledgersdk.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ledgersdk.ErrorCodeBadRequest, "Corps JSON invalide")
		return
	}

	client, err := h.ClientService.EditClient(ctx, r.PathValue("id"), clientInputFromRequest(req), actorFrom(r))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	statut := domain.DeriveStatut(client.DateEcheance, client.UpdatedAt)
	httpx.WriteJSON(w, http.StatusOK, clientInfo(client, statut, 0))
}

// HandleDelete handles the client deletion endpoint
//
//	@Summary		Delete a client
//	@Description	Removes the client and its payments. The audit log keeps a snapshot of the name,
//	@Description	so past entries stay readable.
//	@Tags			Clients
//	@Param			X-Actor	header	string	false	"Actor recorded in the audit log"
//	@Param			id		path	string	true	"Client ID"
//	@Success		204	"Client deleted"
//	@Failure		404	{object}	ledgersdk.ErrorResponse	"Unknown client"
//	@Failure		500	{object}	ledgersdk.ErrorResponse	"Internal server error"
//	@Router			/api/clients/{id} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	clientID := r.PathValue("id")
	if err := h.ClientService.DeleteClient(ctx, clientID, actorFrom(r)); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("client deleted", "client_id", clientID)
	w.WriteHeader(http.StatusNoContent)
}
