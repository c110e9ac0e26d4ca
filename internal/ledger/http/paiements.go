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

type PaiementsHandler struct {
	ClientService *service.ClientService
}

// HandlePaiement handles the payment endpoint
//
//	@Summary		Record a payment
//	@Description	Decrements the client's balance by the paid amount, clamped at zero, and records
//	@Description	the payment and its audit entry in the same transaction. The amount accepts a JSON
//	@Description	number or a string with dot or comma decimals. The optional date_paiement defaults
//	@Description	to today and must not be in the future.
//	@Tags			Paiements
//	@Accept			json
//	@Produce		json
//	@Param			X-Actor	header		string						false	"Actor recorded in the audit log"
//	@Param			id		path		string						true	"Client ID"
//	@Param			request	body		ledgersdk.PaiementRequest	true	"Paid amount in francs with an optional payment date"
//	@Success		200	{object}	ledgersdk.ClientInfo	"Client with its updated balance"
//	@Failure		400	{object}	ledgersdk.ErrorResponse	"Non-positive amount or future payment date"
//	@Failure		404	{object}	ledgersdk.ErrorResponse	"Unknown client"
//	@Failure		500	{object}	ledgersdk.ErrorResponse	"Internal server error"
//	@Router			/api/clients/{id}/paiement [post].
func (h *PaiementsHandler) HandlePaiement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ledgersdk.PaiementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ledgersdk.ErrorCodeBadRequest, "Corps JSON invalide")
		return
	}

	clientID := r.PathValue("id")
	client, err := h.ClientService.AddPayment(ctx, clientID, service.PaymentInput{
		Montant:      req.Montant.String(),
		DatePaiement: req.DatePaiement,
	}, actorFrom(r))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("payment recorded", "client_id", clientID, "solde_restant", client.MontantDu)
	statut := domain.DeriveStatut(client.DateEcheance, client.UpdatedAt)
	httpx.WriteJSON(w, http.StatusOK, clientInfo(client, statut, 0))
}

// HandleRelance handles the reminder endpoint
//
//	@Summary		Send a reminder
//	@Description	Records a "relance" audit entry and hands the message to the configured dispatcher.
//	@Description	The audit entry is kept even when dispatch fails, so a broker outage never erases
//	@Description	the fact that a reminder was requested.
//	@Tags			Paiements
//	@Accept			json
//	@Produce		json
//	@Param			X-Actor	header		string						false	"Actor recorded in the audit log"
//	@Param			id		path		string						true	"Client ID"
//	@Param			request	body		ledgersdk.RelanceRequest	false	"Optional custom message"
//	@Success		200	{object}	ledgersdk.MessageResponse	"Reminder dispatched"
//	@Failure		404	{object}	ledgersdk.ErrorResponse		"Unknown client"
//	@Failure		502	{object}	ledgersdk.ErrorResponse		"Recorded but dispatch failed"
//	@Failure		500	{object}	ledgersdk.ErrorResponse		"Internal server error"
//	@Router			/api/clients/{id}/relance [post].
func (h *PaiementsHandler) HandleRelance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ledgersdk.RelanceRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, ledgersdk.ErrorCodeBadRequest, "Corps JSON invalide")
			return
		}
	}

	clientID := r.PathValue("id")
	if err := h.ClientService.SendReminder(ctx, clientID, req.Message, actorFrom(r)); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("reminder sent", "client_id", clientID)
	httpx.WriteJSON(w, http.StatusOK, ledgersdk.MessageResponse{Message: "Relance envoyée"})
}
