package http

import (
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/service"
	"github.com/recouvro/recouvro/pkg/ledgersdk"
	"github.com/recouvro/recouvro/pkg/moneyx"
)

// Converters from domain values to wire types. Amounts switch from
// centimes to francs here and nowhere else.

func clientInfo(c domain.Client, statut domain.Statut, numero int) ledgersdk.ClientInfo {
	return ledgersdk.ClientInfo{
		ID:           c.ID,
		Numero:       numero,
		Nom:          c.Nom,
		Telephone:    c.Telephone,
		Email:        c.Email,
		MontantDu:    moneyx.ToFrancs(c.MontantDu),
		DateEcheance: c.DateEcheance.Format(domain.DateFormat),
		Statut:       string(statut),
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func clientPageResponse(page service.ClientPage) ledgersdk.ListClientsResponse {
	out := ledgersdk.ListClientsResponse{
		Clients:    make([]ledgersdk.ClientInfo, 0, len(page.Clients)),
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}
	for _, v := range page.Clients {
		out.Clients = append(out.Clients, clientInfo(v.Client, v.Statut, v.Numero))
	}
	return out
}

func paiementInfo(p domain.Paiement) ledgersdk.PaiementInfo {
	return ledgersdk.PaiementInfo{
		ID:           p.ID,
		Montant:      moneyx.ToFrancs(p.Montant),
		DatePaiement: p.DatePaiement.Format(domain.DateFormat),
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func historiqueEntryInfo(e domain.HistoryEntry) ledgersdk.HistoriqueEntryInfo {
	info := ledgersdk.HistoriqueEntryInfo{
		ID:               e.ID,
		Action:           string(e.Action),
		ClientNom:        e.ClientNom,
		Details:          e.Details,
		ModifiePar:       e.ModifiePar,
		DateModification: e.DateModification.UTC().Format(time.RFC3339),
	}
	if e.ClientID != nil {
		info.ClientID = *e.ClientID
	}
	return info
}

func connexionInfo(e domain.ConnexionEvent) ledgersdk.ConnexionInfo {
	return ledgersdk.ConnexionInfo{
		ID:         e.ID,
		UserID:     e.UserID,
		Username:   e.Username,
		Action:     string(e.Action),
		DateAction: e.DateAction.UTC().Format(time.RFC3339),
	}
}

func userInfo(u domain.User) ledgersdk.UserInfo {
	return ledgersdk.UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
