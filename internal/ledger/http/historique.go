package http

import (
	"net/http"

	"github.com/recouvro/recouvro/internal/ledger/service"
	"github.com/recouvro/recouvro/pkg/httpx"
	"github.com/recouvro/recouvro/pkg/ledgersdk"
)

type HistoriqueHandler struct {
	QueryService *service.QueryService
}

// HandleList handles the audit log listing endpoint
//
//	@Summary		List audit entries
//	@Description	Returns one page of the append-only audit log, newest first. Filters combine with
//	@Description	AND: client name snapshot, action kind, and an inclusive calendar date range.
//	@Tags			Historique
//	@Produce		json
//	@Param			page			query		int		false	"Page number (1-based)"
//	@Param			per_page		query		int		false	"Page size (5, 10, 20 or 50)"
//	@Param			search_client	query		string	false	"Substring of the client name snapshot"
//	@Param			action			query		string	false	"ajout, modification, paiement, relance, suppression, import or tous"
//	@Param			date_debut		query		string	false	"Inclusive start date (YYYY-MM-DD)"
//	@Param			date_fin		query		string	false	"Inclusive end date (YYYY-MM-DD)"
//	@Success		200	{object}	ledgersdk.ListHistoriqueResponse	"One page of audit entries"
//	@Failure		400	{object}	ledgersdk.ErrorResponse				"Invalid filter values"
//	@Failure		500	{object}	ledgersdk.ErrorResponse				"Internal server error"
//	@Router			/api/historique [get].
func (h *HistoriqueHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	page, err := h.QueryService.ListHistorique(ctx, service.HistoriqueQuery{
		Page:         queryInt(r, "page"),
		PerPage:      queryInt(r, "per_page"),
		SearchClient: q.Get("search_client"),
		Action:       q.Get("action"),
		DateDebut:    q.Get("date_debut"),
		DateFin:      q.Get("date_fin"),
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	resp := ledgersdk.ListHistoriqueResponse{
		Historique: make([]ledgersdk.HistoriqueEntryInfo, 0, len(page.Entries)),
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}
	for _, e := range page.Entries {
		resp.Historique = append(resp.Historique, historiqueEntryInfo(e))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
