package http

import (
	"net/http"

	"github.com/recouvro/recouvro/internal/ledger/service"
	"github.com/recouvro/recouvro/pkg/httpx"
	"github.com/recouvro/recouvro/pkg/ledgersdk"
	"github.com/recouvro/recouvro/pkg/moneyx"
)

type StatsHandler struct {
	StatsService *service.StatsService
}

// HandleGet handles the dashboard aggregation endpoint
//
//	@Summary		Dashboard statistics
//	@Description	Returns the outstanding totals split by derived status, the client counts by
//	@Description	settlement state, and the overall total. total_du always equals avenir + retard.
//	@Tags			Stats
//	@Produce		json
//	@Success		200	{object}	ledgersdk.StatsResponse	"Dashboard aggregate"
//	@Failure		500	{object}	ledgersdk.ErrorResponse	"Internal server error"
//	@Router			/api/stats [get].
func (h *StatsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.StatsService.Snapshot(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ledgersdk.StatsResponse{
		MontantsParStatut: ledgersdk.MontantsParStatut{
			Avenir: moneyx.ToFrancs(stats.MontantAvenir),
			Retard: moneyx.ToFrancs(stats.MontantRetard),
		},
		RepartitionClients: ledgersdk.RepartitionClients{
			Payes:    stats.Payes,
			EnRetard: stats.EnRetard,
			Total:    stats.TotalClients,
		},
		TotalDu: moneyx.ToFrancs(stats.TotalDu),
	})
}
