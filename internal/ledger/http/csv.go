package http

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/recouvro/recouvro/internal/ledger/service"
	"github.com/recouvro/recouvro/pkg/httpx"
	"github.com/recouvro/recouvro/pkg/ledgersdk"
	"github.com/recouvro/recouvro/pkg/slogx"
)

type CSVHandler struct {
	CSVService *service.CSVService
}

// importBody returns the CSV stream from either a raw text/csv body or
// a multipart upload with a "file" field, so both curl pipes and
// browser forms work.
func importBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return r.Body, nil
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("champ de fichier 'file' manquant: %w", err)
	}
	return file, nil
}

// HandleImport handles the CSV import endpoint
//
//	@Summary		Import clients from CSV
//	@Description	Bulk-inserts clients from a CSV batch with the columns nom, telephone, email,
//	@Description	montant_du, date_echeance. Invalid rows and duplicate emails are skipped and
//	@Description	reported; one batch-level audit entry records the outcome.
//	@Tags			CSV
//	@Accept			text/csv
//	@Produce		json
//	@Param			X-Actor	header		string	false	"Actor recorded in the audit log"
//	@Success		200	{object}	ledgersdk.ImportResponse	"Inserted and skipped counts"
//	@Failure		400	{object}	ledgersdk.ErrorResponse		"Missing file or bad header"
//	@Failure		500	{object}	ledgersdk.ErrorResponse		"Internal server error"
//	@Router			/api/clients/import [post].
func (h *CSVHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	body, err := importBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ledgersdk.ErrorCodeBadRequest, err.Error())
		return
	}
	defer body.Close()

	result, err := h.CSVService.ImportClients(ctx, body, actorFrom(r))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("csv import finished", "inserted", result.Inserted, "skipped", result.Skipped)

	resp := ledgersdk.ImportResponse{
		InsertedCount: result.Inserted,
		SkippedCount:  result.Skipped,
		Message: fmt.Sprintf("Import terminé: %d client(s) ajouté(s), %d ligne(s) ignorée(s)",
			result.Inserted, result.Skipped),
	}
	for _, issue := range result.Issues {
		resp.Issues = append(resp.Issues, ledgersdk.ImportIssueInfo{Line: issue.Line, Motif: issue.Motif})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleExport handles the CSV export endpoint
//
//	@Summary		Export clients as CSV
//	@Description	Streams the full filtered client set, never paginated, in the same column layout
//	@Description	the import accepts. Supports the same filters as the listing endpoint.
//	@Tags			CSV
//	@Produce		text/csv
//	@Param			search		query	string	false	"Case-insensitive substring of the name"
//	@Param			statut		query	string	false	"retard, avenir or tous"
//	@Param			montant_min	query	string	false	"Minimum owed amount in francs"
//	@Param			montant_max	query	string	false	"Maximum owed amount in francs"
//	@Success		200	{string}	string					"CSV payload"
//	@Failure		400	{object}	ledgersdk.ErrorResponse	"Invalid filter values"
//	@Failure		500	{object}	ledgersdk.ErrorResponse	"Internal server error"
//	@Router			/api/clients/export [get].
func (h *CSVHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	query := service.ClientQuery{
		Search:     q.Get("search"),
		Statut:     q.Get("statut"),
		MontantMin: q.Get("montant_min"),
		MontantMax: q.Get("montant_max"),
	}

	var buf strings.Builder
	if err := h.CSVService.ExportClients(ctx, &buf, query); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeCSV(w, "clients.csv", buf.String())
}

// HandleExportHistorique handles the audit log export endpoint
//
//	@Summary		Export the audit log as CSV
//	@Description	Streams the full filtered audit log, newest first.
//	@Tags			CSV
//	@Produce		text/csv
//	@Param			search_client	query	string	false	"Substring of the client name snapshot"
//	@Param			action			query	string	false	"ajout, modification, paiement, relance, suppression, import or tous"
//	@Param			date_debut		query	string	false	"Inclusive start date (YYYY-MM-DD)"
//	@Param			date_fin		query	string	false	"Inclusive end date (YYYY-MM-DD)"
//	@Success		200	{string}	string					"CSV payload"
//	@Failure		400	{object}	ledgersdk.ErrorResponse	"Invalid filter values"
//	@Failure		500	{object}	ledgersdk.ErrorResponse	"Internal server error"
//	@Router			/api/historique/export [get].
func (h *CSVHandler) HandleExportHistorique(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	query := service.HistoriqueQuery{
		SearchClient: q.Get("search_client"),
		Action:       q.Get("action"),
		DateDebut:    q.Get("date_debut"),
		DateFin:      q.Get("date_fin"),
	}

	var buf strings.Builder
	if err := h.CSVService.ExportHistorique(ctx, &buf, query); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeCSV(w, "historique.csv", buf.String())
}

// HandleTemplate handles the import template endpoint
//
//	@Summary		Download the import template
//	@Description	Returns the CSV header plus a commented example row; the file re-imports cleanly
//	@Description	as an empty batch.
//	@Tags			CSV
//	@Produce		text/csv
//	@Success		200	{string}	string	"CSV template"
//	@Router			/api/clients/import/modele [get].
func (h *CSVHandler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	var buf strings.Builder
	if err := h.CSVService.WriteTemplate(&buf); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeCSV(w, "modele_import_clients.csv", buf.String())
}

func writeCSV(w http.ResponseWriter, filename, payload string) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, payload)
}
