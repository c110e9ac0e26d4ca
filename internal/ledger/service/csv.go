package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store"
	"github.com/recouvro/recouvro/pkg/idx"
	"github.com/recouvro/recouvro/pkg/moneyx"
)

// csvHeader is the column contract shared by import, export and the
// downloadable template, so an exported file re-imports as-is.
var csvHeader = []string{"nom", "telephone", "email", "montant_du", "date_echeance"}

// ErrBadCSVHeader reports a file whose first row does not match the
// expected column contract.
var ErrBadCSVHeader = errors.New("en-tête CSV invalide (attendu: nom,telephone,email,montant_du,date_echeance)")

// CSVService handles bulk flows over the column contract above.
type CSVService struct {
	Store store.Store

	Now func() time.Time
}

func (s *CSVService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// ImportIssue describes one rejected row.
type ImportIssue struct {
	Line  int
	Motif string
}

// ImportResult summarizes a bulk import run.
type ImportResult struct {
	Inserted int
	Skipped  int
	Issues   []ImportIssue
}

// ImportClients reads the CSV stream and inserts every valid row. Bad
// rows and duplicate emails are skipped, never fatal: a single
// malformed line must not sink the batch. One batch-level audit entry
// records the outcome.
func (s *CSVService) ImportClients(ctx context.Context, r io.Reader, actor string) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, ErrBadCSVHeader
	}
	if !validHeader(header) {
		return ImportResult{}, ErrBadCSVHeader
	}

	var result ImportResult
	line := 1 // header consumed

	for {
		record, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Skipped++
			result.Issues = append(result.Issues, ImportIssue{Line: line, Motif: "ligne illisible"})
			continue
		}
		if len(record) != len(csvHeader) {
			result.Skipped++
			result.Issues = append(result.Issues, ImportIssue{Line: line, Motif: "nombre de colonnes incorrect"})
			continue
		}

		in := ClientInput{
			Nom:          record[0],
			Telephone:    record[1],
			Email:        record[2],
			MontantDu:    record[3],
			DateEcheance: record[4],
		}
		telephone, montant, echeance, err := parseInput(in)
		if err != nil {
			result.Skipped++
			result.Issues = append(result.Issues, ImportIssue{Line: line, Motif: err.Error()})
			continue
		}
		// Add-client accepts an already-settled balance, but an
		// imported row must carry a positive debt.
		if montant <= 0 {
			result.Skipped++
			result.Issues = append(result.Issues, ImportIssue{Line: line, Motif: "le montant dû doit être strictement positif"})
			continue
		}

		now := s.now()
		client := domain.Client{
			ID:           string(idx.New()),
			Nom:          strings.TrimSpace(in.Nom),
			Telephone:    telephone,
			Email:        strings.TrimSpace(in.Email),
			MontantDu:    montant,
			DateEcheance: domain.DateOnly(echeance),
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		// Duplicate emails within the file or against existing rows
		// surface as a unique violation; count them as skipped.
		if err := s.Store.Clients().CreateClient(ctx, client); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				result.Skipped++
				result.Issues = append(result.Issues, ImportIssue{Line: line, Motif: "email déjà utilisé"})
				continue
			}
			return ImportResult{}, err
		}
		result.Inserted++
	}

	now := s.now()
	if strings.TrimSpace(actor) == "" {
		actor = domain.SystemActor
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Historique().AppendEntry(ctx, domain.HistoryEntry{
			ID:               string(idx.New()),
			Action:           domain.ActionImport,
			ClientNom:        "Import CSV",
			Details:          fmt.Sprintf("Import terminé: %d client(s) ajouté(s), %d ligne(s) ignorée(s)", result.Inserted, result.Skipped),
			ModifiePar:       actor,
			DateModification: now,
		})
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func validHeader(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), csvHeader[i]) {
			return false
		}
	}
	return true
}

// ExportClients streams the full filtered client set (never paginated)
// in the same column layout the import accepts.
func (s *CSVService) ExportClients(ctx context.Context, w io.Writer, q ClientQuery) error {
	f, err := buildClientFilter(q, s.now())
	if err != nil {
		return err
	}
	// Limit zero walks the whole filtered set.
	f.Limit = 0
	f.Offset = 0

	clients, err := s.Store.Clients().ListClients(ctx, f)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range clients {
		record := []string{
			c.Nom,
			c.Telephone,
			c.Email,
			moneyx.FormatCentimes(c.MontantDu),
			c.DateEcheance.Format(domain.DateFormat),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportHistorique streams the full filtered audit log.
func (s *CSVService) ExportHistorique(ctx context.Context, w io.Writer, q HistoriqueQuery) error {
	f, err := buildHistoriqueFilter(q)
	if err != nil {
		return err
	}
	f.Limit = 0
	f.Offset = 0

	entries, err := s.Store.Historique().ListEntries(ctx, f)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "action", "client", "details", "modifie_par"}); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.DateModification.UTC().Format(time.RFC3339),
			string(e.Action),
			e.ClientNom,
			e.Details,
			e.ModifiePar,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTemplate emits the downloadable import template: the header
// plus commented example rows the import will ignore.
func (s *CSVService) WriteTemplate(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "# Exemple: Awa Koné,+2250701020304,awa.kone@example.ci,150000.00,2026-03-15\n")
	return err
}
