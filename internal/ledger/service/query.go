package service

import (
	"context"
	"strings"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store"
	"github.com/recouvro/recouvro/pkg/moneyx"
)

// DefaultPerPage is used when the caller asks for no or an unknown
// page size.
const DefaultPerPage = 10

// allowedPerPage is the whitelist of page sizes the UI offers.
var allowedPerPage = map[int]bool{5: true, 10: true, 20: true, 50: true}

// QueryService serves the read side: filtered, paginated listings of
// clients, audit entries and connexion events. It never mutates state.
type QueryService struct {
	Store store.Store

	Now func() time.Time
}

func (s *QueryService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func sanitizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func sanitizePerPage(perPage int) int {
	if allowedPerPage[perPage] {
		return perPage
	}
	return DefaultPerPage
}

func totalPages(total int64, perPage int) int {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClientQuery carries the raw listing parameters from the HTTP layer.
type ClientQuery struct {
	Page       int
	PerPage    int
	Search     string
	Statut     string // "", "tous", "retard" or "avenir"
	MontantMin string // decimal FCFA, empty means unbounded
	MontantMax string
}

// ClientView is a client as presented in listings: derived status and
// a page-local row number for the UI.
type ClientView struct {
	Numero int
	Client domain.Client
	Statut domain.Statut
}

// ClientPage is one page of the filtered client set.
type ClientPage struct {
	Clients    []ClientView
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// buildClientFilter validates the query and converts it into a store
// filter. Limit/Offset are left to the caller. Shared with the CSV
// export so both paths filter identically.
func buildClientFilter(q ClientQuery, today time.Time) (store.ClientFilter, error) {
	verr := domain.NewValidationError()

	f := store.ClientFilter{
		Search: strings.TrimSpace(q.Search),
		Today:  today,
	}

	switch strings.TrimSpace(q.Statut) {
	case "", "tous":
	case string(domain.StatutRetard):
		f.Statut = domain.StatutRetard
	case string(domain.StatutAvenir):
		f.Statut = domain.StatutAvenir
	default:
		verr.Add("statut", "statut inconnu (retard, avenir ou tous)")
	}

	if min := strings.TrimSpace(q.MontantMin); min != "" {
		v, err := moneyx.ParseCentimes(min)
		if err != nil {
			verr.Add("montant_min", "montant invalide")
		} else {
			f.MontantMin = &v
		}
	}
	if max := strings.TrimSpace(q.MontantMax); max != "" {
		v, err := moneyx.ParseCentimes(max)
		if err != nil {
			verr.Add("montant_max", "montant invalide")
		} else {
			f.MontantMax = &v
		}
	}

	if err := verr.ErrOrNil(); err != nil {
		return store.ClientFilter{}, err
	}
	return f, nil
}

// ListClients returns one page of clients matching the query, with
// derived statuses and page-local row numbers. The total count ignores
// pagination so the UI can render page controls.
func (s *QueryService) ListClients(ctx context.Context, q ClientQuery) (ClientPage, error) {
	f, err := buildClientFilter(q, s.now())
	if err != nil {
		return ClientPage{}, err
	}

	page := sanitizePage(q.Page)
	perPage := sanitizePerPage(q.PerPage)
	f.Limit = perPage
	f.Offset = (page - 1) * perPage

	total, err := s.Store.Clients().CountClients(ctx, f)
	if err != nil {
		return ClientPage{}, err
	}
	clients, err := s.Store.Clients().ListClients(ctx, f)
	if err != nil {
		return ClientPage{}, err
	}

	today := f.Today
	views := make([]ClientView, 0, len(clients))
	for i, c := range clients {
		views = append(views, ClientView{
			Numero: f.Offset + i + 1,
			Client: c,
			Statut: domain.DeriveStatut(c.DateEcheance, today),
		})
	}

	return ClientPage{
		Clients:    views,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

// HistoriqueQuery carries the raw audit listing parameters.
type HistoriqueQuery struct {
	Page         int
	PerPage      int
	SearchClient string
	Action       string // "", "tous" or one of the audit actions
	DateDebut    string // YYYY-MM-DD, inclusive
	DateFin      string // YYYY-MM-DD, inclusive
}

// HistoriquePage is one page of the audit log, newest first.
type HistoriquePage struct {
	Entries    []domain.HistoryEntry
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

func buildHistoriqueFilter(q HistoriqueQuery) (store.HistoriqueFilter, error) {
	verr := domain.NewValidationError()

	f := store.HistoriqueFilter{
		SearchClient: strings.TrimSpace(q.SearchClient),
	}

	switch action := strings.TrimSpace(q.Action); action {
	case "", "tous":
	default:
		a := domain.Action(action)
		if !a.Valid() {
			verr.Add("action", "action inconnue")
		} else {
			f.Action = a
		}
	}

	if d := strings.TrimSpace(q.DateDebut); d != "" {
		t, err := domain.ParseDate(d)
		if err != nil {
			verr.Add("date_debut", "date invalide (format AAAA-MM-JJ)")
		} else {
			f.DateDebut = &t
		}
	}
	if d := strings.TrimSpace(q.DateFin); d != "" {
		t, err := domain.ParseDate(d)
		if err != nil {
			verr.Add("date_fin", "date invalide (format AAAA-MM-JJ)")
		} else {
			f.DateFin = &t
		}
	}

	if err := verr.ErrOrNil(); err != nil {
		return store.HistoriqueFilter{}, err
	}
	return f, nil
}

// ListHistorique returns one page of audit entries matching the query.
func (s *QueryService) ListHistorique(ctx context.Context, q HistoriqueQuery) (HistoriquePage, error) {
	f, err := buildHistoriqueFilter(q)
	if err != nil {
		return HistoriquePage{}, err
	}

	page := sanitizePage(q.Page)
	perPage := sanitizePerPage(q.PerPage)
	f.Limit = perPage
	f.Offset = (page - 1) * perPage

	total, err := s.Store.Historique().CountEntries(ctx, f)
	if err != nil {
		return HistoriquePage{}, err
	}
	entries, err := s.Store.Historique().ListEntries(ctx, f)
	if err != nil {
		return HistoriquePage{}, err
	}

	return HistoriquePage{
		Entries:    entries,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

// ConnexionQuery carries the raw connexion trail listing parameters.
type ConnexionQuery struct {
	Page       int
	PerPage    int
	SearchUser string
	Action     string // "", "tous", "login" or "logout"
	DateDebut  string
	DateFin    string
}

// ConnexionPage is one page of the login/logout trail, newest first.
type ConnexionPage struct {
	Events     []domain.ConnexionEvent
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

func buildConnexionFilter(q ConnexionQuery) (store.ConnexionFilter, error) {
	verr := domain.NewValidationError()

	f := store.ConnexionFilter{
		SearchUser: strings.TrimSpace(q.SearchUser),
	}

	switch action := strings.TrimSpace(q.Action); action {
	case "", "tous":
	default:
		a := domain.ConnexionAction(action)
		if !a.Valid() {
			verr.Add("action", "action inconnue (login ou logout)")
		} else {
			f.Action = a
		}
	}

	if d := strings.TrimSpace(q.DateDebut); d != "" {
		t, err := domain.ParseDate(d)
		if err != nil {
			verr.Add("date_debut", "date invalide (format AAAA-MM-JJ)")
		} else {
			f.DateDebut = &t
		}
	}
	if d := strings.TrimSpace(q.DateFin); d != "" {
		t, err := domain.ParseDate(d)
		if err != nil {
			verr.Add("date_fin", "date invalide (format AAAA-MM-JJ)")
		} else {
			f.DateFin = &t
		}
	}

	if err := verr.ErrOrNil(); err != nil {
		return store.ConnexionFilter{}, err
	}
	return f, nil
}

// ListConnexions returns one page of connexion events matching the query.
func (s *QueryService) ListConnexions(ctx context.Context, q ConnexionQuery) (ConnexionPage, error) {
	f, err := buildConnexionFilter(q)
	if err != nil {
		return ConnexionPage{}, err
	}

	page := sanitizePage(q.Page)
	perPage := sanitizePerPage(q.PerPage)
	f.Limit = perPage
	f.Offset = (page - 1) * perPage

	total, err := s.Store.Connexions().CountEvents(ctx, f)
	if err != nil {
		return ConnexionPage{}, err
	}
	events, err := s.Store.Connexions().ListEvents(ctx, f)
	if err != nil {
		return ConnexionPage{}, err
	}

	return ConnexionPage{
		Events:     events,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}
