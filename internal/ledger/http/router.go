package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/service"
	"github.com/recouvro/recouvro/internal/ledger/store"
	"github.com/recouvro/recouvro/pkg/httpx"
	"github.com/recouvro/recouvro/pkg/slogx"

	_ "github.com/recouvro/recouvro/api/ledger" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	ClientService    *service.ClientService
	QueryService     *service.QueryService
	CSVService       *service.CSVService
	StatsService     *service.StatsService
	ConnexionService *service.ConnexionService
	UserService      *service.UserService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerClients()
	r.registerCSV()
	r.registerHistorique()
	r.registerConnexions()
	r.registerUsers()
	r.registerStats()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Recouvro Client Ledger API
//	@version		0.1.0
//	@description	Client ledger and reporting service for debt collections follow-up: client
//	@description	entities with due-date-derived statuses, payments with an append-only audit log,
//	@description	CSV bulk flows and dashboard aggregation.
//	@description
//	@description	Amounts are decimal FCFA on the wire and integer centimes internally.
//
//	@contact.name	Recouvro Team
//	@contact.url	https://github.com/recouvro/recouvro
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerClients() {
	clientsHandler := &ClientsHandler{
		ClientService: r.ClientService,
		QueryService:  r.QueryService,
	}
	paiementsHandler := &PaiementsHandler{
		ClientService: r.ClientService,
	}

	// Reads get the lenient limit, mutations the moderate one.
	r.Mux.Handle("GET /api/clients",
		httpx.Chain(http.HandlerFunc(clientsHandler.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
	r.Mux.Handle("POST /api/clients",
		httpx.Chain(http.HandlerFunc(clientsHandler.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
	r.Mux.Handle("GET /api/clients/{id}",
		httpx.Chain(http.HandlerFunc(clientsHandler.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
	r.Mux.Handle("PUT /api/clients/{id}",
		httpx.Chain(http.HandlerFunc(clientsHandler.HandleUpdate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
	r.Mux.Handle("DELETE /api/clients/{id}",
		httpx.Chain(http.HandlerFunc(clientsHandler.HandleDelete),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
	r.Mux.Handle("POST /api/clients/{id}/paiement",
		httpx.Chain(http.HandlerFunc(paiementsHandler.HandlePaiement),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
	r.Mux.Handle("POST /api/clients/{id}/relance",
		httpx.Chain(http.HandlerFunc(paiementsHandler.HandleRelance),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
}

func (r *Router) registerCSV() {
	csvHandler := &CSVHandler{CSVService: r.CSVService}

	// Bulk flows are the most expensive endpoints, strict limit.
	r.Mux.Handle("POST /api/clients/import",
		httpx.Chain(http.HandlerFunc(csvHandler.HandleImport),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("GET /api/clients/export",
		httpx.Chain(http.HandlerFunc(csvHandler.HandleExport),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("GET /api/clients/import/modele",
		httpx.Chain(http.HandlerFunc(csvHandler.HandleTemplate),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
	r.Mux.Handle("GET /api/historique/export",
		httpx.Chain(http.HandlerFunc(csvHandler.HandleExportHistorique),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
}

func (r *Router) registerHistorique() {
	historiqueHandler := &HistoriqueHandler{QueryService: r.QueryService}

	r.Mux.Handle("GET /api/historique",
		httpx.Chain(http.HandlerFunc(historiqueHandler.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
}

func (r *Router) registerConnexions() {
	connexionsHandler := &ConnexionsHandler{
		ConnexionService: r.ConnexionService,
		QueryService:     r.QueryService,
	}

	r.Mux.Handle("GET /api/connexions",
		httpx.Chain(http.HandlerFunc(connexionsHandler.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
	r.Mux.Handle("POST /api/connexions",
		httpx.Chain(http.HandlerFunc(connexionsHandler.HandleRecord),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
}

func (r *Router) registerUsers() {
	usersHandler := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/users",
		httpx.Chain(http.HandlerFunc(usersHandler.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
	r.Mux.Handle("POST /api/users",
		httpx.Chain(http.HandlerFunc(usersHandler.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
	r.Mux.Handle("PUT /api/users/{id}/role",
		httpx.Chain(http.HandlerFunc(usersHandler.HandleUpdateRole),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
}

func (r *Router) registerStats() {
	statsHandler := &StatsHandler{StatsService: r.StatsService}

	r.Mux.Handle("GET /api/stats",
		httpx.Chain(http.HandlerFunc(statsHandler.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
