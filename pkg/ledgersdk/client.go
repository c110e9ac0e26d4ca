package ledgersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ActorHeader carries the human actor identity recorded in the audit
// log. Empty means the server attributes the action to the system.
const ActorHeader = "X-Actor"

// SDKClient is a typed client for the ledger service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Actor is sent as the X-Actor header on every mutation.
	Actor string
}

// NewSDKClient creates a ledger service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs a request with an optional JSON body and decodes the
// response into target when it is non-nil.
func (c *SDKClient) doJSON(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Actor != "" {
		req.Header.Set(ActorHeader, c.Actor)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, raw)
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ClientListOptions narrows and pages the client listing.
type ClientListOptions struct {
	Page       int
	PerPage    int
	Search     string
	Statut     string
	MontantMin string
	MontantMax string
}

func (o ClientListOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Statut != "" {
		q.Set("statut", o.Statut)
	}
	if o.MontantMin != "" {
		q.Set("montant_min", o.MontantMin)
	}
	if o.MontantMax != "" {
		q.Set("montant_max", o.MontantMax)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListClients returns one page of the filtered client set.
func (c *SDKClient) ListClients(ctx context.Context, opts ClientListOptions) (*ListClientsResponse, error) {
	var out ListClientsResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/clients"+opts.query(), nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateClient adds a new client to the ledger.
func (c *SDKClient) CreateClient(ctx context.Context, req ClientRequest) (*ClientInfo, error) {
	var out ClientInfo
	err := c.doJSON(ctx, http.MethodPost, "/api/clients", req, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetClient returns one client with its payment history.
func (c *SDKClient) GetClient(ctx context.Context, clientID string) (*ClientDetailResponse, error) {
	var out ClientDetailResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/clients/"+url.PathEscape(clientID), nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateClient replaces a client's mutable fields.
func (c *SDKClient) UpdateClient(ctx context.Context, clientID string, req ClientRequest) (*ClientInfo, error) {
	var out ClientInfo
	err := c.doJSON(ctx, http.MethodPut, "/api/clients/"+url.PathEscape(clientID), req, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteClient removes a client and its payments.
func (c *SDKClient) DeleteClient(ctx context.Context, clientID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/clients/"+url.PathEscape(clientID), nil, nil, http.StatusNoContent)
}

// AddPaiement records a payment against a client and returns the
// updated client.
func (c *SDKClient) AddPaiement(ctx context.Context, clientID string, req PaiementRequest) (*ClientInfo, error) {
	var out ClientInfo
	err := c.doJSON(ctx, http.MethodPost,
		"/api/clients/"+url.PathEscape(clientID)+"/paiement",
		req, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SendRelance triggers a reminder for a client. An empty message lets
// the server compose the default one.
func (c *SDKClient) SendRelance(ctx context.Context, clientID, message string) error {
	return c.doJSON(ctx, http.MethodPost,
		"/api/clients/"+url.PathEscape(clientID)+"/relance",
		RelanceRequest{Message: message}, nil, http.StatusOK)
}

// ImportClients uploads a CSV batch.
func (c *SDKClient) ImportClients(ctx context.Context, csvData io.Reader) (*ImportResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/clients/import"), csvData)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/csv")
	if c.Actor != "" {
		req.Header.Set(ActorHeader, c.Actor)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, raw)
	}
	var out ImportResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// ExportClients downloads the filtered client set as CSV.
func (c *SDKClient) ExportClients(ctx context.Context, opts ClientListOptions) ([]byte, error) {
	return c.download(ctx, "/api/clients/export"+opts.query())
}

// HistoriqueListOptions narrows and pages the audit listing.
type HistoriqueListOptions struct {
	Page         int
	PerPage      int
	SearchClient string
	Action       string
	DateDebut    string
	DateFin      string
}

func (o HistoriqueListOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.SearchClient != "" {
		q.Set("search_client", o.SearchClient)
	}
	if o.Action != "" {
		q.Set("action", o.Action)
	}
	if o.DateDebut != "" {
		q.Set("date_debut", o.DateDebut)
	}
	if o.DateFin != "" {
		q.Set("date_fin", o.DateFin)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListHistorique returns one page of the audit log.
func (c *SDKClient) ListHistorique(ctx context.Context, opts HistoriqueListOptions) (*ListHistoriqueResponse, error) {
	var out ListHistoriqueResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/historique"+opts.query(), nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportHistorique downloads the filtered audit log as CSV.
func (c *SDKClient) ExportHistorique(ctx context.Context, opts HistoriqueListOptions) ([]byte, error) {
	return c.download(ctx, "/api/historique/export"+opts.query())
}

// ConnexionListOptions narrows and pages the connexion trail listing.
type ConnexionListOptions struct {
	Page       int
	PerPage    int
	SearchUser string
	Action     string
	DateDebut  string
	DateFin    string
}

func (o ConnexionListOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.SearchUser != "" {
		q.Set("search_user", o.SearchUser)
	}
	if o.Action != "" {
		q.Set("action", o.Action)
	}
	if o.DateDebut != "" {
		q.Set("date_debut", o.DateDebut)
	}
	if o.DateFin != "" {
		q.Set("date_fin", o.DateFin)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListConnexions returns one page of the login/logout trail.
func (c *SDKClient) ListConnexions(ctx context.Context, opts ConnexionListOptions) (*ListConnexionsResponse, error) {
	var out ListConnexionsResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/connexions"+opts.query(), nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordConnexion appends a login/logout event for a known user.
func (c *SDKClient) RecordConnexion(ctx context.Context, username, action string) (*ConnexionInfo, error) {
	var out ConnexionInfo
	err := c.doJSON(ctx, http.MethodPost, "/api/connexions",
		ConnexionRequest{Username: username, Action: action}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser registers an operator account.
func (c *SDKClient) CreateUser(ctx context.Context, username, role string) (*UserInfo, error) {
	var out UserInfo
	err := c.doJSON(ctx, http.MethodPost, "/api/users",
		CreateUserRequest{Username: username, Role: role}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns all operator accounts.
func (c *SDKClient) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	var out ListUsersResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserRole changes an operator's role.
func (c *SDKClient) UpdateUserRole(ctx context.Context, userID, role string) (*UserInfo, error) {
	var out UserInfo
	err := c.doJSON(ctx, http.MethodPut, "/api/users/"+url.PathEscape(userID)+"/role",
		UpdateRoleRequest{Role: role}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns the dashboard aggregate.
func (c *SDKClient) Stats(ctx context.Context) (*StatsResponse, error) {
	var out StatsResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/stats", nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez checks the liveness probe.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, raw)
	}
	return raw, nil
}
