package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"github.com/dmitrijs2005/docwatch/internal/common"
	"github.com/dmitrijs2005/docwatch/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	loginPath     = "/auth/login/"
	refreshPath   = "/auth/login/refresh/"
	documentPath  = "/api/document/"
	companyPath   = "/api/company/"
	reanalyzePath = "/api/automations/documents/"

	// expiryLeeway refreshes an access token slightly before it expires.
	expiryLeeway = 10 * time.Second
)

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// HTTPClient talks to the REST API. It keeps the token pair in memory,
// attaches the access token to every call and refreshes it when it has
// expired or the server answers 401.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	now     func() time.Time

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// WithRequestID makes every call made with ctx carry id as X-Request-ID, so
// the calls of one user action can be correlated in server logs. Entries
// logged with ctx carry it as well.
func WithRequestID(ctx context.Context, id string) context.Context {
	return logging.WithRequestID(ctx, id)
}

func requestID(ctx context.Context) string {
	if id := logging.RequestID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func (c *HTTPClient) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) setTokens(p tokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = p.Access
	if p.Refresh != "" {
		c.refreshToken = p.Refresh
	}
}

// tokenExpired reads the exp claim without verifying the signature; the
// server remains the authority, this only saves a failed round trip.
func tokenExpired(token string, now time.Time) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if exp == nil {
		return false, nil
	}
	return !now.Add(expiryLeeway).Before(exp.Time), nil
}

func (c *HTTPClient) send(ctx context.Context, method, path, token string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	req.Header.Set(common.RequestIDHeaderName, requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return newAPIError(resp.StatusCode, b)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	_, refresh := c.tokens()
	if refresh == "" {
		return ErrNotLoggedIn
	}
	body, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, http.MethodPost, refreshPath, "", body)
	if err != nil {
		return err
	}
	var p tokenPair
	if err := decodeResponse(resp, &p); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			c.Logout()
			return fmt.Errorf("%w: %w", err, common.ErrTokenExpired)
		}
		return err
	}
	c.setTokens(p)
	return nil
}

func (c *HTTPClient) AccessToken(ctx context.Context) (string, error) {
	access, _ := c.tokens()
	if access == "" {
		return "", ErrNotLoggedIn
	}
	expired, err := tokenExpired(access, c.now())
	if err != nil || !expired {
		// a token we cannot parse is still sent; the server decides
		return access, nil
	}
	if err := c.refresh(ctx); err != nil {
		return "", err
	}
	access, _ = c.tokens()
	return access, nil
}

// do performs an authenticated call, retrying once after a token refresh
// when the server rejects the access token.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = b
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.refresh(ctx); err != nil {
			return err
		}
		token, _ = c.tokens()
		if resp, err = c.send(ctx, method, path, token, body); err != nil {
			return err
		}
	}
	return decodeResponse(resp, out)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, http.MethodPost, loginPath, "", body)
	if err != nil {
		return err
	}
	var p tokenPair
	if err := decodeResponse(resp, &p); err != nil {
		return err
	}
	if p.Access == "" || p.Refresh == "" {
		return fmt.Errorf("%w: login response without tokens", ErrUnauthorized)
	}
	c.setTokens(p)
	return nil
}

func (c *HTTPClient) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken, c.refreshToken = "", ""
}

func (c *HTTPClient) LoggedIn() bool {
	access, _ := c.tokens()
	return access != ""
}

func documentURL(id int64) string {
	return documentPath + strconv.FormatInt(id, 10) + "/"
}

func (c *HTTPClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.do(ctx, http.MethodGet, documentPath, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *HTTPClient) GetDocument(ctx context.Context, id int64) (models.Document, error) {
	var doc models.Document
	err := c.do(ctx, http.MethodGet, documentURL(id), nil, &doc)
	return doc, err
}

func (c *HTTPClient) CreateDocument(ctx context.Context, draft models.DocumentDraft) (models.Document, error) {
	var doc models.Document
	err := c.do(ctx, http.MethodPost, documentPath, draft, &doc)
	return doc, err
}

func (c *HTTPClient) UpdateDocument(ctx context.Context, id int64, draft models.DocumentDraft) (models.Document, error) {
	var doc models.Document
	err := c.do(ctx, http.MethodPut, documentURL(id), draft, &doc)
	return doc, err
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, documentURL(id), nil, nil)
}

func (c *HTTPClient) SyncStatus(ctx context.Context, id int64) (models.SyncStatusResult, error) {
	var res models.SyncStatusResult
	err := c.do(ctx, http.MethodPost, documentURL(id)+"sync/", nil, &res)
	return res, err
}

func (c *HTTPClient) Reanalyze(ctx context.Context, id int64) (models.ReanalyzeResult, error) {
	var res models.ReanalyzeResult
	err := c.do(ctx, http.MethodPost, reanalyzePath+strconv.FormatInt(id, 10)+"/reanalyze/", nil, &res)
	return res, err
}

func (c *HTTPClient) PDFURL(ctx context.Context, id int64) (string, error) {
	var res struct {
		FileURL string `json:"file_url"`
	}
	if err := c.do(ctx, http.MethodGet, documentURL(id)+"pdf/", nil, &res); err != nil {
		return "", err
	}
	return res.FileURL, nil
}

func (c *HTTPClient) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := c.do(ctx, http.MethodGet, companyPath, nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (c *HTTPClient) GetCompany(ctx context.Context, id int64) (models.Company, error) {
	var company models.Company
	err := c.do(ctx, http.MethodGet, companyPath+strconv.FormatInt(id, 10)+"/", nil, &company)
	return company, err
}
