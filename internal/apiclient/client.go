// Package apiclient wraps the Remote Recipe Service REST API. It is the only
// place that speaks the wire shapes; everything it returns uses canonical
// domain types.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/khlab/cocktail-lab/internal/models"
)

// memberNoHeader propagates the caller identity (the current user's numeric
// id) when one is available.
const memberNoHeader = "X-Member-No"

// Client calls the Remote Recipe Service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// memberNo yields the current user's numeric id, or "" when anonymous.
	memberNo func() string
}

// NewClient creates a client for the service at baseURL. memberNo may be nil
// for a client that never sends an identity header.
func NewClient(baseURL string, memberNo func() string) *Client {
	if memberNo == nil {
		memberNo = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		memberNo: memberNo,
	}
}

// ListCocktails fetches the whole community board.
func (c *Client) ListCocktails(ctx context.Context) ([]models.Cocktail, error) {
	data, err := c.do(ctx, "list cocktails", http.MethodGet, "/api/cocktails", nil)
	if err != nil {
		return nil, err
	}
	var payloads []cocktailPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, &TransportError{Op: "list cocktails", Err: err}
	}
	cocktails := make([]models.Cocktail, len(payloads))
	for i, p := range payloads {
		cocktails[i] = p.toModel()
	}
	return cocktails, nil
}

// CreateCocktail submits a draft. Drafts with no ingredients are rejected
// before any request is made.
func (c *Client) CreateCocktail(ctx context.Context, draft models.CocktailDraft) (models.Cocktail, error) {
	if err := draft.Validate(); err != nil {
		return models.Cocktail{}, err
	}
	body := cocktailRequest{
		CocktailName:      draft.Name,
		Description:       draft.Description,
		Ingredients:       draft.Ingredients,
		Instructions:      draft.Instructions,
		CocktailImagePath: draft.Image,
	}
	data, err := c.do(ctx, "create cocktail", http.MethodPost, "/api/cocktails", body)
	if err != nil {
		return models.Cocktail{}, err
	}
	var payload cocktailPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.Cocktail{}, &TransportError{Op: "create cocktail", Err: err}
	}
	return payload.toModel(), nil
}

// UpdateCocktail replaces the identified cocktail's fields.
func (c *Client) UpdateCocktail(ctx context.Context, id models.ID, draft models.CocktailDraft) (models.Cocktail, error) {
	if err := draft.Validate(); err != nil {
		return models.Cocktail{}, err
	}
	body := cocktailRequest{
		CocktailName:      draft.Name,
		Description:       draft.Description,
		Ingredients:       draft.Ingredients,
		Instructions:      draft.Instructions,
		CocktailImagePath: draft.Image,
	}
	data, err := c.do(ctx, "update cocktail", http.MethodPut, "/api/cocktails/"+url.PathEscape(id.String()), body)
	if err != nil {
		return models.Cocktail{}, err
	}
	var payload cocktailPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.Cocktail{}, &TransportError{Op: "update cocktail", Err: err}
	}
	return payload.toModel(), nil
}

// DeleteCocktail deletes by canonical id.
func (c *Client) DeleteCocktail(ctx context.Context, id models.ID) error {
	_, err := c.do(ctx, "delete cocktail", http.MethodDelete, "/api/cocktails/"+url.PathEscape(id.String()), nil)
	return err
}

// ToggleLike flips the caller's like for the cocktail; the server answers
// with the authoritative counters.
func (c *Client) ToggleLike(ctx context.Context, id models.ID) (LikeResult, error) {
	data, err := c.do(ctx, "toggle like", http.MethodPost, "/api/cocktails/"+url.PathEscape(id.String())+"/likes", nil)
	if err != nil {
		return LikeResult{}, err
	}
	var result LikeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return LikeResult{}, &TransportError{Op: "toggle like", Err: err}
	}
	return result, nil
}

// CheckUsernameExists asks the service whether a member id is taken.
func (c *Client) CheckUsernameExists(ctx context.Context, username string) (bool, error) {
	path := "/api/members/check-memberId?memberId=" + url.QueryEscape(username)
	data, err := c.do(ctx, "check username", http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}
	var payload availabilityPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return false, &TransportError{Op: "check username", Err: err}
	}
	return !payload.Available, nil
}

// Signup registers a member and returns the server-issued identity.
func (c *Client) Signup(ctx context.Context, username, password, nickname, email string) (models.User, error) {
	body := signupRequest{MemberID: username, Password: password, Nickname: nickname, Email: email}
	data, err := c.do(ctx, "signup", http.MethodPost, "/api/members", body)
	if err != nil {
		return models.User{}, err
	}
	var payload memberPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.User{}, &TransportError{Op: "signup", Err: err}
	}
	return payload.toModel(), nil
}

// Login verifies credentials and returns the member identity.
func (c *Client) Login(ctx context.Context, username, password string) (models.User, error) {
	body := loginRequest{MemberID: username, Password: password}
	data, err := c.do(ctx, "login", http.MethodPost, "/api/members/login", body)
	if err != nil {
		return models.User{}, err
	}
	var payload memberPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.User{}, &TransportError{Op: "login", Err: err}
	}
	return payload.toModel(), nil
}

// do performs one request/response cycle: encode the body, attach the
// identity header, decode the envelope and map every failure to a
// TransportError. The raw data field is returned for the caller to decode.
func (c *Client) do(ctx context.Context, op, method, path string, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if no := c.memberNo(); no != "" {
		req.Header.Set(memberNoHeader, no)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		transportErr := &TransportError{Op: op, Err: err}
		log.Printf("api client: %v", transportErr)
		return nil, transportErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		transportErr := &TransportError{Op: op, Status: resp.StatusCode, Err: err}
		log.Printf("api client: %v", transportErr)
		return nil, transportErr
	}

	var env envelope
	if len(data) > 0 {
		// A non-JSON error body still maps to a transport failure below.
		_ = json.Unmarshal(data, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		transportErr := &TransportError{Op: op, Status: resp.StatusCode, Message: env.Message}
		log.Printf("api client: %v", transportErr)
		return nil, transportErr
	}
	return env.Data, nil
}
