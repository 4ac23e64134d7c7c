package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// tokenExpiryBuffer refreshes the access token this long before the
// upstream expiry so in-flight requests never ride an expiring token.
const tokenExpiryBuffer = 60 * time.Second

type Config struct {
	BaseURLV1    string
	BaseURLV2    string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client talks to the Amadeus self-service APIs with a process-lifetime
// cached client-credentials token. The token fields are guarded for
// concurrent access only; refresh itself is not single-flighted, so
// concurrent callers during a refresh may each fetch a token. The last
// write wins, which is harmless here.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type SearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Children      int
	Infants       int
	TravelClass   string
	Currency      string
	MaxPrice      int
	MaxResults    int
}

// SearchFlightOffers calls the v2 flight-offers search endpoint.
// Exactly one attempt; any failure bubbles up to the orchestrator.
func (c *Client) SearchFlightOffers(ctx context.Context, params SearchParams) (OffersResponse, error) {
	query := url.Values{}
	query.Set("originLocationCode", params.Origin)
	query.Set("destinationLocationCode", params.Destination)
	query.Set("departureDate", params.DepartureDate)
	query.Set("adults", strconv.Itoa(params.Adults))
	query.Set("currencyCode", params.Currency)
	query.Set("max", strconv.Itoa(params.MaxResults))

	if params.ReturnDate != "" {
		query.Set("returnDate", params.ReturnDate)
	}
	if params.Children > 0 {
		query.Set("children", strconv.Itoa(params.Children))
	}
	if params.Infants > 0 {
		query.Set("infants", strconv.Itoa(params.Infants))
	}
	if params.TravelClass != "" {
		query.Set("travelClass", params.TravelClass)
	}
	if params.MaxPrice > 0 {
		query.Set("maxPrice", strconv.Itoa(params.MaxPrice))
	}

	var response OffersResponse
	if err := c.get(ctx, c.cfg.BaseURLV2+"/shopping/flight-offers", query, &response); err != nil {
		return OffersResponse{}, fmt.Errorf("flight offers search: %w", err)
	}

	return response, nil
}

// SearchLocations calls the v1 airport & city lookup endpoint.
func (c *Client) SearchLocations(ctx context.Context, keyword string) (LocationsResponse, error) {
	query := url.Values{}
	query.Set("subType", "CITY,AIRPORT")
	query.Set("keyword", keyword)

	var response LocationsResponse
	if err := c.get(ctx, c.cfg.BaseURLV1+"/reference-data/locations", query, &response); err != nil {
		return LocationsResponse{}, fmt.Errorf("location search: %w", err)
	}

	return response, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return fmt.Errorf("get access token: %w", err)
	}

	requestURL := endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("request failed: %s %s", resp.Status, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// accessToken returns the cached token while it is still at least
// tokenExpiryBuffer away from expiry, otherwise fetches a fresh one.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	expiry := c.tokenExpiry
	c.mu.Unlock()

	if token != "" && time.Now().Before(expiry.Add(-tokenExpiryBuffer)) {
		return token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed: %s", resp.Status)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	c.mu.Lock()
	c.token = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	c.mu.Unlock()

	return tokenResp.AccessToken, nil
}
