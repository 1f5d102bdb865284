package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// MaxAmount is the most questions Open Trivia DB returns per call.
const MaxAmount = 50

var (
	// ErrNoResults means the database has fewer questions than requested
	// for the given filters.
	ErrNoResults = errors.New("opentdb: not enough questions for query")
	// ErrInvalidQuery means the API rejected the query parameters.
	ErrInvalidQuery = errors.New("opentdb: invalid query parameter")
	// ErrRateLimited means more than one request per 5 seconds came from
	// this address.
	ErrRateLimited = errors.New("opentdb: rate limited")
)

// Open Trivia DB response codes.
const (
	codeSuccess       = 0
	codeNoResults     = 1
	codeInvalidParam  = 2
	codeTokenNotFound = 3
	codeTokenEmpty    = 4
	codeRateLimit     = 5
)

// Query selects questions to fetch. Empty Difficulty or Type means any.
type Query struct {
	Amount     int
	Difficulty string
	Type       string
}

func (q Query) validate() error {
	if q.Amount < 1 || q.Amount > MaxAmount {
		return fmt.Errorf("%w: amount must be between 1 and %d, got %d", ErrInvalidQuery, MaxAmount, q.Amount)
	}
	switch q.Difficulty {
	case "", "easy", "medium", "hard":
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidQuery, q.Difficulty)
	}
	return nil
}

// OpenTDBClient pulls trivia questions from the Open Trivia DB for import.
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenTDBClient(baseURL string, httpClient *http.Client) *OpenTDBClient {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &OpenTDBClient{baseURL: baseURL, httpClient: httpClient}
}

// OpenTDBQuestion is one result as returned by the API. Text fields are
// HTML-entity encoded.
type OpenTDBQuestion struct {
	Category        string   `json:"category"`
	Type            string   `json:"type"`
	Difficulty      string   `json:"difficulty"`
	Question        string   `json:"question"`
	CorrectAnswer   string   `json:"correct_answer"`
	IncorrectAnswer []string `json:"incorrect_answers"`
}

type openTDBResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []OpenTDBQuestion `json:"results"`
}

// Fetch runs q against the API. Response codes other than success map onto
// ErrNoResults, ErrInvalidQuery or ErrRateLimited.
func (c *OpenTDBClient) Fetch(ctx context.Context, q Query) ([]OpenTDBQuestion, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("amount", strconv.Itoa(q.Amount))
	if q.Difficulty != "" {
		values.Set("difficulty", q.Difficulty)
	}
	if q.Type != "" {
		values.Set("type", q.Type)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api.php?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opentdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("opentdb non-2xx: %d", resp.StatusCode)
	}

	var payload openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode opentdb response: %w", err)
	}
	if err := responseError(payload.ResponseCode); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func responseError(code int) error {
	switch code {
	case codeSuccess:
		return nil
	case codeNoResults:
		return ErrNoResults
	case codeInvalidParam:
		return ErrInvalidQuery
	case codeRateLimit:
		return ErrRateLimited
	case codeTokenNotFound, codeTokenEmpty:
		// Session tokens are never sent, so these mean the API changed.
		return fmt.Errorf("opentdb: unexpected session token response %d", code)
	default:
		return fmt.Errorf("opentdb: unknown response code %d", code)
	}
}
