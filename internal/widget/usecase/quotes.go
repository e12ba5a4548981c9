package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"kanflow-backend/internal/widget/domain"
)

const defaultQuotesBaseURL = "https://zenquotes.io"

// QuotesClient fetches a random quote from the ZenQuotes API
type QuotesClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewQuotesClient creates a new quotes client. An empty baseURL uses the
// public ZenQuotes endpoint.
func NewQuotesClient(baseURL string) *QuotesClient {
	if baseURL == "" {
		baseURL = defaultQuotesBaseURL
	}
	return &QuotesClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Random fetches one random quote
func (c *QuotesClient) Random(ctx context.Context) (*domain.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/random", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var payload []struct {
		Q string `json:"q"`
		A string `json:"a"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("quote API returned empty response")
	}

	return &domain.Quote{Text: payload[0].Q, Author: payload[0].A}, nil
}

// fallbackQuotes keeps the widget working when the quote API is unreachable
var fallbackQuotes = []domain.Quote{
	{Text: "The secret of getting ahead is getting started.", Author: "Mark Twain"},
	{Text: "It always seems impossible until it is done.", Author: "Nelson Mandela"},
	{Text: "Well done is better than well said.", Author: "Benjamin Franklin"},
	{Text: "Quality is not an act, it is a habit.", Author: "Aristotle"},
}

func (u *widgetUsecase) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	if u.quotes != nil {
		quote, err := u.quotes.Random(ctx)
		if err == nil {
			return quote, nil
		}
		log.Printf("[Widget] quote fetch failed, using fallback: %v", err)
	}
	quote := fallbackQuotes[rand.Intn(len(fallbackQuotes))]
	return &quote, nil
}
