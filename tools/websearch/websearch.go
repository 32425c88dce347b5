// Package websearch implements the web search tool over the Brave Search
// and Google Custom Search APIs.
//
// Provider "auto" prefers Brave when its key is configured, then Google.
// Successful responses are memoized in a bounded TTL cache keyed by the
// full parameter set; error responses are never cached.
package websearch

import (
	"net/http"
	"time"

	"github.com/vegasq/agenttools/internal/credentials"
	"github.com/vegasq/agenttools/tools"
)

const (
	defaultBraveBaseURL  = "https://api.search.brave.com/res/v1"
	defaultGoogleBaseURL = "https://www.googleapis.com/customsearch/v1"

	maxQueryLength = 500
	requestTimeout = 30 * time.Second
)

// Options controls a single search call. Zero values take the defaults:
// 10 results, country "us", language "en", provider "auto".
type Options struct {
	NumResults int
	Country    string
	Language   string
	Provider   string
}

// SearchResult is one normalized search hit.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Client performs web searches. Construct with New; the zero value is not
// usable.
type Client struct {
	httpClient    *http.Client
	creds         credentials.Store
	cache         *cache
	braveBaseURL  string
	googleBaseURL string
}

// New returns a search client backed by the given credential store.
// Cache bounds come from WEB_SEARCH_CACHE_TTL_SECONDS and
// WEB_SEARCH_CACHE_MAX_SIZE.
func New(creds credentials.Store) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: requestTimeout},
		creds:         creds,
		cache:         newCacheFromEnv(),
		braveBaseURL:  defaultBraveBaseURL,
		googleBaseURL: defaultGoogleBaseURL,
	}
}

// Search runs a web search and returns the uniform result payload:
// {query, results, total, provider} on success.
func (c *Client) Search(q string, opts Options) tools.Result {
	if q == "" || len(q) > maxQueryLength {
		return tools.Errorf("Query must be 1-%d characters", maxQueryLength)
	}

	if opts.NumResults <= 0 {
		opts.NumResults = 10
	}
	if opts.Country == "" {
		opts.Country = "us"
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.Provider == "" {
		opts.Provider = "auto"
	}

	googleKey := c.creds.Get(credentials.GoogleSearch)
	googleCSE := c.creds.Get(credentials.GoogleCSE)
	braveKey := c.creds.Get(credentials.BraveSearch)
	googleAvailable := googleKey != "" && googleCSE != ""
	braveAvailable := braveKey != ""

	switch opts.Provider {
	case "auto":
		if braveAvailable {
			opts.Provider = "brave"
		} else if googleAvailable {
			opts.Provider = "google"
		} else {
			return tools.ErrorWithHelp(
				"No search credentials configured",
				"Set either GOOGLE_API_KEY+GOOGLE_CSE_ID or BRAVE_SEARCH_API_KEY")
		}
	case "google":
		if !googleAvailable {
			return tools.ErrorWithHelp(
				"Google credentials not configured",
				"Set GOOGLE_API_KEY and GOOGLE_CSE_ID environment variables")
		}
	case "brave":
		if !braveAvailable {
			return tools.ErrorWithHelp(
				"Brave credentials not configured",
				"Set BRAVE_SEARCH_API_KEY environment variable")
		}
	default:
		return tools.Errorf("Unsupported provider: %s", opts.Provider)
	}

	key := cacheKey(opts.Provider, q, opts.NumResults, opts.Country, opts.Language)
	if cached, ok := c.cache.get(key); ok {
		return cached
	}

	var result tools.Result
	if opts.Provider == "google" {
		result = c.searchGoogle(q, opts, googleKey, googleCSE)
	} else {
		result = c.searchBrave(q, opts, braveKey)
	}

	if !result.IsError() {
		c.cache.set(key, result)
	}
	return result
}
