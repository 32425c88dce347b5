package websearch

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vegasq/agenttools/tools"
)

const braveMaxResults = 20

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// searchBrave executes a search against the Brave Search API.
func (c *Client) searchBrave(q string, opts Options, apiKey string) tools.Result {
	count := opts.NumResults
	if count > braveMaxResults {
		count = braveMaxResults
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("count", strconv.Itoa(count))
	params.Set("country", opts.Country)

	req, err := http.NewRequest(http.MethodGet, c.braveBaseURL+"/web/search?"+params.Encode(), nil)
	if err != nil {
		return tools.Errorf("Search failed: %v", err)
	}
	req.Header.Set("X-Subscription-Token", apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return tools.Errorf("Invalid Brave API key")
	case resp.StatusCode == http.StatusTooManyRequests:
		return tools.Errorf("Brave rate limit exceeded. Try again later.")
	case resp.StatusCode != http.StatusOK:
		return tools.Errorf("Brave API request failed: HTTP %d", resp.StatusCode)
	}

	var data braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return tools.Errorf("Search failed: %v", err)
	}

	results := make([]SearchResult, 0, opts.NumResults)
	for _, item := range data.Web.Results {
		if len(results) >= opts.NumResults {
			break
		}
		results = append(results, SearchResult{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: item.Description,
		})
	}

	return tools.Success(map[string]interface{}{
		"query":    q,
		"results":  results,
		"total":    len(results),
		"provider": "brave",
	})
}

func networkError(err error) tools.Result {
	if urlErr, ok := err.(*url.Error); ok && urlErr.Timeout() {
		return tools.Errorf("Search request timed out")
	}
	return tools.Errorf("Network error: %v", err)
}
