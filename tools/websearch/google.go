package websearch

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vegasq/agenttools/tools"
)

const googleMaxResults = 10

type googleResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// searchGoogle executes a search against the Google Custom Search API.
func (c *Client) searchGoogle(q string, opts Options, apiKey, cseID string) tools.Result {
	num := opts.NumResults
	if num > googleMaxResults {
		num = googleMaxResults
	}

	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("cx", cseID)
	params.Set("q", q)
	params.Set("num", strconv.Itoa(num))
	params.Set("lr", "lang_"+opts.Language)
	params.Set("gl", opts.Country)

	resp, err := c.httpClient.Get(c.googleBaseURL + "?" + params.Encode())
	if err != nil {
		return networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return tools.Errorf("Invalid Google API key")
	case resp.StatusCode == http.StatusForbidden:
		return tools.Errorf("Google API key not authorized or quota exceeded")
	case resp.StatusCode == http.StatusTooManyRequests:
		return tools.Errorf("Google rate limit exceeded. Try again later.")
	case resp.StatusCode != http.StatusOK:
		return tools.Errorf("Google API request failed: HTTP %d", resp.StatusCode)
	}

	var data googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return tools.Errorf("Search failed: %v", err)
	}

	results := make([]SearchResult, 0, opts.NumResults)
	for _, item := range data.Items {
		if len(results) >= opts.NumResults {
			break
		}
		results = append(results, SearchResult{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
	}

	return tools.Success(map[string]interface{}{
		"query":    q,
		"results":  results,
		"total":    len(results),
		"provider": "google",
	})
}
