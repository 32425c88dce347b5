package email

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/vegasq/agenttools/tools"
)

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	CC      []string `json:"cc,omitempty"`
	BCC     []string `json:"bcc,omitempty"`
}

// sendViaResend sends the message through the Resend REST API.
func (c *Client) sendViaResend(apiKey string, to []string, subject, html, from string, cc, bcc []string) tools.Result {
	body, err := json.Marshal(resendPayload{
		From:    from,
		To:      to,
		Subject: subject,
		HTML:    html,
		CC:      cc,
		BCC:     bcc,
	})
	if err != nil {
		return tools.Errorf("Email send failed: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.resendBaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return tools.Errorf("Email send failed: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tools.Errorf("Email send failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return tools.Errorf("Resend API error: HTTP %d: %s", resp.StatusCode, string(text))
	}

	var data struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return tools.Errorf("Email send failed: %v", err)
	}

	return tools.Success(map[string]interface{}{
		"provider": "resend",
		"id":       data.ID,
		"to":       to,
		"subject":  subject,
	})
}
