package email

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/vegasq/agenttools/tools"
)

// sendViaGmail sends the message through the Gmail API using a Bearer
// token. The sender is optional; Gmail defaults to the authenticated user.
func (c *Client) sendViaGmail(accessToken string, to []string, subject, html, from string, cc, bcc []string) tools.Result {
	raw := base64.URLEncoding.EncodeToString(buildMIME(to, subject, html, from, cc, bcc))

	body, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return tools.Errorf("Email send failed: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost,
		c.gmailBaseURL+"/gmail/v1/users/me/messages/send", bytes.NewReader(body))
	if err != nil {
		return tools.Errorf("Email send failed: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tools.Errorf("Email send failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return tools.ErrorWithHelp(
			"Gmail token expired or invalid",
			"Re-authorize Gmail for this agent")
	}
	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return tools.Errorf("Gmail API error (HTTP %d): %s", resp.StatusCode, string(text))
	}

	var data struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return tools.Errorf("Email send failed: %v", err)
	}

	return tools.Success(map[string]interface{}{
		"provider": "gmail",
		"id":       data.ID,
		"to":       to,
		"subject":  subject,
	})
}

// buildMIME assembles a multipart/alternative message with a single HTML
// part, the shape the Gmail API expects in the raw field.
func buildMIME(to []string, subject, html, from string, cc, bcc []string) []byte {
	const boundary = "agenttools-alt-boundary"

	var b strings.Builder
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	if from != "" {
		b.WriteString("From: " + from + "\r\n")
	}
	if len(cc) > 0 {
		b.WriteString("Cc: " + strings.Join(cc, ", ") + "\r\n")
	}
	if len(bcc) > 0 {
		b.WriteString("Bcc: " + strings.Join(bcc, ", ") + "\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=\"" + boundary + "\"\r\n")
	b.WriteString("\r\n")
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")
	b.WriteString("--" + boundary + "--\r\n")

	return []byte(b.String())
}
