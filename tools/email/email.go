// Package email implements the send-email tool over the Resend and Gmail
// APIs.
//
// Recipient fields accept either a single address or a list, mirroring the
// tool's wire contract. Setting EMAIL_OVERRIDE_TO redirects all outbound
// mail to one address for testing, dropping cc/bcc and prefixing the
// subject with the original recipients.
package email

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vegasq/agenttools/internal/credentials"
	"github.com/vegasq/agenttools/tools"
)

const (
	defaultResendBaseURL = "https://api.resend.com"
	defaultGmailBaseURL  = "https://gmail.googleapis.com"

	// RFC 2822 line-length ceiling for the subject header.
	maxSubjectLength = 998

	requestTimeout = 30 * time.Second
)

// SendRequest describes one outbound email. To, CC, and BCC accept a
// string or a list of strings.
type SendRequest struct {
	To       interface{}
	CC       interface{}
	BCC      interface{}
	Subject  string
	HTML     string
	Provider string // "resend" or "gmail"
	From     string
}

// Client sends email. Construct with New.
type Client struct {
	httpClient    *http.Client
	creds         credentials.Store
	resendBaseURL string
	gmailBaseURL  string
}

// New returns an email client backed by the given credential store.
func New(creds credentials.Store) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: requestTimeout},
		creds:         creds,
		resendBaseURL: defaultResendBaseURL,
		gmailBaseURL:  defaultGmailBaseURL,
	}
}

// Send validates the request, selects the provider, and sends the message.
// Success payload: {success, provider, id, to, subject}.
func (c *Client) Send(req SendRequest) tools.Result {
	from := req.From
	if from == "" {
		from = os.Getenv("EMAIL_FROM")
	}

	to := normalizeRecipients(req.To)
	if len(to) == 0 {
		return tools.Errorf("At least one recipient email is required")
	}
	if req.Subject == "" || len(req.Subject) > maxSubjectLength {
		return tools.Errorf("Subject must be 1-%d characters", maxSubjectLength)
	}
	if req.HTML == "" {
		return tools.Errorf("Email body (html) is required")
	}

	cc := normalizeRecipients(req.CC)
	bcc := normalizeRecipients(req.BCC)
	subject := req.Subject

	// Testing override: redirect all recipients to a single address.
	if override := os.Getenv("EMAIL_OVERRIDE_TO"); override != "" {
		subject = "[TEST -> " + strings.Join(to, ", ") + "] " + subject
		to = []string{override}
		cc = nil
		bcc = nil
	}

	switch req.Provider {
	case "resend":
		// Resend always requires a sender; Gmail defaults to the
		// authenticated user.
		if from == "" {
			return tools.ErrorWithHelp(
				"Sender email is required",
				"Pass from_email or set EMAIL_FROM environment variable")
		}
		apiKey := c.creds.Get(credentials.Resend)
		if apiKey == "" {
			return tools.ErrorWithHelp(
				"Resend credentials not configured",
				"Set RESEND_API_KEY environment variable. Get a key at https://resend.com/api-keys")
		}
		return c.sendViaResend(apiKey, to, subject, req.HTML, from, cc, bcc)
	case "gmail":
		token := c.creds.Get(credentials.Google)
		if token == "" {
			return tools.ErrorWithHelp(
				"Gmail credentials not configured",
				"Connect Gmail via your agent platform account")
		}
		return c.sendViaGmail(token, to, subject, req.HTML, from, cc, bcc)
	default:
		return tools.Errorf("Unsupported provider: %s", req.Provider)
	}
}

// normalizeRecipients accepts a string, []string, or []interface{} of
// strings and returns the non-blank entries, or nil when none remain.
func normalizeRecipients(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	case []string:
		var out []string
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	case []interface{}:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
