// Package credentials abstracts credential lookup for tool providers, so
// tools work the same whether keys come from the hosting framework's
// credential store or from the process environment.
package credentials

import "os"

// Store resolves a logical credential name to a secret. Get returns ""
// when the credential is not configured.
type Store interface {
	Get(name string) string
}

// Logical credential names used by the tools.
const (
	BraveSearch  = "brave_search"
	GoogleSearch = "google_search"
	GoogleCSE    = "google_cse"
	Google       = "google"
	Resend       = "resend"
)

// envVars maps logical names to their environment variables.
var envVars = map[string]string{
	BraveSearch:  "BRAVE_SEARCH_API_KEY",
	GoogleSearch: "GOOGLE_API_KEY",
	GoogleCSE:    "GOOGLE_CSE_ID",
	Google:       "GOOGLE_ACCESS_TOKEN",
	Resend:       "RESEND_API_KEY",
}

// EnvStore reads credentials from the process environment.
type EnvStore struct{}

// Get implements Store.
func (EnvStore) Get(name string) string {
	env, ok := envVars[name]
	if !ok {
		return ""
	}
	return os.Getenv(env)
}

// Static is a fixed in-memory store, useful in tests and embedding hosts.
type Static map[string]string

// Get implements Store.
func (s Static) Get(name string) string {
	return s[name]
}
