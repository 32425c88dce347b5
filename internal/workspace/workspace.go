// Package workspace resolves user-supplied file paths into a sandboxed
// per-session directory.
//
// Layout: <root>/<workspace>/<agent>/<session>/<path>. The resolver is the
// single traversal gate; callers treat its output as trusted.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRoot is used when WORKSPACE_ROOT is not set.
const DefaultRoot = "./workspaces"

// Root returns the sandbox root directory.
func Root() string {
	if root := os.Getenv("WORKSPACE_ROOT"); root != "" {
		return root
	}
	return DefaultRoot
}

// Resolve maps raw to an absolute path inside the session sandbox.
//
// The ids and the cleaned path are all checked: empty ids, ids containing
// separators, and paths escaping the session directory are rejected.
func Resolve(raw, workspaceID, agentID, sessionID string) (string, error) {
	for _, id := range []string{workspaceID, agentID, sessionID} {
		if id == "" {
			return "", fmt.Errorf("workspace, agent, and session ids are required")
		}
		if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
			return "", fmt.Errorf("invalid id: %s", id)
		}
	}
	if raw == "" {
		return "", fmt.Errorf("path is required")
	}

	base, err := filepath.Abs(filepath.Join(Root(), workspaceID, agentID, sessionID))
	if err != nil {
		return "", fmt.Errorf("failed to resolve sandbox root: %w", err)
	}

	resolved := filepath.Join(base, filepath.Clean("/"+raw))
	rel, err := filepath.Rel(base, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes workspace sandbox: %s", raw)
	}

	return resolved, nil
}
