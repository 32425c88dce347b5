package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultInitTimeout bounds how long Connect waits for the server to
// answer the initialize request.
const DefaultInitTimeout = 10 * time.Second

// ClientConfig describes one MCP server connection.
type ClientConfig struct {
	Name        string
	Transport   string // only "stdio" is supported
	Command     string
	Args        []string
	Env         []string
	InitTimeout time.Duration
}

// Client talks to a single MCP server over a stdio subprocess.
type Client struct {
	config ClientConfig
	log    *logrus.Entry

	cmd   *exec.Cmd
	stdin io.WriteCloser

	mu      sync.Mutex
	pending map[string]chan *response
	closed  chan struct{}
}

// NewClient creates a client for the given server configuration. Call
// Connect before issuing requests.
func NewClient(config ClientConfig) *Client {
	if config.InitTimeout <= 0 {
		config.InitTimeout = DefaultInitTimeout
	}
	return &Client{
		config:  config,
		log:     logrus.WithField("mcp_server", config.Name),
		pending: make(map[string]chan *response),
		closed:  make(chan struct{}),
	}
}

// Connect launches the server subprocess and performs the MCP handshake.
// It fails when the session does not initialize within InitTimeout.
func (c *Client) Connect() error {
	if c.config.Transport != "stdio" {
		return fmt.Errorf("unsupported transport: %s", c.config.Transport)
	}
	if c.config.Command == "" {
		return fmt.Errorf("command is required for stdio transport")
	}

	cmd := exec.Command(c.config.Command, c.config.Args...)
	cmd.Env = append(os.Environ(), c.config.Env...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	c.cmd = cmd
	c.stdin = stdin

	go c.readLoop(stdout)

	initParams := map[string]interface{}{
		"protocolVersion": ProtocolVersion,
		"capabilities":    map[string]interface{}{},
		"clientInfo": map[string]interface{}{
			"name":    c.config.Name,
			"version": "1.0.0",
		},
	}
	if _, err := c.call("initialize", initParams, c.config.InitTimeout); err != nil {
		_ = c.Close()
		return err
	}

	// The handshake completes with an initialized notification.
	if err := c.notify("notifications/initialized"); err != nil {
		_ = c.Close()
		return err
	}
	c.log.Debug("session initialized")
	return nil
}

// ListTools returns the tools the server advertises.
func (c *Client) ListTools() ([]ToolInfo, error) {
	raw, err := c.call("tools/list", map[string]interface{}{}, c.config.InitTimeout)
	if err != nil {
		return nil, err
	}
	var result struct {
		Tools []ToolInfo `json:"tools"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("malformed tools/list result: %w", err)
	}
	return result.Tools, nil
}

// CallTool invokes a tool and returns the decoded result payload from the
// first text content block.
func (c *Client) CallTool(name string, args map[string]interface{}) (map[string]interface{}, error) {
	raw, err := c.call("tools/call", map[string]interface{}{
		"name":      name,
		"arguments": args,
	}, c.config.InitTimeout)
	if err != nil {
		return nil, err
	}

	var result callResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("malformed tools/call result: %w", err)
	}
	if len(result.Content) == 0 {
		return nil, fmt.Errorf("tool %s returned no content", name)
	}

	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil {
		return nil, fmt.Errorf("tool %s returned non-JSON content: %w", name, err)
	}
	return payload, nil
}

// Close shuts down the subprocess and fails all pending requests.
func (c *Client) Close() error {
	c.mu.Lock()
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
	c.mu.Unlock()

	if c.stdin != nil {
		_ = c.stdin.Close()
	}
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
		_ = c.cmd.Wait()
	}
	return nil
}

// call sends a request and waits for its response or the timeout.
func (c *Client) call(method string, params interface{}, timeout time.Duration) (json.RawMessage, error) {
	id := uuid.NewString()
	idJSON, _ := json.Marshal(id)
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	ch := make(chan *response, 1)
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := c.send(&request{JSONRPC: "2.0", ID: idJSON, Method: method, Params: paramsJSON}); err != nil {
		return nil, err
	}

	select {
	case resp := <-ch:
		if resp.Error != nil {
			return nil, fmt.Errorf("%s failed: %s", method, resp.Error.Message)
		}
		raw, err := json.Marshal(resp.Result)
		if err != nil {
			return nil, err
		}
		return raw, nil
	case <-time.After(timeout):
		if method == "initialize" {
			return nil, fmt.Errorf("timed out waiting for MCP stdio session to initialize")
		}
		return nil, fmt.Errorf("timed out waiting for %s response", method)
	case <-c.closed:
		return nil, fmt.Errorf("connection closed")
	}
}

func (c *Client) notify(method string) error {
	return c.send(&request{JSONRPC: "2.0", Method: method})
}

func (c *Client) send(req *request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := c.stdin.Write(data); err != nil {
		return fmt.Errorf("failed to write to MCP server: %w", err)
	}
	return nil
}

// readLoop routes responses to their pending requests until the pipe
// closes.
func (c *Client) readLoop(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var resp response
		if err := json.Unmarshal(line, &resp); err != nil {
			c.log.WithError(err).Warn("dropping malformed message from server")
			continue
		}
		if resp.ID == nil {
			// Server-side notification; nothing waits on it.
			continue
		}

		var id string
		if err := json.Unmarshal(resp.ID, &id); err != nil {
			continue
		}
		c.mu.Lock()
		ch, ok := c.pending[id]
		c.mu.Unlock()
		if ok {
			ch <- &resp
		}
	}
}
