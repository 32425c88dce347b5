package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vegasq/agenttools/internal/credentials"
	"github.com/vegasq/agenttools/mcp"
	"github.com/vegasq/agenttools/tools"
	"github.com/vegasq/agenttools/tools/email"
	"github.com/vegasq/agenttools/tools/parquet"
	"github.com/vegasq/agenttools/tools/websearch"
)

const serverVersion = "1.0.0"

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	envFile := fs.String("env-file", "", "Load environment variables from this file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	_ = fs.Parse(args)

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load env file: %v\n", err)
			os.Exit(1)
		}
	} else {
		// Best effort; a missing .env is fine.
		_ = godotenv.Load()
	}

	// stdout carries the protocol, so logs go to stderr.
	logrus.SetOutput(os.Stderr)
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	server := mcp.NewServer("agenttools", serverVersion)
	if err := registerTools(server); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logrus.Info("starting MCP stdio server")
	if err := server.ServeStdio(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func registerTools(server *mcp.Server) error {
	creds := credentials.EnvStore{}
	searchClient := websearch.New(creds)
	emailClient := email.New(creds)

	register := []mcp.Tool{
		{
			Name:        "parquet_read",
			Description: "Read a Parquet file and return its contents. Supports filters, group by, and ordering via structured parameters.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":             map[string]interface{}{"type": "string"},
				"workspace_id":     map[string]interface{}{"type": "string"},
				"agent_id":         map[string]interface{}{"type": "string"},
				"session_id":       map[string]interface{}{"type": "string"},
				"limit":            map[string]interface{}{"type": "integer"},
				"offset":           map[string]interface{}{"type": "integer"},
				"selected_columns": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"filters":          map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "object"}},
				"group_by":         map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"order_by":         map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "object"}},
				"aggregates":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "object"}},
			}, "path", "workspace_id", "agent_id", "session_id"),
			Handler: handleParquetRead,
		},
		{
			Name:        "parquet_write",
			Description: "Write data to a Parquet file.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":         map[string]interface{}{"type": "string"},
				"workspace_id": map[string]interface{}{"type": "string"},
				"agent_id":     map[string]interface{}{"type": "string"},
				"session_id":   map[string]interface{}{"type": "string"},
				"columns":      map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"rows":         map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "object"}},
			}, "path", "workspace_id", "agent_id", "session_id", "columns", "rows"),
			Handler: handleParquetWrite,
		},
		{
			Name:        "parquet_info",
			Description: "Return metadata about a Parquet file.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":         map[string]interface{}{"type": "string"},
				"workspace_id": map[string]interface{}{"type": "string"},
				"agent_id":     map[string]interface{}{"type": "string"},
				"session_id":   map[string]interface{}{"type": "string"},
			}, "path", "workspace_id", "agent_id", "session_id"),
			Handler: handleParquetInfo,
		},
		{
			Name:        "web_search",
			Description: "Search the web for information. Providers: auto (Brave then Google), brave, google.",
			InputSchema: objectSchema(map[string]interface{}{
				"query":       map[string]interface{}{"type": "string"},
				"num_results": map[string]interface{}{"type": "integer"},
				"country":     map[string]interface{}{"type": "string"},
				"language":    map[string]interface{}{"type": "string"},
				"provider":    map[string]interface{}{"type": "string", "enum": []string{"auto", "brave", "google"}},
			}, "query"),
			Handler: func(args map[string]interface{}) tools.Result {
				return searchClient.Search(argString(args, "query"), websearch.Options{
					NumResults: argInt(args, "num_results"),
					Country:    argString(args, "country"),
					Language:   argString(args, "language"),
					Provider:   argString(args, "provider"),
				})
			},
		},
		{
			Name:        "send_email",
			Description: "Send an email. Providers: resend (RESEND_API_KEY), gmail (OAuth2 access token).",
			InputSchema: objectSchema(map[string]interface{}{
				"to":         map[string]interface{}{"type": []string{"string", "array"}},
				"subject":    map[string]interface{}{"type": "string"},
				"html":       map[string]interface{}{"type": "string"},
				"provider":   map[string]interface{}{"type": "string", "enum": []string{"resend", "gmail"}},
				"from_email": map[string]interface{}{"type": "string"},
				"cc":         map[string]interface{}{"type": []string{"string", "array"}},
				"bcc":        map[string]interface{}{"type": []string{"string", "array"}},
			}, "to", "subject", "html", "provider"),
			Handler: func(args map[string]interface{}) tools.Result {
				return emailClient.Send(email.SendRequest{
					To:       args["to"],
					CC:       args["cc"],
					BCC:      args["bcc"],
					Subject:  argString(args, "subject"),
					HTML:     argString(args, "html"),
					Provider: argString(args, "provider"),
					From:     argString(args, "from_email"),
				})
			},
		},
	}

	for _, tool := range register {
		if err := server.Register(tool); err != nil {
			return err
		}
	}
	return nil
}

func handleParquetRead(args map[string]interface{}) tools.Result {
	opts := parquet.ReadOptions{
		Limit:   argIntPtr(args, "limit"),
		Offset:  argInt(args, "offset"),
		Columns: argStringList(args, "selected_columns"),
		GroupBy: argStringList(args, "group_by"),
	}

	var ok bool
	if opts.Filters, ok = decodeFilters(args["filters"]); !ok {
		return tools.Errorf("filters entries must be objects with column, op, and value")
	}
	if opts.OrderBy, ok = decodeOrderBy(args["order_by"]); !ok {
		return tools.Errorf("order_by entries must be objects with column and direction")
	}
	if opts.Aggregates, ok = decodeAggregates(args["aggregates"]); !ok {
		return tools.Errorf("aggregates entries must be objects with column, op, and alias")
	}

	return parquet.Read(
		argString(args, "path"),
		argString(args, "workspace_id"),
		argString(args, "agent_id"),
		argString(args, "session_id"),
		opts,
	)
}

func handleParquetWrite(args map[string]interface{}) tools.Result {
	rows, ok := decodeRows(args["rows"])
	if !ok {
		return tools.Errorf("rows entries must be objects")
	}
	return parquet.Write(
		argString(args, "path"),
		argString(args, "workspace_id"),
		argString(args, "agent_id"),
		argString(args, "session_id"),
		argStringList(args, "columns"),
		rows,
	)
}

func handleParquetInfo(args map[string]interface{}) tools.Result {
	return parquet.Info(
		argString(args, "path"),
		argString(args, "workspace_id"),
		argString(args, "agent_id"),
		argString(args, "session_id"),
	)
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
