package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultEndpoint = "http://localhost:8080/mcp/stream"

// Walks the browse, filter and apply flow against a running server
func main() {
	ctx := context.Background()

	endpoint := os.Getenv("MCP_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "job-browser-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	listing, ok := call(ctx, session, "list_jobs", map[string]any{"page": 1})
	if !ok {
		return
	}
	call(ctx, session, "set_page", map[string]any{"page": 2})
	call(ctx, session, "filter_jobs", map[string]any{"title": "chef"})
	call(ctx, session, "filter_jobs", map[string]any{"title": ""})

	jobID := firstJobID(listing)
	if jobID == "" {
		fmt.Println("\nno jobs listed, skipping application flow")
		return
	}
	testApplication(ctx, session, jobID)

	fmt.Println("\nAll tests completed")
}

func testApplication(ctx context.Context, session *mcp.ClientSession, jobID string) {
	fmt.Println("\nTEST: application flow")

	if _, ok := call(ctx, session, "open_job", map[string]any{"job_id": jobID}); !ok {
		return
	}
	if _, ok := call(ctx, session, "start_application", map[string]any{}); !ok {
		return
	}

	cv := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 test client cv"))
	call(ctx, session, "submit_application", map[string]any{
		"name":             "Test Client",
		"email":            "test.client@example.com",
		"phone":            "+1 555 0100",
		"country":          "US",
		"education":        "BSc",
		"current_position": "Line Cook",
		"current_company":  "Test Kitchen",
		"cv_file": map[string]any{
			"name":           "cv.pdf",
			"content_type":   "application/pdf",
			"content_base64": cv,
		},
	})
	call(ctx, session, "list_applications", map[string]any{})
	call(ctx, session, "close_job", map[string]any{})
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) (*mcp.CallToolResult, bool) {
	fmt.Printf("\n%s %v\n", name, args)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return nil, false
	}
	printResult(result)
	return result, !result.IsError
}

func firstJobID(res *mcp.CallToolResult) string {
	if res == nil || res.StructuredContent == nil {
		return ""
	}
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return ""
	}
	var view struct {
		Jobs []struct {
			ID string `json:"id"`
		} `json:"jobs"`
	}
	if err := json.Unmarshal(raw, &view); err != nil || len(view.Jobs) == 0 {
		return ""
	}
	return view.Jobs[0].ID
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
