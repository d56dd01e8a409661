package convert

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testMCPImpl = &mcp.Implementation{Name: "jatsgen-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	svc := testService(t)
	srv := mcp.NewServer(testMCPImpl, nil)
	svc.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if err := result.GetError(); err != nil {
		t.Fatalf("CallTool(%s) tool error: %v", name, err)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text
}

// --- jats_render ---

func TestMCP_Render(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "jats_render", map[string]any{
		"content": map[string]any{
			"titleEs":    "Estudio sobre riego",
			"abstractEs": "Resumen breve.",
		},
	})

	var resp struct {
		XML string `json:"xml"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(resp.XML, "Estudio sobre riego") {
		t.Error("XML missing title")
	}
	if !strings.Contains(resp.XML, "PENDIENTE: No se detectaron autores automáticamente") {
		t.Error("XML missing author placeholder comment")
	}
}

func TestMCP_Render_EmptyContent(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "jats_render", map[string]any{
		"content": map[string]any{},
	})

	var resp struct {
		XML string `json:"xml"`
	}
	json.Unmarshal([]byte(text), &resp)
	if !strings.Contains(resp.XML, "[TÍTULO PENDIENTE]") {
		t.Error("XML missing title placeholder")
	}
}

// --- jats_assess ---

func TestMCP_Assess(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "jats_assess", map[string]any{
		"content": map[string]any{
			"titleEs":    "Estudio sobre riego",
			"abstractEs": "Resumen breve.",
			"keywordsEs": []string{"riego", "agua"},
		},
	})

	var resp assessResp
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Score <= 0 || resp.Score >= 100 {
		t.Errorf("Score = %d, want partial score", resp.Score)
	}
	if resp.Tier == "" {
		t.Error("empty tier")
	}
	if !resp.Stats.TitleDetected || resp.Stats.KeywordsEsDetected != 2 {
		t.Errorf("stats = %+v", resp.Stats)
	}
	if !strings.Contains(resp.Report, "❌ CRÍTICO: Autores no detectados.") {
		t.Error("report missing critical issue")
	}
}

// --- jats_convert + jats_runs ---

func TestMCP_ConvertAndRuns(t *testing.T) {
	session := mcpSession(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "manuscrito.txt")
	if err := os.WriteFile(path, []byte(testManuscript), 0o644); err != nil {
		t.Fatal(err)
	}

	text := mcpCallTool(t, session, "jats_convert", map[string]any{"path": path})

	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("expected run id")
	}
	if !strings.Contains(result.XML, "<article ") {
		t.Error("missing article element")
	}

	text = mcpCallTool(t, session, "jats_runs", map[string]any{})
	var listResp struct {
		Runs []struct {
			ID       string `json:"id"`
			Filename string `json:"filename"`
		} `json:"runs"`
	}
	if err := json.Unmarshal([]byte(text), &listResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(listResp.Runs) != 1 || listResp.Runs[0].ID != result.RunID {
		t.Errorf("runs = %+v", listResp.Runs)
	}

	text = mcpCallTool(t, session, "jats_runs", map[string]any{"id": result.RunID})
	var full struct {
		Filename string `json:"filename"`
		Report   string `json:"report"`
	}
	json.Unmarshal([]byte(text), &full)
	if full.Filename != "manuscrito.txt" || full.Report == "" {
		t.Errorf("full run = %+v", full)
	}
}
