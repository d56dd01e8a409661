package convert

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scigraf/jatsgen/article"
	"github.com/scigraf/jatsgen/jats"
	"github.com/scigraf/jatsgen/kit"
	"github.com/scigraf/jatsgen/qa"
)

// RegisterMCP registers the conversion tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerConvertTool(srv)
	s.registerRenderTool(srv)
	s.registerAssessTool(srv)
	s.registerRunsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	sch := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sch["required"] = required
	}
	return sch
}

// --- convert ---

type convertReq struct {
	Path string `json:"path"`
}

func (s *Service) registerConvertTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "jats_convert",
		Description: "Convert a manuscript file (docx, odt, txt, html) to SciELO SPS 1.9 JATS XML with a quality report.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "Manuscript file path"},
		}, []string{"path"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*convertReq)
		return s.ConvertFile(ctx, r.Path)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, kit.DecodeJSON[convertReq])
}

// --- render ---

type renderReq struct {
	Content article.Content `json:"content"`
	Config  *article.Config `json:"config,omitempty"`
}

func (s *Service) registerRenderTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "jats_render",
		Description: "Render structured article content to JATS XML. Missing fields become placeholder markup. Config is auto-generated when omitted.",
		InputSchema: inputSchema(map[string]any{
			"content": map[string]any{"type": "object", "description": "Structured article content"},
			"config":  map[string]any{"type": "object", "description": "Journal configuration (optional)"},
		}, []string{"content"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*renderReq)
		r.Content.Normalize()
		cfg := r.Config
		if cfg == nil {
			auto := article.AutoConfig(&r.Content)
			cfg = &auto
		} else {
			cfg.FillDefaults(&r.Content)
		}
		return map[string]any{"xml": jats.Render(&r.Content, cfg)}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, kit.DecodeJSON[renderReq])
}

// --- assess ---

type assessReq struct {
	Content article.Content `json:"content"`
}

type assessResp struct {
	Score  int      `json:"score"`
	Tier   string   `json:"tier"`
	Stats  qa.Stats `json:"stats"`
	Report string   `json:"report"`
}

func (s *Service) registerAssessTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "jats_assess",
		Description: "Assess structured article content for SciELO SPS completeness: 0-100 score, tier and a Spanish quality report.",
		InputSchema: inputSchema(map[string]any{
			"content": map[string]any{"type": "object", "description": "Structured article content"},
		}, []string{"content"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*assessReq)
		r.Content.Normalize()
		cfg := article.AutoConfig(&r.Content)
		stats := qa.Derive(&r.Content)
		score := qa.Score(stats)
		return &assessResp{
			Score:  score,
			Tier:   qa.TierLabel(score),
			Stats:  stats,
			Report: qa.Report(&r.Content, &cfg, "", s.now()),
		}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, kit.DecodeJSON[assessReq])
}

// --- runs ---

type runsReq struct {
	Limit int    `json:"limit,omitempty"`
	ID    string `json:"id,omitempty"`
}

func (s *Service) registerRunsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "jats_runs",
		Description: "List past conversion runs, or fetch one run in full by id.",
		InputSchema: inputSchema(map[string]any{
			"limit": map[string]any{"type": "integer", "description": "Maximum entries to list (default 50)"},
			"id":    map[string]any{"type": "string", "description": "Run id to fetch in full"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*runsReq)
		if r.ID != "" {
			return s.Run(ctx, r.ID)
		}
		runs, err := s.Runs(ctx, r.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"runs": runs}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, kit.DecodeJSON[runsReq])
}
