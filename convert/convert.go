// Package convert orchestrates the manuscript-to-JATS pipeline: extraction,
// AI structuring, journal configuration, XML rendering and quality
// assessment, with optional persistence of each run.
package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scigraf/jatsgen/article"
	"github.com/scigraf/jatsgen/convert/internal/store"
	"github.com/scigraf/jatsgen/extract"
	"github.com/scigraf/jatsgen/jats"
	"github.com/scigraf/jatsgen/qa"
	"github.com/scigraf/jatsgen/structure"
)

// Result is the outcome of one conversion run.
type Result struct {
	RunID    string           `json:"run_id,omitempty"`
	Filename string           `json:"filename"`
	Content  *article.Content `json:"content"`
	Config   article.Config   `json:"config"`
	XML      string           `json:"xml"`
	Report   string           `json:"report"`
	Score    int              `json:"score"`
	Tier     string           `json:"tier"`
}

func (r *Result) basename() string {
	return strings.TrimSuffix(r.Filename, filepath.Ext(r.Filename))
}

// XMLFilename is the intended download name for the JATS document.
func (r *Result) XMLFilename() string {
	return r.basename() + ".xml"
}

// ReportFilename is the intended download name for the QA report.
func (r *Result) ReportFilename() string {
	return "QA_Report_" + r.basename() + ".md"
}

// Service runs conversions.
type Service struct {
	pipe       *extract.Pipeline
	structurer structure.Structurer
	st         *store.Store
	cfgPath    string
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// Option configures a Service.
type Option func(*Service)

// WithRunsDB opens the run store at path and enables persistence.
func WithRunsDB(path string) Option {
	return func(s *Service) {
		st, err := store.Open(path)
		if err != nil {
			s.logger.Error("runs db unavailable, persistence disabled", "path", path, "error", err)
			return
		}
		s.st = st
	}
}

// WithJournalConfig uses a YAML journal configuration file instead of the
// auto-generated one. Empty fields in the file are still auto-filled.
func WithJournalConfig(path string) Option {
	return func(s *Service) { s.cfgPath = path }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a conversion service.
func New(pipe *extract.Pipeline, structurer structure.Structurer, opts ...Option) *Service {
	s := &Service{
		pipe:       pipe,
		structurer: structurer,
		logger:     slog.Default(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the run store, if any.
func (s *Service) Close() error {
	if s.st != nil {
		return s.st.Close()
	}
	return nil
}

// Convert runs the full pipeline on manuscript bytes. Rendering and
// assessment are total; only extraction and structuring can fail.
func (s *Service) Convert(ctx context.Context, name string, data []byte) (*Result, error) {
	doc, err := s.pipe.Extract(ctx, name, data)
	if err != nil {
		return nil, err
	}
	return s.convertDoc(ctx, doc)
}

// ConvertFile reads a manuscript from disk and converts it.
func (s *Service) ConvertFile(ctx context.Context, path string) (*Result, error) {
	doc, err := s.pipe.ExtractFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.convertDoc(ctx, doc)
}

func (s *Service) convertDoc(ctx context.Context, doc *extract.Document) (*Result, error) {
	content, err := s.structurer.Structure(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("structure %s: %w", doc.Name, err)
	}
	content.Normalize()

	var cfg article.Config
	if s.cfgPath != "" {
		cfg, err = article.LoadConfig(s.cfgPath, content)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = article.AutoConfig(content)
	}

	xmlOut := jats.Render(content, &cfg)
	report := qa.Report(content, &cfg, xmlOut, s.now())
	score := qa.Score(qa.Derive(content))

	result := &Result{
		Filename: doc.Name,
		Content:  content,
		Config:   cfg,
		XML:      xmlOut,
		Report:   report,
		Score:    score,
		Tier:     qa.TierLabel(score),
	}

	if s.st != nil {
		if err := s.persist(ctx, result); err != nil {
			// A failed insert must not lose the converted document.
			s.logger.Error("persist run", "file", doc.Name, "error", err)
			result.RunID = ""
		}
	}

	s.logger.Info("manuscript converted",
		"file", doc.Name, "format", doc.Format, "score", score, "run_id", result.RunID)
	return result, nil
}

func (s *Service) persist(ctx context.Context, result *Result) error {
	contentJSON, err := json.Marshal(result.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	cfgJSON, err := json.Marshal(result.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	result.RunID = s.newID()
	return s.st.Insert(ctx, &store.Run{
		ID:        result.RunID,
		Filename:  result.Filename,
		Score:     result.Score,
		Tier:      result.Tier,
		Content:   string(contentJSON),
		Config:    string(cfgJSON),
		XML:       result.XML,
		Report:    result.Report,
		CreatedAt: s.now().Unix(),
	})
}

// Runs lists persisted run summaries, newest first.
func (s *Service) Runs(ctx context.Context, limit int) ([]store.Summary, error) {
	if s.st == nil {
		return []store.Summary{}, nil
	}
	return s.st.List(ctx, limit)
}

// Run returns a full persisted run.
func (s *Service) Run(ctx context.Context, id string) (*store.Run, error) {
	if s.st == nil {
		return nil, store.ErrNotFound
	}
	return s.st.Get(ctx, id)
}

// DeleteRun removes a persisted run.
func (s *Service) DeleteRun(ctx context.Context, id string) error {
	if s.st == nil {
		return store.ErrNotFound
	}
	return s.st.Delete(ctx, id)
}

// IsNotFound reports whether err means an unknown run id.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
