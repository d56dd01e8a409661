// Package extract pulls flat article text out of uploaded manuscript files.
//
// Supported formats:
//   - .docx — Microsoft Word (archive/zip → word/document.xml)
//   - .odt  — OpenDocument Text (archive/zip → content.xml)
//   - .txt  — plain text (whitespace normalization)
//   - .html — HTML (sanitized, then tree walk)
//
// The output is a paragraph sequence with heading levels preserved, plus the
// concatenated raw text handed to the structuring step.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a manuscript file type.
type Format string

const (
	FormatDocx Format = "docx"
	FormatODT  Format = "odt"
	FormatTXT  Format = "txt"
	FormatHTML Format = "html"
)

// Paragraph is one block of extracted text. Level is the heading level 1-6,
// or 0 for body text.
type Paragraph struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Document is the result of extracting a manuscript file.
type Document struct {
	Name       string      `json:"name"`
	Format     Format      `json:"format"`
	Title      string      `json:"title"`
	Paragraphs []Paragraph `json:"paragraphs"`
	RawText    string      `json:"raw_text"`
}

// Config configures the extraction pipeline.
type Config struct {
	// MaxFileSize is the maximum file size to process (default: 50 MB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// Logger for debug messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 50 * 1024 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Pipeline is the manuscript extraction engine.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{cfg: cfg, logger: cfg.Logger}
}

// Detect returns the manuscript format based on file extension.
func (p *Pipeline) Detect(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".docx":
		return FormatDocx, nil
	case ".odt":
		return FormatODT, nil
	case ".txt", ".text":
		return FormatTXT, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: %s)",
			ext, strings.Join(SupportedFormats(), ", "))
	}
}

// ExtractFile reads and extracts a manuscript from disk.
func (p *Pipeline) ExtractFile(ctx context.Context, path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > p.cfg.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), p.cfg.MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.Extract(ctx, filepath.Base(path), data)
}

// Extract parses manuscript bytes and returns the flattened document.
func (p *Pipeline) Extract(ctx context.Context, name string, data []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if int64(len(data)) > p.cfg.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", len(data), p.cfg.MaxFileSize)
	}

	format, err := p.Detect(name)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("extracting manuscript", "name", name, "format", format)

	var title string
	var paras []Paragraph
	switch format {
	case FormatDocx:
		title, paras, err = extractDocx(data)
	case FormatODT:
		title, paras, err = extractODT(data)
	case FormatTXT:
		title, paras, err = extractText(data)
	case FormatHTML:
		title, paras, err = extractHTML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract %s (%s): %w", name, format, err)
	}

	var sb strings.Builder
	for i, para := range paras {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(para.Text)
	}

	return &Document{
		Name:       name,
		Format:     format,
		Title:      title,
		Paragraphs: paras,
		RawText:    sb.String(),
	}, nil
}

// SupportedFormats returns all supported format extensions.
func SupportedFormats() []string {
	return []string{"docx", "odt", "txt", "html"}
}
