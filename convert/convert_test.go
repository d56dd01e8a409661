package convert

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/scigraf/jatsgen/extract"
	"github.com/scigraf/jatsgen/structure"
)

const testManuscript = `Efectos del riego por goteo en cultivos andinos

Resumen

Se evaluó el riego por goteo en tres parcelas experimentales durante dos temporadas.

Palabras clave

riego, agricultura, sostenibilidad

Abstract

Drip irrigation was evaluated on three experimental plots over two seasons.

Introducción

El riego tecnificado reduce el consumo de agua en zonas áridas.

Referencias

García, M. (2020). Riego tecnificado. Revista Agraria, 12(3), 45-60.

Contacto: mgarcia@uni.edu`

func testService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	base := []Option{
		WithLogger(logger),
		WithRunsDB(filepath.Join(t.TempDir(), "runs.db")),
	}
	svc := New(extract.New(extract.Config{Logger: logger}), structure.Heuristic{}, append(base, opts...)...)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestConvert(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	result, err := svc.Convert(ctx, "estudio.txt", []byte(testManuscript))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if !strings.Contains(result.XML, "JATS-journalpublishing1.dtd") {
		t.Error("XML missing DOCTYPE")
	}
	if !strings.Contains(result.XML, "Efectos del riego por goteo en cultivos andinos") {
		t.Error("XML missing article title")
	}
	if !strings.Contains(result.Report, "# 🤖 Reporte de Calidad IA - SciELO JATS") {
		t.Error("report missing header")
	}
	if result.Score <= 0 || result.Score > 100 {
		t.Errorf("Score = %d, want within (0, 100]", result.Score)
	}
	if result.Tier == "" {
		t.Error("empty tier")
	}
	if result.RunID == "" {
		t.Error("expected persisted run id")
	}

	if got := result.XMLFilename(); got != "estudio.xml" {
		t.Errorf("XMLFilename = %q", got)
	}
	if got := result.ReportFilename(); got != "QA_Report_estudio.md" {
		t.Errorf("ReportFilename = %q", got)
	}
}

func TestConvertFile(t *testing.T) {
	svc := testService(t)

	path := filepath.Join(t.TempDir(), "manuscrito.txt")
	if err := os.WriteFile(path, []byte(testManuscript), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := svc.ConvertFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ConvertFile: %v", err)
	}
	if result.Filename != "manuscrito.txt" {
		t.Errorf("Filename = %q", result.Filename)
	}
	if !strings.Contains(result.XML, `<abstract xml:lang="es">`) {
		t.Error("XML missing abstract")
	}
}

func TestConvertUnsupportedFormat(t *testing.T) {
	svc := testService(t)

	if _, err := svc.Convert(context.Background(), "figura.png", []byte("x")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestRunLifecycle(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	first, err := svc.Convert(ctx, "a.txt", []byte(testManuscript))
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Convert(ctx, "b.txt", []byte(testManuscript))
	if err != nil {
		t.Fatal(err)
	}
	if first.RunID == second.RunID {
		t.Fatal("run ids must be unique")
	}

	runs, err := svc.Runs(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("Runs = %d entries, want 2", len(runs))
	}

	run, err := svc.Run(ctx, first.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if run.Filename != "a.txt" || run.XML != first.XML {
		t.Errorf("run mismatch: %q", run.Filename)
	}

	if err := svc.DeleteRun(ctx, first.RunID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Run(ctx, first.RunID); !IsNotFound(err) {
		t.Errorf("expected not-found after delete, got %v", err)
	}
	if err := svc.DeleteRun(ctx, "no-such-run"); !IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestConvertWithoutStore(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := New(extract.New(extract.Config{Logger: logger}), structure.Heuristic{}, WithLogger(logger))
	t.Cleanup(func() { svc.Close() })
	ctx := context.Background()

	result, err := svc.Convert(ctx, "a.txt", []byte(testManuscript))
	if err != nil {
		t.Fatal(err)
	}
	if result.RunID != "" {
		t.Errorf("RunID = %q, want empty without store", result.RunID)
	}

	runs, err := svc.Runs(ctx, 10)
	if err != nil || len(runs) != 0 {
		t.Errorf("Runs = %v, %v", runs, err)
	}
	if _, err := svc.Run(ctx, "x"); !IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestConvertWithJournalConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "journal.yaml")
	cfgYAML := `journal:
  publisher_id: rca
  title: Revista de Ciencias Agrarias
  abbrev_title: Rev Cienc Agrar
  pissn: 1234-5678
  eissn: 8765-4321
  publisher: Editorial Andina
article:
  doi: 10.1234/rca.v5.i2.00042
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := testService(t, WithJournalConfig(cfgPath))
	result, err := svc.Convert(context.Background(), "a.txt", []byte(testManuscript))
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(result.XML, "Revista de Ciencias Agrarias") {
		t.Error("XML missing configured journal title")
	}
	if !strings.Contains(result.XML, "10.1234/rca.v5.i2.00042") {
		t.Error("XML missing configured DOI")
	}
	// Fields absent from the file are auto-filled.
	if result.Config.Article.Volume == "" || result.Config.Article.PubDate == "" {
		t.Errorf("config not auto-filled: %+v", result.Config.Article)
	}
}

func TestReportClock(t *testing.T) {
	fixed := time.Date(2025, 3, 9, 14, 30, 5, 0, time.UTC)
	svc := testService(t, WithClock(func() time.Time { return fixed }))

	result, err := svc.Convert(context.Background(), "a.txt", []byte(testManuscript))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result.Report, "9/3/2025, 14:30:05") {
		t.Error("report missing fixed timestamp")
	}
}
