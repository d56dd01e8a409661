// Entry point for the jatsgen HTTP service — chi router, optional Basic Auth,
// manuscript conversion API, optional MCP stdio transport.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/crypto/bcrypt"

	"github.com/scigraf/jatsgen/convert"
	"github.com/scigraf/jatsgen/extract"
	"github.com/scigraf/jatsgen/shield"
	"github.com/scigraf/jatsgen/structure"
)

// maxUploadSize bounds multipart uploads; matches the extraction limit.
const maxUploadSize = 50 * 1024 * 1024

func main() {
	port := env("PORT", "8086")
	dataDir := env("DATA_DIR", "data")
	runsDB := env("RUNS_DB", filepath.Join(dataDir, "runs.db"))
	journalConfig := env("JOURNAL_CONFIG", "")
	authPassword := os.Getenv("AUTH_PASSWORD")
	mcpTransport := env("MCP_TRANSPORT", "")
	logLevel := env("LOG_LEVEL", "info")

	// Logging.
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Structurer: OpenAI when a key is configured, heuristic otherwise.
	var structurer structure.Structurer
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		structurer = structure.NewOpenAI(key)
		slog.Info("structurer", "mode", "openai")
	} else {
		structurer = structure.Heuristic{}
		slog.Warn("OPENAI_API_KEY not set, using heuristic structurer")
	}

	pipe := extract.New(extract.Config{MaxFileSize: maxUploadSize, Logger: logger})

	opts := []convert.Option{
		convert.WithLogger(logger),
		convert.WithRunsDB(runsDB),
	}
	if journalConfig != "" {
		opts = append(opts, convert.WithJournalConfig(journalConfig))
	}
	svc := convert.New(pipe, structurer, opts...)
	defer svc.Close()

	// Optional MCP stdio transport: the process becomes an MCP server and the
	// HTTP API is not started.
	if mcpTransport == "stdio" {
		mcpSrv := mcp.NewServer(&mcp.Implementation{
			Name:    "jatsgen",
			Version: "1.0.0",
		}, nil)
		svc.RegisterMCP(mcpSrv)
		slog.Info("MCP stdio starting")
		if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("MCP stdio", "error", err)
			os.Exit(1)
		}
		return
	}

	// Basic Auth: hash once at startup, compare per request.
	var passwordHash []byte
	if authPassword != "" {
		var err error
		passwordHash, err = bcrypt.GenerateFromPassword([]byte(authPassword), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("hash auth password", "error", err)
			os.Exit(1)
		}
	}

	// Router.
	r := chi.NewRouter()
	rl := shield.NewRateLimiter(120, time.Minute, "/healthz")
	rl.StartGC(ctx.Done())
	for _, mw := range shield.APIStack(rl) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if passwordHash != nil {
			r.Use(requireBasicAuth(passwordHash))
		}

		r.Post("/api/convert", func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
			file, header, err := r.FormFile("file")
			if err != nil {
				writeError(w, 400, err)
				return
			}
			defer file.Close()

			data, err := io.ReadAll(file)
			if err != nil {
				writeError(w, 400, err)
				return
			}

			result, err := svc.Convert(r.Context(), header.Filename, data)
			if err != nil {
				writeError(w, 422, err)
				return
			}
			writeJSON(w, 200, result)
		})

		r.Get("/api/formats", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, 200, map[string]any{"formats": extract.SupportedFormats()})
		})

		r.Get("/api/runs", func(w http.ResponseWriter, r *http.Request) {
			limit := queryInt(r, "limit", 50)
			runs, err := svc.Runs(r.Context(), limit)
			if err != nil {
				writeError(w, 500, err)
				return
			}
			writeJSON(w, 200, runs)
		})

		r.Get("/api/runs/{id}", func(w http.ResponseWriter, r *http.Request) {
			run, err := svc.Run(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				writeRunError(w, err)
				return
			}
			writeJSON(w, 200, run)
		})

		r.Get("/api/runs/{id}/xml", func(w http.ResponseWriter, r *http.Request) {
			run, err := svc.Run(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				writeRunError(w, err)
				return
			}
			name := strings.TrimSuffix(run.Filename, filepath.Ext(run.Filename)) + ".xml"
			w.Header().Set("Content-Type", "application/xml; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
			io.WriteString(w, run.XML)
		})

		r.Get("/api/runs/{id}/report", func(w http.ResponseWriter, r *http.Request) {
			run, err := svc.Run(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				writeRunError(w, err)
				return
			}
			name := "QA_Report_" + strings.TrimSuffix(run.Filename, filepath.Ext(run.Filename)) + ".md"
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
			io.WriteString(w, run.Report)
		})

		r.Delete("/api/runs/{id}", func(w http.ResponseWriter, r *http.Request) {
			if err := svc.DeleteRun(r.Context(), chi.URLParam(r, "id")); err != nil {
				writeRunError(w, err)
				return
			}
			writeJSON(w, 200, map[string]string{"status": "deleted"})
		})
	})

	// HTTP server.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// --- Auth middleware ---

func requireBasicAuth(hash []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, password, ok := r.BasicAuth()
			if !ok || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="jatsgen"`)
				writeJSON(w, 401, map[string]string{"error": "credenciales inválidas"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// --- Helpers ---

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeRunError(w http.ResponseWriter, err error) {
	if convert.IsNotFound(err) {
		writeError(w, 404, err)
		return
	}
	writeError(w, 500, err)
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
