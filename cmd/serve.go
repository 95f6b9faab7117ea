package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wellswap/valuation-engine/internal/model"
	"github.com/wellswap/valuation-engine/internal/store"
	"github.com/wellswap/valuation-engine/internal/valuation"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the valuation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: buildRouter(env),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter assembles the HTTP API. Kept separate from the command so the
// routes are testable without binding a port.
func buildRouter(env *appEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/valuations", func(w http.ResponseWriter, req *http.Request) {
		var vr model.ValuationRequest
		if err := json.NewDecoder(req.Body).Decode(&vr); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := env.engine.Valuate(req.Context(), vr)
		if err != nil {
			var invalid *valuation.InvalidInputError
			if errors.As(err, &invalid) {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"error":  "invalid input",
					"fields": invalid.Fields,
				})
				return
			}
			zap.L().Error("valuation failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "valuation failed")
			return
		}

		resp := map[string]any{"result": result}
		if env.store != nil {
			record, err := env.store.SaveValuation(req.Context(), vr, *result)
			if err != nil {
				zap.L().Error("save valuation failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "persist failed")
				return
			}
			resp["id"] = record.ID
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/api/valuations/{id}", func(w http.ResponseWriter, req *http.Request) {
		if env.store == nil {
			writeError(w, http.StatusServiceUnavailable, "persistence not configured")
			return
		}
		record, err := env.store.GetValuation(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			zap.L().Error("get valuation failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		if record == nil {
			writeError(w, http.StatusNotFound, "valuation not found")
			return
		}
		writeJSON(w, http.StatusOK, record)
	})

	r.Get("/api/valuations", func(w http.ResponseWriter, req *http.Request) {
		if env.store == nil {
			writeError(w, http.StatusServiceUnavailable, "persistence not configured")
			return
		}
		filter := store.ValuationFilter{
			Company: req.URL.Query().Get("company"),
			Product: req.URL.Query().Get("product"),
		}
		if v := req.URL.Query().Get("limit"); v != "" {
			filter.Limit, _ = strconv.Atoi(v)
		}
		if v := req.URL.Query().Get("offset"); v != "" {
			filter.Offset, _ = strconv.Atoi(v)
		}

		records, err := env.store.ListValuations(req.Context(), filter)
		if err != nil {
			zap.L().Error("list valuations failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "list failed")
			return
		}
		if records == nil {
			records = []model.ValuationRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
