package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bioscore-cli/internal/model"
	"github.com/sells-group/bioscore-cli/internal/profile"
	"github.com/sells-group/bioscore-cli/internal/weighting"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoring HTTP server",
	Long: `Exposes the weighting engine over HTTP: evaluate pillar scores,
preview reweighting impact, and manage weight profiles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		profiles, err := openProfileStore(ctx)
		if err != nil {
			return err
		}
		defer profiles.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(profiles),
		}

		// Graceful shutdown
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

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newRouter builds the HTTP API over the weighting engine and profile store.
func newRouter(profiles profile.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/evaluate", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Scores  model.PillarScores  `json:"scores"`
			Weights *model.WeightConfig `json:"weights"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		weights := model.DefaultWeightConfig()
		if body.Weights != nil {
			weights = *body.Weights
		}

		ws, result := weighting.ApplyWeightsWithRecalculation(body.Scores, weights)
		writeJSON(w, http.StatusOK, map[string]any{
			"weighted":   ws,
			"validation": result,
		})
	})

	r.Post("/v1/impact", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Scores   model.PillarScores `json:"scores"`
			Original model.WeightConfig `json:"original"`
			New      model.WeightConfig `json:"new"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		impact := weighting.CalculateWeightImpact(body.Scores, body.Original, body.New)
		writeJSON(w, http.StatusOK, impact)
	})

	r.Get("/v1/profiles", func(w http.ResponseWriter, req *http.Request) {
		names, err := profiles.List(req.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profiles": names})
	})

	r.Get("/v1/profiles/{name}", func(w http.ResponseWriter, req *http.Request) {
		weights, err := profiles.Load(req.Context(), chi.URLParam(req, "name"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if weights == nil {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeJSON(w, http.StatusOK, weights)
	})

	r.Put("/v1/profiles/{name}", func(w http.ResponseWriter, req *http.Request) {
		var weights model.WeightConfig
		if err := json.NewDecoder(req.Body).Decode(&weights); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		name := chi.URLParam(req, "name")
		if err := profiles.Save(req.Context(), name, weights); err != nil {
			if eris.Is(err, profile.ErrInvalidWeights) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"saved": name})
	})

	r.Delete("/v1/profiles/{name}", func(w http.ResponseWriter, req *http.Request) {
		removed, err := profiles.Delete(req.Context(), chi.URLParam(req, "name"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !removed {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
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
