package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/comercial-bot/internal/pipeline"
)

// Fixed request-validation replies.
const (
	msgMissingQuestion  = "No se recibió una pregunta válida."
	msgMissingImageData = "Faltan datos para procesar la consulta."
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP lookup server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
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
			Handler: buildRouter(env.Pipeline),
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

// askPipeline is the part of the pipeline the handlers need. Tests stub it.
type askPipeline interface {
	Ask(ctx context.Context, question string) pipeline.Answer
	AskImage(ctx context.Context, comment, imageBase64 string) pipeline.Answer
}

type askRequest struct {
	Question string `json:"pregunta"`
}

type imageAskRequest struct {
	Comment string `json:"comentario"`
	Image   string `json:"imagen"`
}

// matchResponse is the wire shape for a resolved lookup. The account fields
// are always present, empty strings included, so clients can bind to a fixed
// schema.
type matchResponse struct {
	DetectedBrand    string `json:"marca_detectada"`
	TradeName        string `json:"nombre_fantasia"`
	LegalName        string `json:"razon_social"`
	Executive        string `json:"ejecutivo"`
	Reply            string `json:"respuesta"`
	ImageDescription string `json:"descripcion_imagen,omitempty"`
}

type textResponse struct {
	Reply            string `json:"respuesta"`
	ImageDescription string `json:"descripcion_imagen,omitempty"`
}

// buildRouter wires the chi router used by the serve command. Every outcome,
// validation failures included, is a 200 JSON body; clients read the
// respuesta field, not status codes.
func buildRouter(p askPipeline) http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"estado": "ok"})
	})

	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		var body askRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || strings.TrimSpace(body.Question) == "" {
			writeJSON(w, textResponse{Reply: msgMissingQuestion})
			return
		}

		writeAnswer(w, p.Ask(req.Context(), strings.TrimSpace(body.Question)))
	})

	r.Post("/consulta-con-imagen", func(w http.ResponseWriter, req *http.Request) {
		var body imageAskRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || (body.Comment == "" && body.Image == "") {
			writeJSON(w, textResponse{Reply: msgMissingImageData})
			return
		}

		writeAnswer(w, p.AskImage(req.Context(), body.Comment, body.Image))
	})

	return r
}

func writeAnswer(w http.ResponseWriter, a pipeline.Answer) {
	if !a.Matched {
		writeJSON(w, textResponse{Reply: a.Reply, ImageDescription: a.ImageDescription})
		return
	}
	writeJSON(w, matchResponse{
		DetectedBrand:    a.DetectedBrand,
		TradeName:        a.TradeName,
		LegalName:        a.LegalName,
		Executive:        a.Executive,
		Reply:            a.Reply,
		ImageDescription: a.ImageDescription,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

// requestLogger tags each request with a uuid and logs method, path, status,
// and latency.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		zap.L().Info("request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
