package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/hirevox/backend/config"
	"github.com/hirevox/backend/internal/api/handlers"
	"github.com/hirevox/backend/internal/api/middleware"
	"github.com/hirevox/backend/internal/api/routes"
	"github.com/hirevox/backend/internal/cache"
	"github.com/hirevox/backend/internal/logger"
	"github.com/hirevox/backend/internal/providers/llm"
	"github.com/hirevox/backend/internal/providers/stt"
	filerepo "github.com/hirevox/backend/internal/repositories/file"
	"github.com/hirevox/backend/internal/services"
	"github.com/hirevox/backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	l := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Providers are optional: without them every pipeline runs on its
	// deterministic fallback path.
	var llmProvider llm.Provider
	if cfg.VertexProject != "" {
		p, err := llm.NewVertexGemini(ctx, cfg.VertexProject, cfg.VertexLocation, cfg.VertexModel)
		if err != nil {
			log.Fatalf("vertex init error: %v", err)
		}
		defer p.Close()
		llmProvider = p
		l.Info("vertex gemini provider ready")
	} else {
		l.Warn("VERTEX_PROJECT_ID not set, running on fallback generation")
	}

	var sttProvider stt.Provider
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
		p, err := stt.NewGoogleSpeech(ctx)
		if err != nil {
			log.Fatalf("speech init error: %v", err)
		}
		defer p.Close()
		sttProvider = p
		l.Info("google speech provider ready")
	} else {
		l.Warn("GOOGLE_APPLICATION_CREDENTIALS not set, transcription uses placeholder")
	}

	rdb, err := config.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("redis init error: %v", err)
	}
	var questionCache cache.Cache
	if rdb != nil {
		questionCache = cache.NewRedisCache(rdb, "hirevox:")
		l.Info("redis question cache ready")
	}

	sessionRepo, err := filerepo.NewSessionRepo(cfg.SessionsDir)
	if err != nil {
		log.Fatalf("session store init error: %v", err)
	}
	audioStore, err := storage.NewLocalAudioStore(cfg.AudioDir)
	if err != nil {
		log.Fatalf("audio store init error: %v", err)
	}

	questionSvc := services.NewQuestionService(llmProvider, questionCache, l)
	evaluationSvc := services.NewEvaluationService(llmProvider, l)
	sessionSvc := services.NewSessionService(sessionRepo)
	audioSvc := services.NewAudioService(sttProvider, evaluationSvc, l)
	resumeSvc := services.NewResumeService()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Interview: handlers.NewInterviewHandler(questionSvc, evaluationSvc),
		Session:   handlers.NewSessionHandler(sessionSvc, questionSvc, evaluationSvc),
		Audio:     handlers.NewAudioHandler(audioSvc, audioStore),
		Resume:    handlers.NewResumeHandler(resumeSvc),
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	l.WithField("port", cfg.Port).Info("server listening")
	if err := serve(ctx, srv, l); err != nil {
		log.Fatalf("server error: %v", err)
	}
	l.Info("server stopped")
}

// serve blocks until the listener fails or ctx is cancelled, then drains
// in-flight requests before returning.
func serve(ctx context.Context, srv *http.Server, l *logrus.Logger) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
