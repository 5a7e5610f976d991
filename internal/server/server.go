package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	adminapp "github.com/sngm3741/contact-site/internal/admin/application"
	"github.com/sngm3741/contact-site/internal/config"
	adminhttp "github.com/sngm3741/contact-site/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/contact-site/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/contact-site/internal/interfaces/http/public"
	sitehttp "github.com/sngm3741/contact-site/internal/interfaces/http/site"
	"github.com/sngm3741/contact-site/internal/metrics"
	publicapp "github.com/sngm3741/contact-site/internal/public/application"
)

// Pinger は保存先ストアの疎通確認を抽象化する。
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps は Server の組み立てに必要なインフラ層の実装をまとめる。
type Deps struct {
	Pinger        Pinger
	Messages      publicapp.MessageRepository
	AdminMessages adminapp.MessageRepository
	Failures      publicapp.FailedNotificationRepository
	Mailer        publicapp.Mailer
	Content       sitehttp.Content
	// Close releases store connections after the HTTP server stops.
	Close func(ctx context.Context) error
}

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin/Site の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         zerolog.Logger
	pinger         Pinger
	closeStore     func(ctx context.Context) error
	jwtConfigs     []config.JWTConfig
	jwtAudience    string
	addr           string
	allowedOrigins []string

	publicHandler *publichttp.Handler
	adminHandler  *adminhttp.Handler
	siteHandler   *sitehttp.Handler
}

type authenticatedUser = commonhttp.AuthenticatedUser

// New は Config と依存を受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
func New(cfg config.Config, deps Deps, logger zerolog.Logger) *Server {
	logger = logger.With().Str("component", "server").Logger()

	contacts := publicapp.NewContactCommandService(deps.Messages)
	var notifications publicapp.NotificationService
	if deps.Mailer != nil {
		notifications = publicapp.NewNotificationService(publicapp.NotificationConfig{
			Mailer:     deps.Mailer,
			Failures:   deps.Failures,
			OwnerEmail: cfg.OwnerEmail,
			Logger:     logger,
		})
	}

	srv := &Server{
		logger:         logger,
		pinger:         deps.Pinger,
		closeStore:     deps.Close,
		jwtConfigs:     append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:    cfg.JWTAudience,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}
	srv.publicHandler = publichttp.NewHandler(publichttp.Config{
		Logger:             logger,
		Contacts:           contacts,
		Notifications:      notifications,
		Failures:           deps.Failures,
		HTTPClient:         &http.Client{Timeout: cfg.MessengerTimeout},
		MessengerEndpoint:  normaliseBaseURL(cfg.MessengerEndpoint),
		DiscordDestination: cfg.DiscordDestination,
		SlackDestination:   cfg.SlackDestination,
		AdminBaseURL:       cfg.AdminBaseURL,
	})
	srv.adminHandler = adminhttp.NewHandler(adminhttp.Config{
		Logger:   logger,
		Messages: adminapp.NewMessageService(deps.AdminMessages),
	})
	srv.siteHandler = sitehttp.NewHandler(sitehttp.Config{
		Logger:    logger,
		Content:   deps.Content,
		Endpoint:  cfg.PublicSubmitURL,
		StaticDir: cfg.StaticDir,
	})
	return srv
}

// Handler はミドルウェアとルーティングを組み立てる。
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	router.Method(http.MethodGet, "/metrics", metrics.Handler())
	s.publicHandler.Register(router)
	s.siteHandler.Register(router)
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		s.adminHandler.Register(r)
	})
	return router
}

// Run はHTTPサーバーを起動し、シグナル受信か ctx の終了で graceful shutdown する。
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("HTTP サーバー起動")
		errChan <- httpServer.ListenAndServe()
	}()

	err := waitForShutdown(ctx, httpServer, errChan, s.logger)
	s.shutdown(context.Background())
	return err
}

// normaliseBaseURL は入力文字列をトリムして末尾スラッシュを削除したURLを返す。
func normaliseBaseURL(input string) string {
	trimmed := strings.TrimSpace(input)
	return strings.TrimRight(trimmed, "/")
}

// healthHandler は保存先ストアへの疎通確認を行い、監視系からのヘルスチェック要求に応える。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := s.pinger.Ping(ctx); err != nil {
				commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// shutdown はストア接続をタイムアウト付きで閉じる。
func (s *Server) shutdown(ctx context.Context) {
	if s.closeStore == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.closeStore(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("ストア切断時にエラー")
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(ctx context.Context, httpServer *http.Server, errChan <-chan error, logger zerolog.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("サーバーが異常終了")
			return err
		}
		return nil
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("シグナルを受信。サーバー停止処理を開始します。")
	case <-ctx.Done():
		logger.Info().Msg("コンテキスト終了。サーバー停止処理を開始します。")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("サーバー停止時にエラー")
		return err
	}
	return nil
}
