package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gymdesk/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	Metrics           middleware.HTTPMetricsRecorder

	// ドメインサービス
	AuthService         AuthServiceInterface
	StudentService      StudentServiceInterface
	PlanService         PlanServiceInterface
	RegistrationService RegistrationServiceInterface

	// ヘルスチェック用のDB接続
	DB *sql.DB

	// GET /metrics で公開するPrometheusハンドラー
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → Recovery → Logging → Metrics → [認証ルートのみ: Auth → RateLimit(General)]
//
// 認証不要のルート（POST /users、POST /sessions、GET /health、GET /metrics）は
// 認証ミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルートに効くミドルウェア
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}

	authHandler := NewAuthHandler(deps.AuthService)
	studentHandler := NewStudentHandler(deps.StudentService)
	planHandler := NewPlanHandler(deps.PlanService)
	regHandler := NewRegistrationHandler(deps.RegistrationService)

	// --- 認証不要のルート ---

	r.Post("/users", authHandler.Register)
	r.Post("/sessions", authHandler.CreateSession)
	r.Get("/health", newHealthHandler(deps.DB))

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 管理者ユーザー
		r.Put("/api/users", authHandler.UpdateProfile)

		// 学生管理
		r.Route("/api/students", func(r chi.Router) {
			r.Get("/", studentHandler.ListStudents)
			r.Post("/", studentHandler.CreateStudent)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", studentHandler.GetStudent)
				r.Put("/", studentHandler.UpdateStudent)
				r.Delete("/", studentHandler.DeleteStudent)
			})
		})

		// プラン管理
		r.Route("/api/plans", func(r chi.Router) {
			r.Get("/", planHandler.ListPlans)
			r.Post("/", planHandler.CreatePlan)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", planHandler.GetPlan)
				r.Put("/", planHandler.UpdatePlan)
				r.Delete("/", planHandler.DeletePlan)
			})
		})

		// 受講登録
		r.Route("/api/registrations", func(r chi.Router) {
			r.Get("/", regHandler.ListRegistrations)

			// POST /api/registrations - 受講登録作成（専用レート制限を追加）
			r.With(deps.RateLimiter.RegistrationMiddleware()).Post("/", regHandler.CreateRegistration)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", regHandler.GetRegistration)
				r.Put("/", regHandler.UpdateRegistration)
				r.Delete("/", regHandler.CancelRegistration)
			})
		})
	})

	return r
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// newHealthHandler はDB接続を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if db == nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:   "unhealthy",
				Database: "not configured",
			})
			return
		}

		if err := db.PingContext(ctx); err != nil {
			slog.Warn("health check failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:   "unhealthy",
				Database: "unreachable",
			})
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Status:   "ok",
			Database: "ok",
		})
	}
}
