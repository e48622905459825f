package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig はレート制限の設定を保持する。
type RateLimiterConfig struct {
	GeneralRate       rate.Limit    // API全般のレート（req/sec）
	GeneralBurst      int           // API全般のバーストサイズ
	RegistrationRate  rate.Limit    // 受講登録作成のレート（req/sec）
	RegistrationBurst int           // 受講登録作成のバーストサイズ
	CleanupInterval   time.Duration // 期限切れエントリのクリーンアップ間隔
}

// NewRateLimiterConfig はreq/min単位の上限からレート制限設定を生成する。
func NewRateLimiterConfig(generalPerMin, registrationPerMin int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:       rate.Limit(float64(generalPerMin) / 60.0),
		GeneralBurst:      generalPerMin,
		RegistrationRate:  rate.Limit(float64(registrationPerMin) / 60.0),
		RegistrationBurst: registrationPerMin,
		CleanupInterval:   5 * time.Minute,
	}
}

// limiterEntry はユーザーごとのレートリミッターとアクセス時刻を保持する。
type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// limiterSet は1種類のレート制限に対するユーザーごとのリミッター群。
type limiterSet struct {
	mu      sync.Mutex
	entries map[int64]*limiterEntry
	limit   rate.Limit
	burst   int
}

func newLimiterSet(limit rate.Limit, burst int) *limiterSet {
	return &limiterSet{
		entries: make(map[int64]*limiterEntry),
		limit:   limit,
		burst:   burst,
	}
}

// get はユーザーのリミッターを取得または作成し、最終アクセス時刻を更新する。
func (s *limiterSet) get(userID int64) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, exists := s.entries[userID]; exists {
		entry.lastAccess = time.Now()
		return entry.limiter
	}

	limiter := rate.NewLimiter(s.limit, s.burst)
	s.entries[userID] = &limiterEntry{
		limiter:    limiter,
		lastAccess: time.Now(),
	}
	return limiter
}

// evictOlderThan は最終アクセス時刻がttlを超えたエントリを削除する。
func (s *limiterSet) evictOlderThan(ttl time.Duration) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, entry := range s.entries {
		if now.Sub(entry.lastAccess) > ttl {
			delete(s.entries, userID)
		}
	}
}

// count は現在管理されているエントリ数を返す。テスト用。
func (s *limiterSet) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RateLimiter はユーザーごとのレート制限を管理する。
// API全般のレート制限と受講登録作成のレート制限の2種類を提供する。
type RateLimiter struct {
	config       RateLimiterConfig
	general      *limiterSet
	registration *limiterSet
	stopCh       chan struct{}
}

// NewRateLimiter は新しいRateLimiterを生成する。
// バックグラウンドで期限切れエントリのクリーンアップを開始する。
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:       config,
		general:      newLimiterSet(config.GeneralRate, config.GeneralBurst),
		registration: newLimiterSet(config.RegistrationRate, config.RegistrationBurst),
		stopCh:       make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// GeneralMiddleware はAPI全般のレート制限ミドルウェアを返す。
// リクエストコンテキストにユーザーIDが含まれている必要がある（AuthMiddlewareの後に配置）。
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return rl.middleware(rl.general, rl.config.GeneralRate, "general")
}

// RegistrationMiddleware は受講登録作成専用のレート制限ミドルウェアを返す。
// API全般のレート制限とは独立に動作する。
func (rl *RateLimiter) RegistrationMiddleware() func(next http.Handler) http.Handler {
	return rl.middleware(rl.registration, rl.config.RegistrationRate, "registration")
}

// GeneralLimiterCount は現在管理されているAPI全般リミッターのエントリ数を返す。テスト用。
func (rl *RateLimiter) GeneralLimiterCount() int {
	return rl.general.count()
}

// RegistrationLimiterCount は現在管理されている受講登録リミッターのエントリ数を返す。テスト用。
func (rl *RateLimiter) RegistrationLimiterCount() int {
	return rl.registration.count()
}

func (rl *RateLimiter) middleware(set *limiterSet, limit rate.Limit, limitType string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserIDFromContext(r.Context())
			if err != nil {
				writeUnauthorized(w)
				return
			}

			if !set.get(userID).Allow() {
				writeRateLimitResponse(w, limit)
				slog.Warn("rate limit exceeded",
					slog.Int64("user_id", userID),
					slog.String("limit_type", limitType),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// cleanupLoop はバックグラウンドで期限切れエントリを定期的にクリーンアップする。
// 最終アクセスからCleanupIntervalの2倍を超えたエントリを削除する。
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ttl := rl.config.CleanupInterval * 2
			rl.general.evictOlderThan(ttl)
			rl.registration.evictOlderThan(ttl)
		case <-rl.stopCh:
			return
		}
	}
}

// writeRateLimitResponse は429 Too Many Requestsレスポンスを書き込む。
// Retry-Afterヘッダーにはトークンが補充されるまでの推定秒数を設定する。
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     "RATE_LIMIT_EXCEEDED",
		Message:  "リクエストが多すぎます。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}
