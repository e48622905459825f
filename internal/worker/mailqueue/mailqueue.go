// Package mailqueue は確認メールのバックグラウンド配送を提供する。
// 配送はベストエフォートで、失敗時は一定回数リトライした後に諦める。
package mailqueue

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/gymdesk/internal/mailer"
)

// MetricsRecorder はメール配送メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordMailSent()
	RecordMailFailed()
}

// Config はメールキューの設定。
type Config struct {
	QueueSize   int           // キューの容量。満杯時の投入はドロップされる
	MaxAttempts int           // 1通あたりの最大試行回数
	RetryDelay  time.Duration // リトライ間隔
}

// DefaultConfig はデフォルトのメールキュー設定を返す。
func DefaultConfig() Config {
	return Config{
		QueueSize:   64,
		MaxAttempts: 3,
		RetryDelay:  30 * time.Second,
	}
}

// Queue はインプロセスのメール配送キュー。
// Enqueueで投入されたメールをバックグラウンドのgoroutineが順次配送する。
type Queue struct {
	sender  mailer.Sender
	logger  *slog.Logger
	metrics MetricsRecorder
	config  Config
	ch      chan *mailer.Message
}

// New はQueueの新しいインスタンスを生成する。
// 設定値が0以下の場合はデフォルト値を使用する。
func New(sender mailer.Sender, logger *slog.Logger, metrics MetricsRecorder, config Config) *Queue {
	def := DefaultConfig()
	if config.QueueSize <= 0 {
		config.QueueSize = def.QueueSize
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = def.MaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = def.RetryDelay
	}

	return &Queue{
		sender:  sender,
		logger:  logger,
		metrics: metrics,
		config:  config,
		ch:      make(chan *mailer.Message, config.QueueSize),
	}
}

// Enqueue はメールを配送キューに投入する。ブロックしない。
// キューが満杯の場合はドロップしてログに記録する（ベストエフォート）。
func (q *Queue) Enqueue(msg *mailer.Message) {
	select {
	case q.ch <- msg:
	default:
		q.metrics.RecordMailFailed()
		q.logger.Warn("mail queue full, message dropped",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
		)
	}
}

// Start はキューの配送ループを開始する。
// コンテキストがキャンセルされるまで実行を継続する（ブロッキング）。
func (q *Queue) Start(ctx context.Context) {
	q.logger.Info("mail queue started",
		slog.Int("queue_size", q.config.QueueSize),
		slog.Int("max_attempts", q.config.MaxAttempts),
	)

	for {
		select {
		case <-ctx.Done():
			q.logger.Info("mail queue stopped")
			return
		case msg := <-q.ch:
			q.deliver(ctx, msg)
		}
	}
}

// deliver はメールを1通配送する。
// 失敗時はRetryDelay間隔でMaxAttempts回まで試行し、それでも失敗したら諦める。
func (q *Queue) deliver(ctx context.Context, msg *mailer.Message) {
	var lastErr error

	for attempt := 1; attempt <= q.config.MaxAttempts; attempt++ {
		if err := q.sender.Send(msg); err != nil {
			lastErr = err
			q.logger.Warn("mail delivery attempt failed",
				slog.String("to", msg.To),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)

			// 最終試行でなければリトライ間隔だけ待つ
			if attempt < q.config.MaxAttempts {
				select {
				case <-ctx.Done():
					return
				case <-time.After(q.config.RetryDelay):
				}
			}
			continue
		}

		q.metrics.RecordMailSent()
		q.logger.Info("mail delivered",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
		)
		return
	}

	q.metrics.RecordMailFailed()
	q.logger.Error("mail delivery gave up",
		slog.String("to", msg.To),
		slog.Int("attempts", q.config.MaxAttempts),
		slog.String("error", lastErr.Error()),
	)
}
