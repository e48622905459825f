// Package registration は受講登録ワークフローのドメインロジックを提供する。
// 入力検証 → 学生解決 → プラン解決 → 期間・価格の導出 → 永続化 → 確認メール
// の順で処理し、最初の失敗で短絡する。
package registration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/gymdesk/internal/mailer"
	"github.com/hitoshi/gymdesk/internal/model"
	"github.com/hitoshi/gymdesk/internal/repository"
)

// Notifier は確認メールの投入インターフェース。
// 投入後の配送はベストエフォートで、受講登録の成否には影響しない。
type Notifier interface {
	// Enqueue はメールを配送キューに投入する。
	Enqueue(msg *mailer.Message)
}

// MetricsRecorder は受講登録メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordRegistrationCreated()
	RecordRegistrationCancelled()
}

// Service は受講登録ワークフローのサービス層。
type Service struct {
	regRepo     repository.RegistrationRepository
	studentRepo repository.StudentRepository
	planRepo    repository.PlanRepository
	notifier    Notifier
	metrics     MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	regRepo repository.RegistrationRepository,
	studentRepo repository.StudentRepository,
	planRepo repository.PlanRepository,
	notifier Notifier,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		regRepo:     regRepo,
		studentRepo: studentRepo,
		planRepo:    planRepo,
		notifier:    notifier,
		metrics:     metrics,
	}
}

// CreateInput は受講登録作成の入力。
type CreateInput struct {
	StartDate string
	StudentID int64
	PlanID    int64
}

// Create は受講登録を作成する。
//
// 制約は次の順に検証し、最初の失敗で短絡する:
//  1. 形状検証（start_dateが日付として解釈可能、student_id/plan_idが正の整数）
//  2. student_idが既存の学生を参照していること
//  3. plan_idが既存のプランを参照していること
//
// すべての検証を通過した後に期間と価格を導出する:
//
//	start     = end_of_day(parse(start_date))
//	end_date  = start + plan.duration（カレンダー月）
//	price     = plan.price × plan.duration
//
// 永続化に成功した場合のみ確認メールをキューに投入する。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Registration, error) {
	// 1. 形状検証（参照解決より前に行う）
	if input.StartDate == "" {
		return nil, model.NewValidationError("start_dateは必須です")
	}
	if input.StudentID <= 0 {
		return nil, model.NewValidationError("student_idは正の整数を指定してください")
	}
	if input.PlanID <= 0 {
		return nil, model.NewValidationError("plan_idは正の整数を指定してください")
	}

	parsed, err := ParseStartDate(input.StartDate)
	if err != nil {
		return nil, model.NewValidationError("start_dateを日付として解釈できません")
	}

	// 2. 学生の解決
	student, err := s.studentRepo.FindByID(ctx, input.StudentID)
	if err != nil {
		return nil, fmt.Errorf("学生の取得に失敗しました: %w", err)
	}
	if student == nil {
		return nil, model.NewStudentNotFoundError(input.StudentID)
	}

	// 3. プランの解決
	plan, err := s.planRepo.FindByID(ctx, input.PlanID)
	if err != nil {
		return nil, fmt.Errorf("プランの取得に失敗しました: %w", err)
	}
	if plan == nil {
		return nil, model.NewPlanNotFoundError(input.PlanID)
	}

	// 4. 期間・価格の導出
	startDate := EndOfDay(parsed)
	reg := &model.Registration{
		StudentID: student.ID,
		PlanID:    plan.ID,
		StartDate: startDate,
		EndDate:   AddMonths(startDate, plan.DurationMonths),
		Price:     plan.TotalPrice(),
	}

	// 5. 永続化
	if err := s.regRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("受講登録の作成に失敗しました: %w", err)
	}

	s.metrics.RecordRegistrationCreated()
	slog.Info("registration created",
		slog.Int64("registration_id", reg.ID),
		slog.Int64("student_id", student.ID),
		slog.Int64("plan_id", plan.ID),
		slog.Time("end_date", reg.EndDate),
	)

	// 6. 確認メールの投入（ベストエフォート）
	s.enqueueConfirmation(student, plan, reg)

	return reg, nil
}

// enqueueConfirmation は確認メールを組み立てて配送キューに投入する。
// 組み立て失敗はログに記録するのみで、呼び出し元にエラーを返さない。
func (s *Service) enqueueConfirmation(student *model.Student, plan *model.Plan, reg *model.Registration) {
	msg, err := mailer.BuildConfirmation(mailer.ConfirmationInput{
		StudentName:  student.Name,
		StudentEmail: student.Email,
		PlanTitle:    plan.Title,
		TotalPrice:   reg.Price,
		EndDate:      reg.EndDate,
	})
	if err != nil {
		slog.Error("failed to build confirmation mail",
			slog.Int64("registration_id", reg.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	s.notifier.Enqueue(msg)
}

// UpdateInput は受講登録更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	StudentID *int64
	PlanID    *int64
	StartDate *string
}

// Update は受講登録を部分更新する。
//
// plan_idまたはstart_dateが指定された場合、期間と価格を全面的に再導出する。
// student_idのみの更新では期間・価格は変更されない。
// 参照先の学生・プランは再検証する。
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*model.Registration, error) {
	reg, err := s.regRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("受講登録の取得に失敗しました: %w", err)
	}
	if reg == nil {
		return nil, model.NewRegistrationNotFoundError(id)
	}

	if input.StudentID != nil {
		if *input.StudentID <= 0 {
			return nil, model.NewValidationError("student_idは正の整数を指定してください")
		}
		student, err := s.studentRepo.FindByID(ctx, *input.StudentID)
		if err != nil {
			return nil, fmt.Errorf("学生の取得に失敗しました: %w", err)
		}
		if student == nil {
			return nil, model.NewStudentNotFoundError(*input.StudentID)
		}
		reg.StudentID = student.ID
	}

	// plan_idまたはstart_dateが変わる場合は期間・価格を再導出する
	rederive := false

	if input.PlanID != nil {
		if *input.PlanID <= 0 {
			return nil, model.NewValidationError("plan_idは正の整数を指定してください")
		}
		reg.PlanID = *input.PlanID
		rederive = true
	}

	if input.StartDate != nil {
		parsed, err := ParseStartDate(*input.StartDate)
		if err != nil {
			return nil, model.NewValidationError("start_dateを日付として解釈できません")
		}
		reg.StartDate = EndOfDay(parsed)
		rederive = true
	}

	if rederive {
		plan, err := s.planRepo.FindByID(ctx, reg.PlanID)
		if err != nil {
			return nil, fmt.Errorf("プランの取得に失敗しました: %w", err)
		}
		if plan == nil {
			return nil, model.NewPlanNotFoundError(reg.PlanID)
		}
		reg.EndDate = AddMonths(reg.StartDate, plan.DurationMonths)
		reg.Price = plan.TotalPrice()
	}

	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("受講登録の更新に失敗しました: %w", err)
	}

	return reg, nil
}

// Get は指定IDの受講登録を返す。
func (s *Service) Get(ctx context.Context, id int64) (*model.Registration, error) {
	reg, err := s.regRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("受講登録の取得に失敗しました: %w", err)
	}
	if reg == nil {
		return nil, model.NewRegistrationNotFoundError(id)
	}
	return reg, nil
}

// List は未キャンセルの受講登録一覧を学生名・プランタイトル付きで返す。
// キャンセル済み（cancelled_atが非NULL）の登録は含まれない。
func (s *Service) List(ctx context.Context) ([]repository.RegistrationWithDetails, error) {
	details, err := s.regRepo.ListActiveWithDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("受講登録一覧の取得に失敗しました: %w", err)
	}
	return details, nil
}

// Cancel は受講登録をソフトキャンセルする（cancelled_atを設定）。
// 既にキャンセル済みの場合はAlreadyCancelledエラーを返す。
func (s *Service) Cancel(ctx context.Context, id int64) error {
	reg, err := s.regRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("受講登録の取得に失敗しました: %w", err)
	}
	if reg == nil {
		return model.NewRegistrationNotFoundError(id)
	}
	if !reg.IsActive() {
		return model.NewAlreadyCancelledError(id)
	}

	cancelled, err := s.regRepo.Cancel(ctx, id)
	if err != nil {
		return fmt.Errorf("受講登録のキャンセルに失敗しました: %w", err)
	}
	if !cancelled {
		// FindByIDとの間で競合した場合
		return model.NewAlreadyCancelledError(id)
	}

	s.metrics.RecordRegistrationCancelled()
	slog.Info("registration cancelled", slog.Int64("registration_id", id))
	return nil
}
