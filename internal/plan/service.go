// Package plan は会員プラン管理のドメインロジックを提供する。
package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/gymdesk/internal/model"
	"github.com/hitoshi/gymdesk/internal/repository"
)

// Service は会員プラン管理のサービス層。
type Service struct {
	planRepo repository.PlanRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(planRepo repository.PlanRepository) *Service {
	return &Service{planRepo: planRepo}
}

// CreateInput はプラン登録の入力。
type CreateInput struct {
	Title          string
	Price          float64
	DurationMonths int
}

// Create はプランを新規登録する。
// タイトルが既に使用されている場合はDuplicatePlanエラーを返す。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Plan, error) {
	if input.Price <= 0 {
		return nil, model.NewValidationError("priceは0より大きい値を指定してください")
	}
	if input.DurationMonths <= 0 {
		return nil, model.NewValidationError("durationは1以上の月数を指定してください")
	}

	existing, err := s.planRepo.FindByTitle(ctx, input.Title)
	if err != nil {
		return nil, fmt.Errorf("既存プランの検索に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicatePlanError(input.Title)
	}

	plan := &model.Plan{
		Title:          input.Title,
		Price:          input.Price,
		DurationMonths: input.DurationMonths,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("プランの作成に失敗しました: %w", err)
	}

	slog.Info("plan created",
		slog.Int64("plan_id", plan.ID),
		slog.String("title", plan.Title),
	)

	return plan, nil
}

// UpdateInput はプラン更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Title          *string
	Price          *float64
	DurationMonths *int
}

// Update はプラン情報を部分更新する。
// タイトルが現在の値から変更される場合のみ重複を検証する。
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*model.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("プランの取得に失敗しました: %w", err)
	}
	if plan == nil {
		return nil, model.NewPlanNotFoundError(id)
	}

	if input.Title != nil && *input.Title != plan.Title {
		existing, err := s.planRepo.FindByTitle(ctx, *input.Title)
		if err != nil {
			return nil, fmt.Errorf("既存プランの検索に失敗しました: %w", err)
		}
		if existing != nil {
			return nil, model.NewDuplicatePlanError(*input.Title)
		}
		plan.Title = *input.Title
	}

	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, model.NewValidationError("priceは0より大きい値を指定してください")
		}
		plan.Price = *input.Price
	}
	if input.DurationMonths != nil {
		if *input.DurationMonths <= 0 {
			return nil, model.NewValidationError("durationは1以上の月数を指定してください")
		}
		plan.DurationMonths = *input.DurationMonths
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("プランの更新に失敗しました: %w", err)
	}

	return plan, nil
}

// Get は指定IDのプランを返す。
func (s *Service) Get(ctx context.Context, id int64) (*model.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("プランの取得に失敗しました: %w", err)
	}
	if plan == nil {
		return nil, model.NewPlanNotFoundError(id)
	}
	return plan, nil
}

// List は全プランを契約月数の昇順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Plan, error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("プラン一覧の取得に失敗しました: %w", err)
	}
	return plans, nil
}

// Delete は指定IDのプランを削除する。
func (s *Service) Delete(ctx context.Context, id int64) error {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("プランの取得に失敗しました: %w", err)
	}
	if plan == nil {
		return model.NewPlanNotFoundError(id)
	}

	if err := s.planRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("プランの削除に失敗しました: %w", err)
	}

	slog.Info("plan deleted", slog.Int64("plan_id", id))
	return nil
}
