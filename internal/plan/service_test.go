package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/gymdesk/internal/model"
)

// --- モック ---

type mockPlanRepo struct {
	findByIDFn    func(ctx context.Context, id int64) (*model.Plan, error)
	findByTitleFn func(ctx context.Context, title string) (*model.Plan, error)
	createFn      func(ctx context.Context, plan *model.Plan) error
	updateFn      func(ctx context.Context, plan *model.Plan) error
	listFn        func(ctx context.Context) ([]*model.Plan, error)
	deleteFn      func(ctx context.Context, id int64) error
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id int64) (*model.Plan, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockPlanRepo) FindByTitle(ctx context.Context, title string) (*model.Plan, error) {
	if m.findByTitleFn != nil {
		return m.findByTitleFn(ctx, title)
	}
	return nil, nil
}
func (m *mockPlanRepo) Create(ctx context.Context, plan *model.Plan) error {
	if m.createFn != nil {
		return m.createFn(ctx, plan)
	}
	return nil
}
func (m *mockPlanRepo) Update(ctx context.Context, plan *model.Plan) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, plan)
	}
	return nil
}
func (m *mockPlanRepo) List(ctx context.Context) ([]*model.Plan, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockPlanRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- テスト ---

// TestService_Create はプラン登録の正常系を検証する。
func TestService_Create(t *testing.T) {
	repo := &mockPlanRepo{
		createFn: func(ctx context.Context, plan *model.Plan) error {
			plan.ID = 1
			return nil
		},
	}

	svc := NewService(repo)

	p, err := svc.Create(context.Background(), CreateInput{
		Title:          "Gold",
		Price:          100,
		DurationMonths: 3,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("ID = %d, want 1", p.ID)
	}
	if p.TotalPrice() != 300 {
		t.Errorf("TotalPrice = %v, want 300", p.TotalPrice())
	}
}

// TestService_Create_InvalidFields は価格・期間の検証を確認する。
func TestService_Create_InvalidFields(t *testing.T) {
	svc := NewService(&mockPlanRepo{})

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"価格が0", CreateInput{Title: "Gold", Price: 0, DurationMonths: 3}},
		{"価格が負", CreateInput{Title: "Gold", Price: -10, DurationMonths: 3}},
		{"期間が0", CreateInput{Title: "Gold", Price: 100, DurationMonths: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Code != model.ErrCodeValidationFailed {
				t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeValidationFailed)
			}
		})
	}
}

// TestService_Create_DuplicateTitle はタイトル重複時の登録拒否を検証する。
func TestService_Create_DuplicateTitle(t *testing.T) {
	repo := &mockPlanRepo{
		findByTitleFn: func(ctx context.Context, title string) (*model.Plan, error) {
			return &model.Plan{ID: 1, Title: title}, nil
		},
	}

	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{
		Title:          "Gold",
		Price:          100,
		DurationMonths: 3,
	})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeDuplicatePlan {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeDuplicatePlan)
	}
}

// TestService_Update はプラン更新の正常系を検証する。
func TestService_Update(t *testing.T) {
	repo := &mockPlanRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Plan, error) {
			return &model.Plan{ID: id, Title: "Gold", Price: 100, DurationMonths: 3}, nil
		},
	}

	svc := NewService(repo)

	newPrice := 150.0
	p, err := svc.Update(context.Background(), 1, UpdateInput{Price: &newPrice})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if p.Price != 150 {
		t.Errorf("Price = %v, want 150", p.Price)
	}
	if p.Title != "Gold" {
		t.Errorf("Title = %q, want unchanged", p.Title)
	}
}

// TestService_Update_NotFound は存在しないプランの更新を検証する。
func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(&mockPlanRepo{})

	_, err := svc.Update(context.Background(), 999, UpdateInput{})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodePlanNotFound {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodePlanNotFound)
	}
}

// TestService_Delete は削除の正常系を検証する。
func TestService_Delete(t *testing.T) {
	deleted := false
	repo := &mockPlanRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Plan, error) {
			return &model.Plan{ID: id, Title: "Gold"}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}

	svc := NewService(repo)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Error("expected repo Delete to be called")
	}
}
