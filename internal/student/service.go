// Package student は学生管理のドメインロジックを提供する。
package student

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/gymdesk/internal/model"
	"github.com/hitoshi/gymdesk/internal/repository"
)

// Service は学生管理のサービス層。
// 学生の登録、更新、一覧取得、削除のビジネスロジックを提供する。
type Service struct {
	studentRepo repository.StudentRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(studentRepo repository.StudentRepository) *Service {
	return &Service{studentRepo: studentRepo}
}

// CreateInput は学生登録の入力。
type CreateInput struct {
	Name     string
	Email    string
	Age      int
	WeightKg float64
	HeightCm float64
}

// Create は学生を新規登録する。
// メールアドレスが既に使用されている場合はDuplicateStudentエラーを返す。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Student, error) {
	existing, err := s.studentRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("既存学生の検索に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateStudentError(input.Email)
	}

	student := &model.Student{
		Name:     input.Name,
		Email:    input.Email,
		Age:      input.Age,
		WeightKg: input.WeightKg,
		HeightCm: input.HeightCm,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("学生の作成に失敗しました: %w", err)
	}

	slog.Info("student created",
		slog.Int64("student_id", student.ID),
		slog.String("email", student.Email),
	)

	return student, nil
}

// UpdateInput は学生更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Name     *string
	Email    *string
	Age      *int
	WeightKg *float64
	HeightCm *float64
}

// Update は学生情報を部分更新する。
// メールアドレスが現在の値から変更される場合のみ重複を検証する。
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*model.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("学生の取得に失敗しました: %w", err)
	}
	if student == nil {
		return nil, model.NewStudentNotFoundError(id)
	}

	if input.Email != nil && *input.Email != student.Email {
		existing, err := s.studentRepo.FindByEmail(ctx, *input.Email)
		if err != nil {
			return nil, fmt.Errorf("既存学生の検索に失敗しました: %w", err)
		}
		if existing != nil {
			return nil, model.NewDuplicateStudentError(*input.Email)
		}
		student.Email = *input.Email
	}

	if input.Name != nil {
		student.Name = *input.Name
	}
	if input.Age != nil {
		student.Age = *input.Age
	}
	if input.WeightKg != nil {
		student.WeightKg = *input.WeightKg
	}
	if input.HeightCm != nil {
		student.HeightCm = *input.HeightCm
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("学生の更新に失敗しました: %w", err)
	}

	return student, nil
}

// Get は指定IDの学生を返す。
func (s *Service) Get(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("学生の取得に失敗しました: %w", err)
	}
	if student == nil {
		return nil, model.NewStudentNotFoundError(id)
	}
	return student, nil
}

// List は全学生を作成日時の昇順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("学生一覧の取得に失敗しました: %w", err)
	}
	return students, nil
}

// Delete は指定IDの学生を削除する。
func (s *Service) Delete(ctx context.Context, id int64) error {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("学生の取得に失敗しました: %w", err)
	}
	if student == nil {
		return model.NewStudentNotFoundError(id)
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("学生の削除に失敗しました: %w", err)
	}

	slog.Info("student deleted", slog.Int64("student_id", id))
	return nil
}
