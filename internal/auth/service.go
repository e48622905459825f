// Package auth は管理者ユーザーの登録、ログイン、JWTの発行・検証を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/gymdesk/internal/model"
	"github.com/hitoshi/gymdesk/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	config   ServiceConfig
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, config ServiceConfig) *Service {
	return &Service{
		userRepo: userRepo,
		config:   config,
	}
}

// Register は管理者ユーザーを新規登録する。
// メールアドレスが既に使用されている場合はDuplicateUserエラーを返す。
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("既存ユーザーの検索に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateUserError(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	slog.Info("new user registered",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login はメールアドレスとパスワードを検証し、JWTを発行する。
// 未登録メールアドレスとパスワード不一致は同じエラーとして扱う。
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("ユーザーの検索に失敗しました: %w", err)
	}
	if user == nil {
		return "", nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, model.NewInvalidCredentialsError()
	}

	token, err := IssueToken(s.config.JWTSecret, user.ID, s.config.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	slog.Info("user logged in", slog.Int64("user_id", user.ID))

	return token, user, nil
}

// VerifyToken はJWTを検証し、認証済みユーザーIDを返す。
func (s *Service) VerifyToken(tokenString string) (int64, error) {
	return ParseToken(s.config.JWTSecret, tokenString)
}

// UpdateInput はプロフィール更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Name        *string
	Email       *string
	OldPassword *string
	Password    *string
}

// Update は認証済みユーザーのプロフィールを部分更新する。
// パスワード変更には現在のパスワードの提示が必須。
// メールアドレス変更時は重複を検証する。
func (s *Service) Update(ctx context.Context, userID int64, input UpdateInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, *input.Email)
		if err != nil {
			return nil, fmt.Errorf("既存ユーザーの検索に失敗しました: %w", err)
		}
		if existing != nil {
			return nil, model.NewDuplicateUserError(*input.Email)
		}
		user.Email = *input.Email
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Password != nil {
		if input.OldPassword == nil {
			return nil, model.NewPasswordMismatchError()
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*input.OldPassword)); err != nil {
			return nil, model.NewPasswordMismatchError()
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("ユーザーの更新に失敗しました: %w", err)
	}

	return user, nil
}
