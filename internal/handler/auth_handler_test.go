package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/gymdesk/internal/auth"
	"github.com/hitoshi/gymdesk/internal/middleware"
	"github.com/hitoshi/gymdesk/internal/model"
)

// --- モック ---

type mockAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*model.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *model.User, error)
	updateFn   func(ctx context.Context, userID int64, input auth.UpdateInput) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	return m.registerFn(ctx, name, email, password)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAuthService) Update(ctx context.Context, userID int64, input auth.UpdateInput) (*model.User, error) {
	return m.updateFn(ctx, userID, input)
}

// --- テスト ---

// TestAuthHandler_Register は管理者ユーザー登録の正常系を検証する。
// レスポンスにパスワード情報が含まれないこと。
func TestAuthHandler_Register(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*model.User, error) {
			return &model.User{ID: 1, Name: name, Email: email, PasswordHash: "hash"}, nil
		},
	}

	h := NewAuthHandler(svc)

	body := `{"name": "管理者", "email": "admin@example.com", "password": "secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Error("response must not contain password hash")
	}

	var res userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.ID != 1 || res.Email != "admin@example.com" {
		t.Errorf("unexpected response: %+v", res)
	}
}

// TestAuthHandler_Register_Validation は必須フィールドの検証を確認する。
func TestAuthHandler_Register_Validation(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*model.User, error) {
			t.Fatal("service should not be called for invalid input")
			return nil, nil
		},
	}

	h := NewAuthHandler(svc)

	tests := []struct {
		name string
		body string
	}{
		{"name欠落", `{"email": "admin@example.com", "password": "secret123"}`},
		{"email欠落", `{"name": "管理者", "password": "secret123"}`},
		{"password短すぎ", `{"name": "管理者", "email": "admin@example.com", "password": "abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

// TestAuthHandler_CreateSession はログイン成功時のレスポンスを検証する。
func TestAuthHandler_CreateSession(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *model.User, error) {
			return "signed-token", &model.User{ID: 42, Name: "管理者", Email: email}, nil
		},
	}

	h := NewAuthHandler(svc)

	body := `{"email": "admin@example.com", "password": "secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var res sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Token != "signed-token" {
		t.Errorf("token = %q", res.Token)
	}
	if res.User.ID != 42 {
		t.Errorf("user id = %d, want 42", res.User.ID)
	}
}

// TestAuthHandler_CreateSession_InvalidCredentials は認証失敗が401になる
// ことを検証する。
func TestAuthHandler_CreateSession_InvalidCredentials(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *model.User, error) {
			return "", nil, model.NewInvalidCredentialsError()
		},
	}

	h := NewAuthHandler(svc)

	body := `{"email": "admin@example.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateSession(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// TestAuthHandler_UpdateProfile_ConfirmPasswordMismatch は確認用パスワード
// 不一致が400になることを検証する。
func TestAuthHandler_UpdateProfile_ConfirmPasswordMismatch(t *testing.T) {
	svc := &mockAuthService{
		updateFn: func(ctx context.Context, userID int64, input auth.UpdateInput) (*model.User, error) {
			t.Fatal("service should not be called for mismatched confirmation")
			return nil, nil
		},
	}

	h := NewAuthHandler(svc)

	body := `{"old_password": "old", "password": "new-password", "confirm_password": "different"}`
	req := httptest.NewRequest(http.MethodPut, "/api/users", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 42))
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// TestAuthHandler_UpdateProfile はプロフィール更新の正常系を検証する。
func TestAuthHandler_UpdateProfile(t *testing.T) {
	svc := &mockAuthService{
		updateFn: func(ctx context.Context, userID int64, input auth.UpdateInput) (*model.User, error) {
			if userID != 42 {
				t.Errorf("userID = %d, want 42", userID)
			}
			if input.Name == nil || *input.Name != "新しい名前" {
				t.Errorf("Name = %v", input.Name)
			}
			return &model.User{ID: 42, Name: *input.Name, Email: "admin@example.com"}, nil
		},
	}

	h := NewAuthHandler(svc)

	body := `{"name": "新しい名前"}`
	req := httptest.NewRequest(http.MethodPut, "/api/users", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 42))
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
