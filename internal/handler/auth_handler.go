package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hitoshi/gymdesk/internal/auth"
	"github.com/hitoshi/gymdesk/internal/middleware"
	"github.com/hitoshi/gymdesk/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Register は管理者ユーザーを新規登録する。
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	// Login はメールアドレスとパスワードを検証し、JWTを発行する。
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	// Update は認証済みユーザーのプロフィールを部分更新する。
	Update(ctx context.Context, userID int64, input auth.UpdateInput) (*model.User, error)
}

// AuthHandler は管理者ユーザーの登録・ログイン・更新のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// userResponse は管理者ユーザーのAPIレスポンス。パスワードハッシュは含めない。
type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// registerRequest は管理者ユーザー登録リクエストのボディ。
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionRequest はログインリクエストのボディ。
type sessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse はログイン成功時のレスポンス。
type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// updateUserRequest はプロフィール更新リクエストのボディ。nilのフィールドは変更しない。
type updateUserRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	OldPassword     *string `json:"old_password"`
	Password        *string `json:"password"`
	ConfirmPassword *string `json:"confirm_password"`
}

// Register は管理者ユーザーを新規登録する。
// POST /users
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("nameは必須です"))
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("emailは必須です"))
		return
	}
	if len(req.Password) < 6 {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("passwordは6文字以上を指定してください"))
		return
	}

	user, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// CreateSession はログインしてJWTを発行する。
// POST /sessions
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if req.Email == "" || req.Password == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("emailとpasswordは必須です"))
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// UpdateProfile は認証済みユーザーのプロフィールを更新する。
// PUT /api/users
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
			Code:     "UNAUTHORIZED",
			Message:  "認証が必要です。",
			Category: "auth",
			Action:   "ログインしてください。",
		})
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	// パスワード変更時は確認用パスワードとの一致を検証する
	if req.Password != nil {
		if *req.Password == "" || len(*req.Password) < 6 {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("passwordは6文字以上を指定してください"))
			return
		}
		if req.ConfirmPassword == nil || *req.ConfirmPassword != *req.Password {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("confirm_passwordがpasswordと一致しません"))
			return
		}
	}

	user, err := h.service.Update(r.Context(), userID, auth.UpdateInput{
		Name:        req.Name,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		Password:    req.Password,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
