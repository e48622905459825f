package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gymdesk/internal/model"
	"github.com/hitoshi/gymdesk/internal/student"
)

// StudentServiceInterface は学生ハンドラーが必要とするサービスインターフェース。
type StudentServiceInterface interface {
	// Create は学生を新規登録する。
	Create(ctx context.Context, input student.CreateInput) (*model.Student, error)
	// Update は学生情報を部分更新する。
	Update(ctx context.Context, id int64, input student.UpdateInput) (*model.Student, error)
	// Get は指定IDの学生を返す。
	Get(ctx context.Context, id int64) (*model.Student, error)
	// List は全学生を返す。
	List(ctx context.Context) ([]*model.Student, error)
	// Delete は学生を削除する。
	Delete(ctx context.Context, id int64) error
}

// StudentHandler は学生管理のHTTPハンドラー。
type StudentHandler struct {
	service StudentServiceInterface
}

// NewStudentHandler はStudentHandlerを生成する。
func NewStudentHandler(service StudentServiceInterface) *StudentHandler {
	return &StudentHandler{
		service: service,
	}
}

// studentResponse は学生情報のAPIレスポンス。
type studentResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	WeightKg  float64   `json:"weight_kg"`
	HeightCm  float64   `json:"height_cm"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toStudentResponse(s *model.Student) studentResponse {
	return studentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Age:       s.Age,
		WeightKg:  s.WeightKg,
		HeightCm:  s.HeightCm,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// createStudentRequest は学生登録リクエストのボディ。
type createStudentRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Age      int     `json:"age"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

// updateStudentRequest は学生更新リクエストのボディ。nilのフィールドは変更しない。
type updateStudentRequest struct {
	Name     *string  `json:"name"`
	Email    *string  `json:"email"`
	Age      *int     `json:"age"`
	WeightKg *float64 `json:"weight_kg"`
	HeightCm *float64 `json:"height_cm"`
}

// validateStudentFields は学生の属性値を検証する。
func validateStudentFields(age *int, weightKg, heightCm *float64) *model.APIError {
	if age != nil && *age <= 0 {
		return model.NewValidationError("ageは正の整数を指定してください")
	}
	if weightKg != nil && *weightKg <= 0 {
		return model.NewValidationError("weight_kgは正の数を指定してください")
	}
	if heightCm != nil && *heightCm <= 0 {
		return model.NewValidationError("height_cmは正の数を指定してください")
	}
	return nil
}

// CreateStudent は学生を新規登録する。
// POST /api/students
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
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
	if apiErr := validateStudentFields(&req.Age, &req.WeightKg, &req.HeightCm); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	s, err := h.service.Create(r.Context(), student.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStudentResponse(s))
}

// UpdateStudent は学生情報を部分更新する。
// PUT /api/students/{id}
func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(chi.URLParam(r, "id"))
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	var req updateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if apiErr := validateStudentFields(req.Age, req.WeightKg, req.HeightCm); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	s, err := h.service.Update(r.Context(), id, student.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStudentResponse(s))
}

// GetStudent は指定IDの学生を取得する。
// GET /api/students/{id}
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(chi.URLParam(r, "id"))
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	s, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStudentResponse(s))
}

// ListStudents は全学生の一覧を取得する。
// GET /api/students
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 学生が存在しない場合も200と空配列を返す
	res := make([]studentResponse, 0, len(students))
	for _, s := range students {
		res = append(res, toStudentResponse(s))
	}

	writeJSON(w, http.StatusOK, res)
}

// DeleteStudent は学生を削除する。
// DELETE /api/students/{id}
func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(chi.URLParam(r, "id"))
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
