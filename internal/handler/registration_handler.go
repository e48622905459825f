package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gymdesk/internal/model"
	"github.com/hitoshi/gymdesk/internal/registration"
	"github.com/hitoshi/gymdesk/internal/repository"
)

// RegistrationServiceInterface は受講登録ハンドラーが必要とするサービスインターフェース。
type RegistrationServiceInterface interface {
	// Create は受講登録を作成する。
	Create(ctx context.Context, input registration.CreateInput) (*model.Registration, error)
	// Update は受講登録を部分更新する。
	Update(ctx context.Context, id int64, input registration.UpdateInput) (*model.Registration, error)
	// Get は指定IDの受講登録を返す。
	Get(ctx context.Context, id int64) (*model.Registration, error)
	// List は未キャンセルの受講登録一覧を返す。
	List(ctx context.Context) ([]repository.RegistrationWithDetails, error)
	// Cancel は受講登録をソフトキャンセルする。
	Cancel(ctx context.Context, id int64) error
}

// RegistrationHandler は受講登録ワークフローのHTTPハンドラー。
type RegistrationHandler struct {
	service RegistrationServiceInterface
}

// NewRegistrationHandler はRegistrationHandlerを生成する。
func NewRegistrationHandler(service RegistrationServiceInterface) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
	}
}

// registrationResponse は受講登録のAPIレスポンス。
type registrationResponse struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	PlanID    int64     `json:"plan_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Price     float64   `json:"price"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRegistrationResponse(reg *model.Registration) registrationResponse {
	return registrationResponse{
		ID:        reg.ID,
		StudentID: reg.StudentID,
		PlanID:    reg.PlanID,
		StartDate: reg.StartDate,
		EndDate:   reg.EndDate,
		Price:     reg.Price,
		Active:    reg.IsActive(),
		CreatedAt: reg.CreatedAt,
		UpdatedAt: reg.UpdatedAt,
	}
}

// registrationListItem は一覧用の受講登録レスポンス。学生名とプランタイトルを含む。
type registrationListItem struct {
	registrationResponse
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	PlanTitle    string `json:"plan_title"`
}

// createRegistrationRequest は受講登録作成リクエストのボディ。
type createRegistrationRequest struct {
	StudentID int64  `json:"student_id"`
	PlanID    int64  `json:"plan_id"`
	StartDate string `json:"start_date"`
}

// updateRegistrationRequest は受講登録更新リクエストのボディ。nilのフィールドは変更しない。
type updateRegistrationRequest struct {
	StudentID *int64  `json:"student_id"`
	PlanID    *int64  `json:"plan_id"`
	StartDate *string `json:"start_date"`
}

// CreateRegistration は受講登録を作成する。
// POST /api/registrations
//
// 期間と価格はサーバー側でプランから導出する。リクエストの値は受け取らない。
func (h *RegistrationHandler) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	var req createRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	reg, err := h.service.Create(r.Context(), registration.CreateInput{
		StudentID: req.StudentID,
		PlanID:    req.PlanID,
		StartDate: req.StartDate,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRegistrationResponse(reg))
}

// UpdateRegistration は受講登録を部分更新する。
// PUT /api/registrations/{id}
//
// plan_idまたはstart_dateが指定された場合、期間と価格を再導出する。
func (h *RegistrationHandler) UpdateRegistration(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(chi.URLParam(r, "id"))
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	var req updateRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	reg, err := h.service.Update(r.Context(), id, registration.UpdateInput{
		StudentID: req.StudentID,
		PlanID:    req.PlanID,
		StartDate: req.StartDate,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRegistrationResponse(reg))
}

// GetRegistration は指定IDの受講登録を取得する。
// GET /api/registrations/{id}
func (h *RegistrationHandler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(chi.URLParam(r, "id"))
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	reg, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRegistrationResponse(reg))
}

// ListRegistrations は未キャンセルの受講登録一覧を取得する。
// GET /api/registrations
func (h *RegistrationHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 受講登録が存在しない場合も200と空配列を返す
	res := make([]registrationListItem, 0, len(details))
	for _, d := range details {
		res = append(res, registrationListItem{
			registrationResponse: toRegistrationResponse(&d.Registration),
			StudentName:          d.StudentName,
			StudentEmail:         d.StudentEmail,
			PlanTitle:            d.PlanTitle,
		})
	}

	writeJSON(w, http.StatusOK, res)
}

// CancelRegistration は受講登録をソフトキャンセルする。
// DELETE /api/registrations/{id}
func (h *RegistrationHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(chi.URLParam(r, "id"))
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
