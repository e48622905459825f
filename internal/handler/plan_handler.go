package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gymdesk/internal/model"
	"github.com/hitoshi/gymdesk/internal/plan"
)

// PlanServiceInterface はプランハンドラーが必要とするサービスインターフェース。
type PlanServiceInterface interface {
	// Create はプランを新規登録する。
	Create(ctx context.Context, input plan.CreateInput) (*model.Plan, error)
	// Update はプラン情報を部分更新する。
	Update(ctx context.Context, id int64, input plan.UpdateInput) (*model.Plan, error)
	// Get は指定IDのプランを返す。
	Get(ctx context.Context, id int64) (*model.Plan, error)
	// List は全プランを返す。
	List(ctx context.Context) ([]*model.Plan, error)
	// Delete はプランを削除する。
	Delete(ctx context.Context, id int64) error
}

// PlanHandler は会員プラン管理のHTTPハンドラー。
type PlanHandler struct {
	service PlanServiceInterface
}

// NewPlanHandler はPlanHandlerを生成する。
func NewPlanHandler(service PlanServiceInterface) *PlanHandler {
	return &PlanHandler{
		service: service,
	}
}

// planResponse はプラン情報のAPIレスポンス。
type planResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Price          float64   `json:"price"`
	DurationMonths int       `json:"duration_months"`
	TotalPrice     float64   `json:"total_price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toPlanResponse(p *model.Plan) planResponse {
	return planResponse{
		ID:             p.ID,
		Title:          p.Title,
		Price:          p.Price,
		DurationMonths: p.DurationMonths,
		TotalPrice:     p.TotalPrice(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// createPlanRequest はプラン登録リクエストのボディ。
type createPlanRequest struct {
	Title          string  `json:"title"`
	Price          float64 `json:"price"`
	DurationMonths int     `json:"duration_months"`
}

// updatePlanRequest はプラン更新リクエストのボディ。nilのフィールドは変更しない。
type updatePlanRequest struct {
	Title          *string  `json:"title"`
	Price          *float64 `json:"price"`
	DurationMonths *int     `json:"duration_months"`
}

// CreatePlan はプランを新規登録する。
// POST /api/plans
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("titleは必須です"))
		return
	}

	p, err := h.service.Create(r.Context(), plan.CreateInput{
		Title:          req.Title,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPlanResponse(p))
}

// UpdatePlan はプラン情報を部分更新する。
// PUT /api/plans/{id}
func (h *PlanHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(chi.URLParam(r, "id"))
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	var req updatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	p, err := h.service.Update(r.Context(), id, plan.UpdateInput{
		Title:          req.Title,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlanResponse(p))
}

// GetPlan は指定IDのプランを取得する。
// GET /api/plans/{id}
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(chi.URLParam(r, "id"))
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlanResponse(p))
}

// ListPlans は全プランの一覧を取得する。
// GET /api/plans
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// プランが存在しない場合も200と空配列を返す
	res := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, toPlanResponse(p))
	}

	writeJSON(w, http.StatusOK, res)
}

// DeletePlan はプランを削除する。
// DELETE /api/plans/{id}
func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
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
