package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gymdesk/internal/model"
	"github.com/hitoshi/gymdesk/internal/student"
)

// --- モック ---

type mockStudentSvc struct {
	createFn func(ctx context.Context, input student.CreateInput) (*model.Student, error)
	updateFn func(ctx context.Context, id int64, input student.UpdateInput) (*model.Student, error)
	getFn    func(ctx context.Context, id int64) (*model.Student, error)
	listFn   func(ctx context.Context) ([]*model.Student, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockStudentSvc) Create(ctx context.Context, input student.CreateInput) (*model.Student, error) {
	return m.createFn(ctx, input)
}
func (m *mockStudentSvc) Update(ctx context.Context, id int64, input student.UpdateInput) (*model.Student, error) {
	return m.updateFn(ctx, id, input)
}
func (m *mockStudentSvc) Get(ctx context.Context, id int64) (*model.Student, error) {
	return m.getFn(ctx, id)
}
func (m *mockStudentSvc) List(ctx context.Context) ([]*model.Student, error) {
	return m.listFn(ctx)
}
func (m *mockStudentSvc) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func studentTestRouter(svc StudentServiceInterface) http.Handler {
	h := NewStudentHandler(svc)
	r := chi.NewRouter()
	r.Route("/api/students", func(r chi.Router) {
		r.Get("/", h.ListStudents)
		r.Post("/", h.CreateStudent)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetStudent)
			r.Put("/", h.UpdateStudent)
			r.Delete("/", h.DeleteStudent)
		})
	})
	return r
}

// --- テスト ---

// TestStudentHandler_Create は学生登録の正常系を検証する。
func TestStudentHandler_Create(t *testing.T) {
	svc := &mockStudentSvc{
		createFn: func(ctx context.Context, input student.CreateInput) (*model.Student, error) {
			if input.Name != "山田太郎" || input.Email != "taro@example.com" {
				t.Errorf("unexpected input: %+v", input)
			}
			return &model.Student{
				ID:       1,
				Name:     input.Name,
				Email:    input.Email,
				Age:      25,
				WeightKg: 70.5,
				HeightCm: 172.0,
			}, nil
		},
	}

	router := studentTestRouter(svc)

	body := `{"name": "山田太郎", "email": "taro@example.com", "age": 25, "weight_kg": 70.5, "height_cm": 172.0}`
	req := httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var res struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		WeightKg float64 `json:"weight_kg"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.ID != 1 || res.Name != "山田太郎" || res.WeightKg != 70.5 {
		t.Errorf("unexpected response: %+v", res)
	}
}

// TestStudentHandler_Create_Validation は必須フィールドや属性値の検証を
// 確認する。サービスは呼ばれない。
func TestStudentHandler_Create_Validation(t *testing.T) {
	svc := &mockStudentSvc{
		createFn: func(ctx context.Context, input student.CreateInput) (*model.Student, error) {
			t.Fatal("service should not be called for invalid input")
			return nil, nil
		},
	}

	router := studentTestRouter(svc)

	tests := []struct {
		name string
		body string
	}{
		{"nameなし", `{"email": "taro@example.com", "age": 25, "weight_kg": 70, "height_cm": 172}`},
		{"emailなし", `{"name": "山田太郎", "age": 25, "weight_kg": 70, "height_cm": 172}`},
		{"ageがゼロ", `{"name": "山田太郎", "email": "taro@example.com", "age": 0, "weight_kg": 70, "height_cm": 172}`},
		{"weight_kgが負", `{"name": "山田太郎", "email": "taro@example.com", "age": 25, "weight_kg": -1, "height_cm": 172}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

// TestStudentHandler_Create_DuplicateEmail はメール重複が409になることを
// 検証する。
func TestStudentHandler_Create_DuplicateEmail(t *testing.T) {
	svc := &mockStudentSvc{
		createFn: func(ctx context.Context, input student.CreateInput) (*model.Student, error) {
			return nil, model.NewDuplicateStudentError(input.Email)
		},
	}

	router := studentTestRouter(svc)

	body := `{"name": "山田太郎", "email": "taro@example.com", "age": 25, "weight_kg": 70, "height_cm": 172}`
	req := httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var res apiErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if res.Code != model.ErrCodeDuplicateStudent {
		t.Errorf("error code = %q, want %q", res.Code, model.ErrCodeDuplicateStudent)
	}
}

// TestStudentHandler_Update は部分更新のリクエストがそのままサービスに
// 渡ることを検証する。
func TestStudentHandler_Update(t *testing.T) {
	svc := &mockStudentSvc{
		updateFn: func(ctx context.Context, id int64, input student.UpdateInput) (*model.Student, error) {
			if id != 1 {
				t.Errorf("id = %d, want 1", id)
			}
			if input.Age == nil || *input.Age != 26 {
				t.Errorf("Age = %v, want 26", input.Age)
			}
			if input.Name != nil || input.Email != nil {
				t.Error("Name and Email should be nil")
			}
			return &model.Student{ID: id, Age: 26}, nil
		},
	}

	router := studentTestRouter(svc)

	body := `{"age": 26}`
	req := httptest.NewRequest(http.MethodPut, "/api/students/1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

// TestStudentHandler_Get_NotFound は存在しない学生の取得が404になることを
// 検証する。
func TestStudentHandler_Get_NotFound(t *testing.T) {
	svc := &mockStudentSvc{
		getFn: func(ctx context.Context, id int64) (*model.Student, error) {
			return nil, model.NewStudentNotFoundError(id)
		},
	}

	router := studentTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/students/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// TestStudentHandler_List_Empty は学生がいない場合に200と空配列が返る
// ことを検証する。
func TestStudentHandler_List_Empty(t *testing.T) {
	svc := &mockStudentSvc{
		listFn: func(ctx context.Context) ([]*model.Student, error) {
			return nil, nil
		},
	}

	router := studentTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

// TestStudentHandler_Delete は削除の正常系が204になることを検証する。
func TestStudentHandler_Delete(t *testing.T) {
	svc := &mockStudentSvc{
		deleteFn: func(ctx context.Context, id int64) error {
			if id != 1 {
				t.Errorf("id = %d, want 1", id)
			}
			return nil
		},
	}

	router := studentTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/students/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
