package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			if len(mf.GetMetric()) != 1 {
				t.Fatalf("expected 1 metric for %s, got %d", name, len(mf.GetMetric()))
			}
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

// TestCollector_RegistrationCounters は受講登録カウンタの増加を検証する。
func TestCollector_RegistrationCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistrationCreated()
	c.RecordRegistrationCreated()
	c.RecordRegistrationCancelled()

	if got := counterValue(t, reg, "gymdesk_registrations_created_total"); got != 2 {
		t.Errorf("registrations_created_total = %v, want 2", got)
	}
	if got := counterValue(t, reg, "gymdesk_registrations_cancelled_total"); got != 1 {
		t.Errorf("registrations_cancelled_total = %v, want 1", got)
	}
}

// TestCollector_MailCounters はメールカウンタの増加を検証する。
func TestCollector_MailCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordMailSent()
	c.RecordMailFailed()

	if got := counterValue(t, reg, "gymdesk_mail_sent_total"); got != 1 {
		t.Errorf("mail_sent_total = %v, want 1", got)
	}
	if got := counterValue(t, reg, "gymdesk_mail_failed_total"); got != 1 {
		t.Errorf("mail_failed_total = %v, want 1", got)
	}
}

// TestCollector_HTTPStatus はステータスコード別のカウントを検証する。
func TestCollector_HTTPStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)
	c.RecordRequestLatency(10 * time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != "gymdesk_http_status_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			code := m.GetLabel()[0].GetValue()
			val := m.GetCounter().GetValue()
			switch code {
			case "200":
				if val != 2 {
					t.Errorf("status 200 count = %v, want 2", val)
				}
			case "404":
				if val != 1 {
					t.Errorf("status 404 count = %v, want 1", val)
				}
			}
		}
	}
}

// TestHandler_ServesMetrics は/metricsエンドポイントがPrometheus形式で
// メトリクスを公開することを検証する。
func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRegistrationCreated()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "gymdesk_registrations_created_total 1") {
		t.Errorf("metrics output missing counter: %s", body)
	}
}
