package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/alert"
	apperrors "github.com/theshadowable/iws-sh/internal/pkg/errors"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/testutil"
)

func newTestAlertService(t *testing.T) (alert.Service, *testutil.MockAlertRepository) {
	t.Helper()

	repo := testutil.NewMockAlertRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewAlertService(repo, log), repo
}

func TestAlertService_Emit_SetsDefaults(t *testing.T) {
	svc, repo := newTestAlertService(t)

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	svc.(*AlertService).now = func() time.Time { return now }

	a := &alert.Alert{
		CustomerID: "CUST-1",
		Type:       alert.TypeLowBalance,
		Severity:   alert.SeverityWarning,
		Title:      "Low Balance Alert",
		Message:    "Please top up",
	}

	if err := svc.Emit(context.Background(), a); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if a.ID == "" {
		t.Error("ID not generated")
	}
	if a.Status != alert.StatusUnread {
		t.Errorf("Status = %q, want unread", a.Status)
	}
	if !a.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", a.CreatedAt, now)
	}
	if _, ok := repo.Alerts[a.ID]; !ok {
		t.Error("alert not persisted")
	}
}

func TestAlertService_Emit_KeepsProvidedFields(t *testing.T) {
	svc, _ := newTestAlertService(t)

	created := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	a := &alert.Alert{
		ID:         "fixed-id",
		CustomerID: "CUST-1",
		Type:       alert.TypeSystemNotification,
		Severity:   alert.SeverityInfo,
		Title:      "Maintenance window",
		Message:    "Scheduled maintenance tonight",
		Status:     alert.StatusRead,
		CreatedAt:  created,
	}

	if err := svc.Emit(context.Background(), a); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if a.ID != "fixed-id" {
		t.Errorf("ID = %q, want fixed-id", a.ID)
	}
	if a.Status != alert.StatusRead {
		t.Errorf("Status = %q, want read", a.Status)
	}
	if !a.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", a.CreatedAt, created)
	}
}

func TestAlertService_Emit_RepositoryError(t *testing.T) {
	svc, repo := newTestAlertService(t)
	repo.CreateError = errors.New("db down")

	err := svc.Emit(context.Background(), &alert.Alert{CustomerID: "CUST-1", Type: alert.TypeLowBalance})
	if err == nil {
		t.Fatal("Emit() error = nil, want error")
	}
}

func TestAlertService_GetSummary(t *testing.T) {
	svc, repo := newTestAlertService(t)

	repo.Alerts["a-1"] = &alert.Alert{ID: "a-1", CustomerID: "CUST-1", Status: alert.StatusUnread}
	repo.Alerts["a-2"] = &alert.Alert{ID: "a-2", CustomerID: "CUST-1", Status: alert.StatusUnread}
	repo.Alerts["a-3"] = &alert.Alert{ID: "a-3", CustomerID: "CUST-1", Status: alert.StatusRead}
	repo.Alerts["a-4"] = &alert.Alert{ID: "a-4", CustomerID: "CUST-2", Status: alert.StatusUnread}

	summary, err := svc.GetSummary(context.Background(), "CUST-1")
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}

	if summary["unread"] != 2 {
		t.Errorf("unread = %d, want 2", summary["unread"])
	}
	if summary["read"] != 1 {
		t.Errorf("read = %d, want 1", summary["read"])
	}
}

func TestAlertService_UpdateStatus(t *testing.T) {
	svc, repo := newTestAlertService(t)

	repo.Alerts["a-1"] = &alert.Alert{ID: "a-1", CustomerID: "CUST-1", Status: alert.StatusUnread}

	if err := svc.UpdateStatus(context.Background(), "a-1", alert.StatusDismissed); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if repo.Alerts["a-1"].Status != alert.StatusDismissed {
		t.Errorf("Status = %q, want dismissed", repo.Alerts["a-1"].Status)
	}

	err := svc.UpdateStatus(context.Background(), "missing", alert.StatusRead)
	if err == nil {
		t.Fatal("UpdateStatus() on missing alert returned nil error")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("UpdateStatus() error = %T, want *errors.AppError", err)
	}
	if appErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", appErr.StatusCode, http.StatusNotFound)
	}
}
