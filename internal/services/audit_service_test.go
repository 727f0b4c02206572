package services

import (
	"testing"

	"finanzas/internal/pagination"
	"finanzas/internal/testutil"
)

func TestAuditService_LogAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	svc.Log("user-1", "UPDATE_SALARY", "budget", "", "127.0.0.1", map[string]any{"salary_raw": "100"})
	svc.Log("user-1", "DELETE_BUCKET", "bucket", "2", "127.0.0.1", nil)
	svc.Log("user-2", "UPDATE_SALARY", "budget", "", "127.0.0.1", nil)

	page, err := svc.ListUserLogs("user-1", pagination.PageRequest{Page: 1, PageSize: 10})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 2 || len(page.Data) != 2 {
		t.Fatalf("expected 2 entries for user-1, got %d", page.TotalItems)
	}
	for _, entry := range page.Data {
		if entry.UserID != "user-1" {
			t.Errorf("unexpected entry for %s", entry.UserID)
		}
		if entry.Action == "UPDATE_SALARY" && entry.Changes != `{"salary_raw":"100"}` {
			t.Errorf("unexpected changes: %s", entry.Changes)
		}
	}
}

func TestAuditService_WithoutDatabase(t *testing.T) {
	svc := NewAuditService(nil)

	svc.Log("user-1", "UPDATE_SALARY", "budget", "", "", nil)

	page, err := svc.ListUserLogs("user-1", pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 0 || len(page.Data) != 0 {
		t.Errorf("expected an empty page, got %+v", page)
	}
}
