package testutil_test

import (
	"testing"
	"time"

	"finanzas/internal/errors"
	"finanzas/internal/models"
	"finanzas/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"user_documents", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	a := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, a)
	b := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, b)

	if err := a.Create(&models.UserDocument{UserID: "u1", Data: "{}"}).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	var count int64
	b.Model(&models.UserDocument{}).Count(&count)
	if count != 0 {
		t.Errorf("expected isolated databases, found %d rows", count)
	}
}

func TestFixtures(t *testing.T) {
	if testutil.NewUserID() == testutil.NewUserID() {
		t.Error("expected unique user ids")
	}
	s := testutil.NewTestState()
	if s.SalaryRaw != "500000" {
		t.Errorf("expected salary raw 500000, got %s", s.SalaryRaw)
	}
}

func TestEventually(t *testing.T) {
	start := time.Now()
	testutil.Eventually(t, time.Second, func() bool { return time.Since(start) > 20*time.Millisecond }, "timer")
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrBucketNotFound, "BUCKET_NOT_FOUND")
	testutil.AssertAppError(t, errors.Wrap(errors.ErrInternalServer, nil), "INTERNAL_ERROR")
}
