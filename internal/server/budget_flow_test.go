package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"finanzas/internal/store"
	"finanzas/internal/testutil"
)

func TestBudgetFlow_SalaryAllocationAndSave(t *testing.T) {
	app := setupApp(t)
	userID := testutil.NewUserID()
	tok := token(t, userID)

	// Step 1: A new user starts on the default buckets
	rec := app.request("GET", "/api/v1/dashboard", "", tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	dashboard := parseJSON(t, rec)["dashboard"].(map[string]interface{})
	if buckets := dashboard["buckets"].([]interface{}); len(buckets) != 4 {
		t.Fatalf("expected 4 default buckets, got %d", len(buckets))
	}

	// Step 2: Enter the salary as typed
	rec = app.request("PUT", "/api/v1/salary", `{"salary":"$ 1.000.000,00"}`, tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	dashboard = parseJSON(t, rec)["dashboard"].(map[string]interface{})
	buckets := dashboard["buckets"].([]interface{})
	want := []string{"500000", "300000", "100000", "100000"}
	for i, b := range buckets {
		if got := b.(map[string]interface{})["total"]; got != want[i] {
			t.Errorf("bucket %d: expected total %s, got %v", i, want[i], got)
		}
	}

	// Step 3: Record rent and a USD purchase
	rec = app.request("PUT", "/api/v1/amounts/expense",
		`{"category_id":"1-1","subcategory":"alquiler","amount":"150.000,00"}`, tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("PUT", "/api/v1/amounts/investment-pesos",
		`{"category_id":"2-1","subcategory":"usd_banco","amount":"100000,00"}`, tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("PUT", "/api/v1/amounts/investment-usd",
		`{"category_id":"2-1","subcategory":"usd_banco","amount":"500"}`, tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/dashboard", "", tok)
	buckets = parseJSON(t, rec)["dashboard"].(map[string]interface{})["buckets"].([]interface{})
	living := buckets[0].(map[string]interface{})
	if living["spent"] != "150000" || living["balance"] != "350000" {
		t.Errorf("unexpected living bucket: spent=%v balance=%v", living["spent"], living["balance"])
	}
	investment := buckets[1].(map[string]interface{})
	if investment["spent"] != "100000" || investment["spent_usd"] != "5" {
		t.Errorf("unexpected investment bucket: spent=%v spent_usd=%v", investment["spent"], investment["spent_usd"])
	}

	// Step 4: The debounced save lands in the store
	testutil.Eventually(t, 2*time.Second, func() bool {
		doc, err := app.Store.Get(context.Background(), userID)
		if err != nil {
			return false
		}
		usd, _ := doc["investmentUsdRaw"].(map[string]interface{})
		return usd["2-1-usd_banco"] == "500"
	}, "debounced save")

	// Step 5: The snapshot of the current period is listed
	rec = app.request("GET", "/api/v1/periods", "", tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	periods := parseJSON(t, rec)["data"].([]interface{})
	if len(periods) != 1 || periods[0].(map[string]interface{})["period"] != "2025-01" {
		t.Errorf("expected a 2025-01 snapshot, got %v", periods)
	}
}

func TestBudgetFlow_SessionReloadsSavedState(t *testing.T) {
	app := setupApp(t)
	userID := testutil.NewUserID()
	tok := token(t, userID)

	rec := app.request("PUT", "/api/v1/salary", `{"salary":"250000"}`, tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testutil.Eventually(t, 2*time.Second, func() bool {
		_, err := app.Store.Get(context.Background(), userID)
		return err == nil
	}, "first save")

	// Ending the session forgets the working state; the next request reloads it.
	rec = app.request("DELETE", "/api/v1/session", "", tok)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if app.Sessions.Active() != 0 {
		t.Errorf("expected no active sessions, got %d", app.Sessions.Active())
	}

	rec = app.request("GET", "/api/v1/state", "", tok)
	state := parseJSON(t, rec)["state"].(map[string]interface{})
	if state["salaryRaw"] != "250000" {
		t.Errorf("expected salary reloaded from the store, got %v", state["salaryRaw"])
	}
}

func TestBudgetFlow_UnsavedChangesDroppedOnEnd(t *testing.T) {
	app := setupApp(t)
	userID := testutil.NewUserID()
	tok := token(t, userID)

	rec := app.request("PUT", "/api/v1/salary", `{"salary":"1"}`, tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	app.request("DELETE", "/api/v1/session", "", tok)

	time.Sleep(60 * time.Millisecond)
	if _, err := app.Store.Get(context.Background(), userID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected nothing saved, got %v", err)
	}
}

func TestBudgetFlow_EditBucketsAndPrune(t *testing.T) {
	app := setupApp(t)
	userID := testutil.NewUserID()
	tok := token(t, userID)

	// Record an amount in the leisure bucket, then delete the bucket.
	rec := app.request("PUT", "/api/v1/amounts/expense",
		`{"category_id":"3-1","subcategory":"calistenia","amount":"20000"}`, tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("DELETE", "/api/v1/buckets/3", "", tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/dashboard", "", tok)
	dashboard := parseJSON(t, rec)["dashboard"].(map[string]interface{})
	pct := dashboard["percentages"].(map[string]interface{})
	if pct["total"].(float64) != 90 || pct["valid"] != false {
		t.Errorf("expected 90%% flagged invalid, got %v", pct)
	}

	// Create a replacement bucket and fill it in.
	rec = app.request("POST", "/api/v1/buckets", "", tok)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	bucketID := parseJSON(t, rec)["bucket"].(map[string]interface{})["id"].(string)

	rec = app.request("PUT", "/api/v1/buckets/"+bucketID, `{"name":"","percentage":10}`, tok)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unnamed bucket, got %d", rec.Code)
	}

	rec = app.request("PUT", "/api/v1/buckets/"+bucketID,
		`{"name":"Salidas","percentage":10,"role":"leisure","categories":[{"name":"Cine","subcategories":["cine"]}]}`, tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/extras/leisure", `{"name":"Recital","amount":"3000"}`, tok)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/dashboard", "", tok)
	buckets := parseJSON(t, rec)["dashboard"].(map[string]interface{})["buckets"].([]interface{})
	leisure := buckets[len(buckets)-1].(map[string]interface{})
	if leisure["spent"] != "30" {
		t.Errorf("expected leisure extras counted for the new bucket, got %v", leisure["spent"])
	}

	// The orphaned calistenia amount is pruned explicitly.
	rec = app.request("POST", "/api/v1/amounts/prune", "", tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if removed := parseJSON(t, rec)["removed"].(float64); removed != 1 {
		t.Errorf("expected 1 pruned amount, got %v", removed)
	}

	// Structural changes are audited.
	rec = app.request("GET", "/api/v1/audit-logs", "", tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if total := parseJSON(t, rec)["total_items"].(float64); total != 4 {
		t.Errorf("expected 4 audit entries (delete, create, update, prune), got %v", total)
	}
}

func TestBudgetFlow_PeriodSnapshots(t *testing.T) {
	app := setupApp(t)
	userID := testutil.NewUserID()
	tok := token(t, userID)

	for i, month := range []string{"01", "02"} {
		rec := app.request("PUT", "/api/v1/period", fmt.Sprintf(`{"year":"2025","month":%q}`, month), tok)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		rec = app.request("PUT", "/api/v1/salary", fmt.Sprintf(`{"salary":"%d00000"}`, i+1), tok)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		period := "2025-" + month
		testutil.Eventually(t, 2*time.Second, func() bool {
			rec := app.request("GET", "/api/v1/periods/"+period, "", tok)
			return rec.Code == http.StatusOK
		}, "snapshot for "+period)
	}

	rec := app.request("GET", "/api/v1/periods/2025-01", "", tok)
	snap := parseJSON(t, rec)["snapshot"].(map[string]interface{})
	if snap["salaryRaw"] != "100000" {
		t.Errorf("expected january salary 100000, got %v", snap["salaryRaw"])
	}

	rec = app.request("GET", "/api/v1/periods/2025-03", "", tok)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unsaved period, got %d", rec.Code)
	}
}

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	app := setupApp(t)

	if rec := app.request("GET", "/api/health", "", ""); rec.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}
	if rec := app.request("GET", "/metrics", "", ""); rec.Code != http.StatusOK {
		t.Errorf("metrics: expected 200, got %d", rec.Code)
	}
	if rec := app.request("GET", "/api/v1/state", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("state without token: expected 401, got %d", rec.Code)
	}
	if rec := app.request("GET", "/api/v1/state", "", "not-a-token"); rec.Code != http.StatusUnauthorized {
		t.Errorf("state with bad token: expected 401, got %d", rec.Code)
	}
}
