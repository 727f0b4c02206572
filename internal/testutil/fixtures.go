package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finanzas/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns an identifier unique within the test run.
func NewUserID() string {
	return fmt.Sprintf("user-%d", nextID())
}

// NewTestState returns the default state with a salary and one recorded
// amount in each partition.
func NewTestState() models.BudgetState {
	s := models.DefaultState()
	s.SalaryRaw = "500000"
	s.ExpenseAmountsRaw["1-1-alquiler"] = "150000"
	s.InvestmentPesosRaw["2-1-usd_banco"] = "100000"
	s.InvestmentUsdRaw["2-1-usd_banco"] = "50000"
	return s
}

// Eventually polls cond until it holds or timeout elapses.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !cond() {
		t.Fatalf("condition not met within %s: %s", timeout, msg)
	}
}
