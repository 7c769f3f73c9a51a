package integration

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/mortgage-payoff/internal/cache"
	"github.com/iwvelando/mortgage-payoff/internal/config"
	"github.com/iwvelando/mortgage-payoff/internal/payoff"
	"github.com/iwvelando/mortgage-payoff/pkg/amortization"
	"github.com/iwvelando/mortgage-payoff/pkg/output"
	"github.com/iwvelando/mortgage-payoff/pkg/testutil"
	"go.uber.org/zap"
)

func calculateTestConfig(t *testing.T) *amortization.Comparison {
	t.Helper()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	input, err := conf.Loan.ToInput(time.Now())
	if err != nil {
		t.Fatalf("ToInput() error = %v", err)
	}

	result, err := payoff.NewService(zap.NewNop(), cache.NewMemory(0)).Calculate(context.Background(), input)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	return result
}

// TestMainIntegrationBaseline checks the example configuration against
// baseline numbers computed independently.
func TestMainIntegrationBaseline(t *testing.T) {
	result := calculateTestConfig(t)

	baseline := []struct {
		plan          string
		periods       int
		totalInterest float64
		finalDate     string
	}{
		{"original", 221, 70860.93, "2043-05-01"},
		{"new", 169, 52786.52, "2039-01-01"},
	}

	for _, expected := range baseline {
		plan := testutil.FindScenario(result, expected.plan)
		if plan == nil {
			t.Fatalf("plan %s not found", expected.plan)
		}
		if plan.TotalPeriods != expected.periods {
			t.Errorf("%s TotalPeriods = %d, expected %d", expected.plan, plan.TotalPeriods, expected.periods)
		}
		if !testutil.AlmostEqual(plan.TotalInterest, expected.totalInterest, 0.01) {
			t.Errorf("%s TotalInterest = %.2f, expected %.2f", expected.plan, plan.TotalInterest, expected.totalInterest)
		}

		last := testutil.FindRow(plan.Schedule, expected.periods)
		if last == nil {
			t.Fatalf("%s final row %d not found", expected.plan, expected.periods)
		}
		if got := last.Date.Format("2006-01-02"); got != expected.finalDate {
			t.Errorf("%s final date = %s, expected %s", expected.plan, got, expected.finalDate)
		}
		if last.EndingBalance > 0.01 {
			t.Errorf("%s final balance = %v, expected paid off", expected.plan, last.EndingBalance)
		}
	}

	if result.Savings.TimeSavedMonths != 52 {
		t.Errorf("TimeSavedMonths = %d, expected 52", result.Savings.TimeSavedMonths)
	}
}

// TestPrettyOutputBaseline checks the summary section of the pretty output.
func TestPrettyOutputBaseline(t *testing.T) {
	result := calculateTestConfig(t)

	var b strings.Builder
	if err := output.PrettyFormat(&b, result); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}

	expectedLines := []string{
		"--- Payoff comparison (unknown-term) ---",
		"Time saved:     4 years 4 months",
		"1 | 2025-01-01 | $1,200.00 | $637.50 | $562.50 | $200.00 | $149,362.50",
	}

	found := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(b.String()))
	for scanner.Scan() {
		line := scanner.Text()
		for _, expected := range expectedLines {
			if strings.Contains(line, expected) {
				found[expected] = true
			}
		}
	}

	for _, expected := range expectedLines {
		if !found[expected] {
			t.Errorf("pretty output missing line %q", expected)
		}
	}
}
