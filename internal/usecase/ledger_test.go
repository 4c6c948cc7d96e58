package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsa-reconciler/internal/domain"
)

func agentReport(mobile string, payment int64) domain.AgentReport {
	return domain.AgentReport{
		DSAMobile: mobile,
		Totals:    domain.AgentTotals{Payment: decimal.NewFromInt(payment)},
	}
}

func TestReconcilePayments_MergesBothReports(t *testing.T) {
	qualified := &domain.Report{
		Kind: domain.ReportQualified,
		Agents: []domain.AgentReport{
			agentReport("7654321", 80),
			agentReport("9876543", 40),
		},
	}
	noOnboarding := &domain.Report{
		Kind: domain.ReportNoOnboarding,
		Agents: []domain.AgentReport{
			agentReport("9876543", 25), // earns under both schemes
			agentReport("9999999", 50),
		},
	}

	ledger := reconcilePayments(qualified, noOnboarding)

	require.Len(t, ledger.Records, 4)
	agents := ledger.AgentRecords()
	require.Len(t, agents, 3)
	assert.Equal(t, "7654321", agents[0].DSAMobile)
	assert.True(t, agents[0].QualifiedPayment.Equal(decimal.NewFromInt(80)))
	assert.True(t, agents[0].NoOnboardingPayment.IsZero())

	assert.Equal(t, "9876543", agents[1].DSAMobile)
	assert.True(t, agents[1].TotalPayment.Equal(decimal.NewFromInt(65)))

	assert.Equal(t, "9999999", agents[2].DSAMobile)
	assert.True(t, agents[2].QualifiedPayment.IsZero())

	total, ok := ledger.GrandTotal()
	require.True(t, ok)
	assert.True(t, total.QualifiedPayment.Equal(decimal.NewFromInt(120)))
	assert.True(t, total.NoOnboardingPayment.Equal(decimal.NewFromInt(75)))
	assert.True(t, total.TotalPayment.Equal(decimal.NewFromInt(195)))
}

func TestReconcilePayments_ConservesReportTotals(t *testing.T) {
	qualified := &domain.Report{
		Agents: []domain.AgentReport{
			agentReport("1111111", 40),
			agentReport("2222222", 120),
			agentReport("3333333", 400),
		},
	}
	noOnboarding := &domain.Report{
		Agents: []domain.AgentReport{
			agentReport("2222222", 25),
			agentReport("4444444", 75),
		},
	}

	ledger := reconcilePayments(qualified, noOnboarding)

	// Nothing is created or lost in the merge.
	sum := decimal.Zero
	for _, rec := range ledger.AgentRecords() {
		sum = sum.Add(rec.TotalPayment)
	}
	total, ok := ledger.GrandTotal()
	require.True(t, ok)
	assert.True(t, sum.Equal(total.TotalPayment))
	assert.True(t, total.TotalPayment.Equal(qualified.TotalPayment().Add(noOnboarding.TotalPayment())))
}

func TestReconcilePayments_MissingReportsContributeZero(t *testing.T) {
	t.Run("only qualified", func(t *testing.T) {
		ledger := reconcilePayments(&domain.Report{
			Agents: []domain.AgentReport{agentReport("7654321", 40)},
		}, nil)

		require.Len(t, ledger.Records, 2)
		assert.True(t, ledger.Records[0].NoOnboardingPayment.IsZero())
		total, ok := ledger.GrandTotal()
		require.True(t, ok)
		assert.True(t, total.TotalPayment.Equal(decimal.NewFromInt(40)))
	})

	t.Run("both missing", func(t *testing.T) {
		ledger := reconcilePayments(nil, nil)

		// The explicit empty state is a lone zero total.
		require.Len(t, ledger.Records, 1)
		total, ok := ledger.GrandTotal()
		require.True(t, ok)
		assert.True(t, total.TotalPayment.IsZero())
		assert.Empty(t, ledger.AgentRecords())
	})
}
