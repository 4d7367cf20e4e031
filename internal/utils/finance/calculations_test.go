package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/utils/finance"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestComputeBudget(t *testing.T) {
	result := finance.ComputeBudget(finance.BudgetInput{
		Income:        d(200000),
		Housing:       d(60000),
		Food:          d(40000),
		Transport:     d(15000),
		Dependents:    d(20000),
		Miscellaneous: d(5000),
		Others:        d(10000),
	})

	assert.True(t, result.FixedExpenses.Equal(d(150000)))
	assert.True(t, result.SurplusDeficit.Equal(d(50000)))
}

func TestComputeBudget_Deficit(t *testing.T) {
	result := finance.ComputeBudget(finance.BudgetInput{
		Income:  d(30000),
		Housing: d(50000),
	})

	assert.True(t, result.SurplusDeficit.Equal(d(-20000)))
}

func TestComputeNetWorth_Badges(t *testing.T) {
	tests := []struct {
		name                                    string
		cashSavings, investments, property, loans int64
		wantNetWorth                            int64
		wantBadges                              []string
	}{
		{
			name:         "positive net worth with debt",
			cashSavings:  100000,
			investments:  200000,
			property:     0,
			loans:        50000,
			wantNetWorth: 250000,
			wantBadges:   []string{domain.BadgeWealthBuilder, domain.BadgeSavingsChampion},
		},
		{
			name:         "debt free property mogul",
			cashSavings:  100000,
			investments:  0,
			property:     900000,
			loans:        0,
			wantNetWorth: 1000000,
			wantBadges:   []string{domain.BadgeWealthBuilder, domain.BadgeDebtFree, domain.BadgePropertyMogul},
		},
		{
			name:         "underwater",
			cashSavings:  10000,
			investments:  0,
			property:     0,
			loans:        500000,
			wantNetWorth: -490000,
			wantBadges:   []string{domain.BadgeSavingsChampion},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := finance.ComputeNetWorth(d(tt.cashSavings), d(tt.investments), d(tt.property), d(tt.loans))

			assert.True(t, result.NetWorth.Equal(d(tt.wantNetWorth)))
			assert.Equal(t, tt.wantBadges, result.Badges)
		})
	}
}

func TestComputeEmergencyFund(t *testing.T) {
	result, err := finance.ComputeEmergencyFund(finance.EmergencyFundInput{
		MonthlyExpenses: d(50000),
		MonthlyIncome:   d(150000),
		RiskTolerance:   domain.RiskMedium,
		Dependents:      0,
		CurrentSavings:  d(100000),
		TimelineMonths:  6,
	})

	require.NoError(t, err)
	assert.Equal(t, 6, result.RecommendedMonths)
	assert.True(t, result.TargetAmount.Equal(d(300000)))
	assert.True(t, result.SavingsGap.Equal(d(200000)))
	// Gap of 200k over 6 months.
	assert.True(t, result.MonthlySavings.Round(2).Equal(decimal.NewFromFloat(33333.33)))
	require.NotNil(t, result.PercentOfIncome)
	assert.InDelta(t, 22.22, *result.PercentOfIncome, 0.01)
	assert.Contains(t, result.Badges, domain.BadgePlanner)
}

func TestComputeEmergencyFund_RiskAdjustments(t *testing.T) {
	high, err := finance.ComputeEmergencyFund(finance.EmergencyFundInput{
		MonthlyExpenses: d(10000),
		RiskTolerance:   domain.RiskHigh,
		TimelineMonths:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, high.RecommendedMonths)

	low, err := finance.ComputeEmergencyFund(finance.EmergencyFundInput{
		MonthlyExpenses: d(10000),
		RiskTolerance:   domain.RiskLow,
		TimelineMonths:  18,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, low.RecommendedMonths)

	withDependents, err := finance.ComputeEmergencyFund(finance.EmergencyFundInput{
		MonthlyExpenses: d(10000),
		RiskTolerance:   domain.RiskMedium,
		Dependents:      3,
		TimelineMonths:  6,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, withDependents.RecommendedMonths)
	assert.Contains(t, withDependents.Badges, domain.BadgeProtector)
}

func TestComputeEmergencyFund_FullyFunded(t *testing.T) {
	result, err := finance.ComputeEmergencyFund(finance.EmergencyFundInput{
		MonthlyExpenses: d(20000),
		RiskTolerance:   domain.RiskMedium,
		CurrentSavings:  d(500000),
		TimelineMonths:  6,
	})

	require.NoError(t, err)
	assert.True(t, result.MonthlySavings.IsZero())
	assert.Contains(t, result.Badges, domain.BadgeSteadySaver)
	assert.Contains(t, result.Badges, domain.BadgeFundMaster)
}

func TestComputeEmergencyFund_InvalidTimeline(t *testing.T) {
	_, err := finance.ComputeEmergencyFund(finance.EmergencyFundInput{TimelineMonths: 0})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestComputeHealthScore(t *testing.T) {
	result, err := finance.ComputeHealthScore(finance.HealthInput{
		Income:   d(100000),
		Expenses: d(60000),
		Debt:     d(10000),
	})

	require.NoError(t, err)
	assert.InDelta(t, 10.0, result.DebtToIncome, 0.001)
	assert.InDelta(t, 40.0, result.SavingsRate, 0.001)
	// 100 - 10/50 + min(40/2, 20) = 119.8, clamped to 100.
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, domain.HealthExcellent, result.Status)
	assert.Contains(t, result.Badges, domain.BadgeFinancialStar)
	assert.Contains(t, result.Badges, domain.BadgeDebtManager)
	assert.Contains(t, result.Badges, domain.BadgeSavingsPro)
	assert.Contains(t, result.Badges, domain.BadgeInterestFree)
}

func TestComputeHealthScore_HeavyDebt(t *testing.T) {
	result, err := finance.ComputeHealthScore(finance.HealthInput{
		Income:       d(100000),
		Expenses:     d(150000),
		Debt:         d(5000000),
		InterestRate: d(24),
	})

	require.NoError(t, err)
	assert.Less(t, result.Score, 60)
	assert.Equal(t, domain.HealthNeedsImprovement, result.Status)
}

func TestComputeHealthScore_ZeroIncome(t *testing.T) {
	_, err := finance.ComputeHealthScore(finance.HealthInput{Income: d(0)})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestScoreQuiz(t *testing.T) {
	allHealthy := make([]domain.QuizAnswer, domain.QuizQuestionCount)
	for i := range allHealthy {
		allHealthy[i] = domain.AnswerYes
	}
	// Question 6 is the impulse-spending question; "No" is the healthy answer.
	allHealthy[5] = domain.AnswerNo

	score, err := finance.ScoreQuiz(allHealthy)

	require.NoError(t, err)
	assert.Equal(t, 30, score)
	assert.Equal(t, domain.PersonalityPlanner, finance.AssignPersonality(score))
	assert.Contains(t, finance.QuizBadges(score), domain.BadgeFinancialGuru)
	assert.Contains(t, finance.QuizBadges(score), domain.BadgeFirstQuiz)
}

func TestScoreQuiz_AllUnhealthyFloorsAtZero(t *testing.T) {
	allUnhealthy := make([]domain.QuizAnswer, domain.QuizQuestionCount)
	for i := range allUnhealthy {
		allUnhealthy[i] = domain.AnswerNo
	}
	allUnhealthy[5] = domain.AnswerYes

	score, err := finance.ScoreQuiz(allUnhealthy)

	require.NoError(t, err)
	assert.Equal(t, 0, score)
	assert.Equal(t, domain.PersonalityAvoider, finance.AssignPersonality(score))
}

func TestScoreQuiz_WrongAnswerCount(t *testing.T) {
	_, err := finance.ScoreQuiz([]domain.QuizAnswer{domain.AnswerYes})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestScoreQuiz_InvalidAnswer(t *testing.T) {
	answers := make([]domain.QuizAnswer, domain.QuizQuestionCount)
	for i := range answers {
		answers[i] = domain.AnswerYes
	}
	answers[4] = "Maybe"

	_, err := finance.ScoreQuiz(answers)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAssignPersonality_Bands(t *testing.T) {
	assert.Equal(t, domain.PersonalityPlanner, finance.AssignPersonality(30))
	assert.Equal(t, domain.PersonalitySaver, finance.AssignPersonality(15))
	assert.Equal(t, domain.PersonalityBalanced, finance.AssignPersonality(8))
	assert.Equal(t, domain.PersonalitySpender, finance.AssignPersonality(4))
	assert.Equal(t, domain.PersonalityAvoider, finance.AssignPersonality(1))
}
