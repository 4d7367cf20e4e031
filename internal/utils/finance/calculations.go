package finance

import (
	"fmt"
	"math"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetInput is the raw budget-calculator submission.
type BudgetInput struct {
	Income        decimal.Decimal
	Housing       decimal.Decimal
	Food          decimal.Decimal
	Transport     decimal.Decimal
	Dependents    decimal.Decimal
	Miscellaneous decimal.Decimal
	Others        decimal.Decimal
	SavingsGoal   decimal.Decimal
}

// BudgetResult carries the derived budget figures.
type BudgetResult struct {
	FixedExpenses  decimal.Decimal
	SurplusDeficit decimal.Decimal
}

// ComputeBudget sums the expense categories and derives the surplus or deficit.
func ComputeBudget(in BudgetInput) BudgetResult {
	expenses := in.Housing.
		Add(in.Food).
		Add(in.Transport).
		Add(in.Dependents).
		Add(in.Miscellaneous).
		Add(in.Others)
	return BudgetResult{
		FixedExpenses:  expenses,
		SurplusDeficit: in.Income.Sub(expenses),
	}
}

// NetWorthResult carries derived net-worth figures and earned badge keys.
type NetWorthResult struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal
	Badges           []string
}

// ComputeNetWorth derives totals and badges from the asset/liability inputs.
// Badge thresholds: wealth builder for positive net worth, debt free for zero
// loans, savings champion when cash is at least 30% of assets, property mogul
// when property is at least 50% of assets.
func ComputeNetWorth(cashSavings, investments, property, loans decimal.Decimal) NetWorthResult {
	totalAssets := cashSavings.Add(investments).Add(property)
	netWorth := totalAssets.Sub(loans)

	badges := []string{}
	if netWorth.IsPositive() {
		badges = append(badges, domain.BadgeWealthBuilder)
	}
	if loans.IsZero() {
		badges = append(badges, domain.BadgeDebtFree)
	}
	if !totalAssets.IsZero() {
		if cashSavings.GreaterThanOrEqual(totalAssets.Mul(decimal.NewFromFloat(0.3))) {
			badges = append(badges, domain.BadgeSavingsChampion)
		}
		if property.GreaterThanOrEqual(totalAssets.Mul(decimal.NewFromFloat(0.5))) {
			badges = append(badges, domain.BadgePropertyMogul)
		}
	}

	return NetWorthResult{
		TotalAssets:      totalAssets,
		TotalLiabilities: loans,
		NetWorth:         netWorth,
		Badges:           badges,
	}
}

// EmergencyFundInput is the raw emergency-fund submission.
type EmergencyFundInput struct {
	MonthlyExpenses decimal.Decimal
	MonthlyIncome   decimal.Decimal
	RiskTolerance   domain.RiskTolerance
	Dependents      int
	CurrentSavings  decimal.Decimal
	TimelineMonths  int
}

// EmergencyFundResult carries the derived emergency-fund plan.
type EmergencyFundResult struct {
	RecommendedMonths int
	TargetAmount      decimal.Decimal
	SavingsGap        decimal.Decimal
	MonthlySavings    decimal.Decimal
	PercentOfIncome   *float64
	Badges            []string
}

// ComputeEmergencyFund derives the recommended cushion from the chosen
// timeline: high risk tolerance pushes the recommendation to at least 12
// months, low caps it at 6, and two or more dependents add 2 months.
func ComputeEmergencyFund(in EmergencyFundInput) (EmergencyFundResult, error) {
	if in.TimelineMonths <= 0 {
		return EmergencyFundResult{}, fmt.Errorf("%w: timeline must be positive", apperrors.ErrValidation)
	}

	recommended := in.TimelineMonths
	switch in.RiskTolerance {
	case domain.RiskHigh:
		if recommended < 12 {
			recommended = 12
		}
	case domain.RiskLow:
		if recommended > 6 {
			recommended = 6
		}
	}
	if in.Dependents >= 2 {
		recommended += 2
	}

	target := in.MonthlyExpenses.Mul(decimal.NewFromInt(int64(recommended)))
	gap := target.Sub(in.CurrentSavings)

	monthlySavings := decimal.Zero
	if gap.IsPositive() {
		monthlySavings = gap.Div(decimal.NewFromInt(int64(in.TimelineMonths)))
	}

	var percentOfIncome *float64
	if in.MonthlyIncome.IsPositive() {
		p, _ := monthlySavings.Div(in.MonthlyIncome).Mul(decimal.NewFromInt(100)).Float64()
		percentOfIncome = &p
	}

	badges := []string{}
	if in.TimelineMonths == 6 || in.TimelineMonths == 12 {
		badges = append(badges, domain.BadgePlanner)
	}
	if in.Dependents >= 2 {
		badges = append(badges, domain.BadgeProtector)
	}
	if !gap.IsPositive() {
		badges = append(badges, domain.BadgeSteadySaver)
	}
	if in.CurrentSavings.GreaterThanOrEqual(target) {
		badges = append(badges, domain.BadgeFundMaster)
	}

	return EmergencyFundResult{
		RecommendedMonths: recommended,
		TargetAmount:      target,
		SavingsGap:        gap,
		MonthlySavings:    monthlySavings,
		PercentOfIncome:   percentOfIncome,
		Badges:            badges,
	}, nil
}

// HealthInput is the raw financial-health submission.
type HealthInput struct {
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Debt         decimal.Decimal
	InterestRate decimal.Decimal // annual, percent
}

// HealthResult carries the score and its component metrics (percentages).
type HealthResult struct {
	DebtToIncome   float64
	SavingsRate    float64
	InterestBurden float64
	Score          int
	Status         domain.HealthStatus
	Badges         []string
}

// ComputeHealthScore derives the 0-100 financial health score. Income must be
// strictly positive; nothing can be scored against a zero income.
func ComputeHealthScore(in HealthInput) (HealthResult, error) {
	income, _ := in.Income.Float64()
	if income <= 0 {
		return HealthResult{}, fmt.Errorf("%w: income must be greater than zero", apperrors.ErrValidation)
	}
	expenses, _ := in.Expenses.Float64()
	debt, _ := in.Debt.Float64()
	rate, _ := in.InterestRate.Float64()

	debtToIncome := debt / income * 100
	savingsRate := (income - expenses) / income * 100
	interestBurden := 0.0
	if debt > 0 {
		interestBurden = ((rate * debt / 100) / 12) / income * 100
	}

	score := 100.0
	if debtToIncome > 0 {
		score -= math.Min(debtToIncome/50, 50)
	}
	if savingsRate < 0 {
		score -= math.Min(math.Abs(savingsRate), 30)
	} else if savingsRate > 0 {
		score += math.Min(savingsRate/2, 20)
	}
	score -= math.Min(interestBurden, 20)
	rounded := int(math.Round(score))
	if rounded < 0 {
		rounded = 0
	}
	if rounded > 100 {
		rounded = 100
	}

	status := domain.HealthNeedsImprovement
	switch {
	case rounded >= 80:
		status = domain.HealthExcellent
	case rounded >= 60:
		status = domain.HealthGood
	}

	badges := []string{}
	if rounded >= 80 {
		badges = append(badges, domain.BadgeFinancialStar)
	}
	if debtToIncome < 20 {
		badges = append(badges, domain.BadgeDebtManager)
	}
	if savingsRate >= 20 {
		badges = append(badges, domain.BadgeSavingsPro)
	}
	if interestBurden == 0 && debt > 0 {
		badges = append(badges, domain.BadgeInterestFree)
	}

	return HealthResult{
		DebtToIncome:   debtToIncome,
		SavingsRate:    savingsRate,
		InterestBurden: interestBurden,
		Score:          rounded,
		Status:         status,
		Badges:         badges,
	}, nil
}

// quizNegative marks the questions where "No" is the financially healthy answer.
// Question 6 asks about impulse spending.
var quizNegative = map[int]bool{6: true}

// ScoreQuiz scores the 10-question personality quiz: 3 points for each healthy
// answer, minus 1 for each unhealthy one, floored at zero.
func ScoreQuiz(answers []domain.QuizAnswer) (int, error) {
	if len(answers) != domain.QuizQuestionCount {
		return 0, fmt.Errorf("%w: quiz expects %d answers, got %d", apperrors.ErrValidation, domain.QuizQuestionCount, len(answers))
	}
	score := 0
	for i, answer := range answers {
		if !answer.IsValid() {
			return 0, fmt.Errorf("%w: answer %d must be Yes or No", apperrors.ErrValidation, i+1)
		}
		healthyIsYes := !quizNegative[i+1]
		if (answer == domain.AnswerYes) == healthyIsYes {
			score += 3
		} else {
			score--
		}
	}
	if score < 0 {
		score = 0
	}
	return score, nil
}

// AssignPersonality maps a quiz score to a personality band.
func AssignPersonality(score int) string {
	switch {
	case score >= 21:
		return domain.PersonalityPlanner
	case score >= 13:
		return domain.PersonalitySaver
	case score >= 7:
		return domain.PersonalityBalanced
	case score >= 3:
		return domain.PersonalitySpender
	}
	return domain.PersonalityAvoider
}

// QuizBadges returns the badge keys earned for a quiz score. First Quiz is
// always awarded.
func QuizBadges(score int) []string {
	badges := []string{}
	if score >= 21 {
		badges = append(badges, domain.BadgeFinancialGuru)
	} else if score >= 13 {
		badges = append(badges, domain.BadgeSavingsStar)
	}
	badges = append(badges, domain.BadgeFirstQuiz)
	return badges
}
