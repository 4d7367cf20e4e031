package domain

import "time"

// QuizQuestionCount is the fixed length of the financial personality quiz.
const QuizQuestionCount = 10

// QuizAnswer is a yes/no response to one quiz question.
type QuizAnswer string

const (
	AnswerYes QuizAnswer = "Yes"
	AnswerNo  QuizAnswer = "No"
)

// IsValid reports whether a is a known quiz answer.
func (a QuizAnswer) IsValid() bool {
	return a == AnswerYes || a == AnswerNo
}

// Personality bands assigned from the quiz score.
const (
	PersonalityPlanner  = "Planner"
	PersonalitySaver    = "Saver"
	PersonalityBalanced = "Balanced"
	PersonalitySpender  = "Spender"
	PersonalityAvoider  = "Avoider"
)

// Quiz badge keys.
const (
	BadgeFinancialGuru = "badge_financial_guru"
	BadgeSavingsStar   = "badge_savings_star"
	BadgeFirstQuiz     = "badge_first_quiz"
)

// QuizResult is one completed quiz submission.
type QuizResult struct {
	ResultID    string       `json:"resultID"`
	UserID      string       `json:"userID,omitempty"`
	SessionID   string       `json:"sessionID,omitempty"`
	Answers     []QuizAnswer `json:"answers"`
	Score       int          `json:"score"`
	Personality string       `json:"personality"`
	Badges      []string     `json:"badges"`
	CreatedAt   time.Time    `json:"createdAt"`
}
