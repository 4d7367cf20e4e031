// Package i18n provides English and Hausa lookup tables for user-facing
// strings. Lookups fall back to English, then to the key itself, so a
// missing translation never breaks a message.
package i18n

import "fmt"

// Supported language codes.
const (
	LangEnglish = "en"
	LangHausa   = "ha"
)

var english = map[string]string{
	// Debt reminders
	"reminder_default_message": "Hello %s, this is a payment reminder for the outstanding amount of %s. Thank you.",

	// Email subjects and bodies
	"email_otp_subject":          "Your FiCore login code",
	"email_reset_subject":        "Reset your FiCore password",
	"email_bill_subject":         "Bill reminder saved",
	"email_health_score_subject": "Your financial health score",

	// Net worth badges
	"net_worth_badge_wealth_builder":   "Wealth Builder",
	"net_worth_badge_debt_free":        "Debt Free",
	"net_worth_badge_savings_champion": "Savings Champion",
	"net_worth_badge_property_mogul":   "Property Mogul",

	// Quiz badges
	"badge_financial_guru": "Financial Guru",
	"badge_savings_star":   "Savings Star",
	"badge_first_quiz":     "First Quiz Completed",

	// Quiz personalities
	"personality_planner":  "Planner",
	"personality_saver":    "Saver",
	"personality_balanced": "Balanced",
	"personality_spender":  "Spender",
	"personality_avoider":  "Avoider",

	// Financial health statuses
	"health_status_excellent":         "Excellent",
	"health_status_good":              "Good",
	"health_status_needs_improvement": "Needs Improvement",

	// Course catalogue
	"learning_hub_course_budgeting101_title":   "Budgeting Learning 101",
	"learning_hub_course_financial_quiz_title": "Financial Knowledge Quiz",
	"learning_hub_course_savings_basics_title": "Savings Basics",

	// General
	"coins_insufficient": "You do not have enough coins for this action.",
	"record_not_found":   "Record not found",
}

var hausa = map[string]string{
	// Debt reminders
	"reminder_default_message": "Sannu %s, wannan tunatarwa ce ta biyan bashin da ya rage na %s. Na gode.",

	// Email subjects
	"email_otp_subject":          "Lambar shiga ta FiCore",
	"email_reset_subject":        "Sake saita kalmar sirrin FiCore",
	"email_bill_subject":         "An adana tunatarwar biyan kuɗi",
	"email_health_score_subject": "Makin lafiyar kuɗin ku",

	// Net worth badges
	"net_worth_badge_wealth_builder":   "Mai Gina Dukiya",
	"net_worth_badge_debt_free":        "Babu Bashi",
	"net_worth_badge_savings_champion": "Gwarzon Ajiya",
	"net_worth_badge_property_mogul":   "Mai Gidaje",

	// Quiz badges
	"badge_financial_guru": "Gwanin Kuɗi",
	"badge_savings_star":   "Tauraron Ajiya",
	"badge_first_quiz":     "An Kammala Jarabawar Farko",

	// Quiz personalities
	"personality_planner":  "Mai Tsari",
	"personality_saver":    "Mai Ajiya",
	"personality_balanced": "Daidaitacce",
	"personality_spender":  "Mai Kashewa",
	"personality_avoider":  "Mai Gujewa",

	// Financial health statuses
	"health_status_excellent":         "Madalla",
	"health_status_good":              "Mai Kyau",
	"health_status_needs_improvement": "Yana Bukatar Ingantawa",

	// Course catalogue
	"learning_hub_course_budgeting101_title":   "Tsarin Kudi 101",
	"learning_hub_course_financial_quiz_title": "Jarabawar Ilimin Kudi",
	"learning_hub_course_savings_basics_title": "Asalin Tattara Kudi",

	// General
	"coins_insufficient": "Ba ku da isassun kuɗaɗe don wannan aikin.",
	"record_not_found":   "Ba a sami bayanin ba",
}

var tables = map[string]map[string]string{
	LangEnglish: english,
	LangHausa:   hausa,
}

// T looks up key in lang's table, falling back to English and then the key.
func T(lang, key string) string {
	if table, ok := tables[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := english[key]; ok {
		return msg
	}
	return key
}

// Tf looks up key and applies fmt formatting arguments.
func Tf(lang, key string, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

// IsSupported reports whether lang has a translation table.
func IsSupported(lang string) bool {
	_, ok := tables[lang]
	return ok
}
