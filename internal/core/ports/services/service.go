package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User            UserSvcFacade
	Coin            CoinSvcFacade
	Record          RecordSvcFacade
	Cashflow        CashflowSvcFacade
	Inventory       InventorySvcFacade
	Report          ReportSvcFacade
	Dashboard       DashboardSvcFacade
	Agent           AgentSvcFacade
	Admin           AdminSvcFacade
	Budget          BudgetSvcFacade
	Bill            BillSvcFacade
	NetWorth        NetWorthSvcFacade
	EmergencyFund   EmergencyFundSvcFacade
	FinancialHealth FinancialHealthSvcFacade
	Quiz            QuizSvcFacade
	Learning        LearningSvcFacade
	Feedback        FeedbackSvcFacade

	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
