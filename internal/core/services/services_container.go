package services

import (
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/platform/config"
	"github.com/fipithx/ficore_backend/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	mail portssvc.EmailSender,
	sms portssvc.SMSSender,
	whatsapp portssvc.WhatsAppSender,
	posthog *utils.PosthogClientWrapper,
) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// User and coin services first since most other services depend on them
	container.User = NewUserService(cfg, repos.UserRepo, mail)
	container.Coin = NewCoinService(repos.CoinRepo, repos.UserRepo)

	// Business tools
	container.Record = NewRecordService(repos.RecordRepo, container.Coin, sms, whatsapp)
	container.Cashflow = NewCashflowService(repos.CashflowRepo, container.Coin)
	container.Inventory = NewInventoryService(repos.InventoryRepo)
	container.Report = NewReportService(repos.CashflowRepo, repos.RecordRepo, repos.InventoryRepo, container.Coin)
	container.Dashboard = NewDashboardService(
		repos.UserRepo,
		repos.RecordRepo,
		repos.CashflowRepo,
		repos.InventoryRepo,
		repos.CoinRepo,
		repos.ActivityRepo,
	)

	// Role surfaces
	container.Agent = NewAgentService(container.User, repos.CoinRepo, repos.ActivityRepo)
	container.Admin = NewAdminService(container.User, container.Coin, repos.ActivityRepo)

	// Personal finance tools
	container.Budget = NewBudgetService(repos.PersonalRepo, repos.ActivityRepo)
	container.Bill = NewBillService(repos.PersonalRepo, repos.UserRepo, repos.ActivityRepo, mail)
	container.NetWorth = NewNetWorthService(repos.PersonalRepo, repos.ActivityRepo)
	container.EmergencyFund = NewEmergencyFundService(repos.PersonalRepo, repos.ActivityRepo)
	container.FinancialHealth = NewFinancialHealthService(repos.PersonalRepo, repos.ActivityRepo, mail)
	container.Quiz = NewQuizService(repos.PersonalRepo, repos.ActivityRepo)

	// Learning hub and feedback
	container.Learning = NewLearningService(repos.LearningRepo)
	container.Feedback = NewFeedbackService(repos.ActivityRepo, repos.ActivityRepo, posthog)

	// Initialize TokenService
	container.TokenService = NewTokenService(cfg, container.User)

	// Initialize GoogleOAuthHandlerSvcFacade
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
