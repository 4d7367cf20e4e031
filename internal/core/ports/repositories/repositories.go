package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo      UserRepositoryFacade
	CoinRepo      CoinRepositoryFacade
	RecordRepo    RecordRepositoryFacade
	CashflowRepo  CashflowRepositoryFacade
	InventoryRepo InventoryRepositoryFacade
	ActivityRepo  ActivityRepositoryFacade
	PersonalRepo  PersonalRepositoryFacade
	LearningRepo  LearningRepositoryFacade
}
