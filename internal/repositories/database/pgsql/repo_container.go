package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		CoinRepo:      newPgxCoinRepository(dbPool),
		RecordRepo:    newPgxRecordRepository(dbPool),
		CashflowRepo:  newPgxCashflowRepository(dbPool),
		InventoryRepo: newPgxInventoryRepository(dbPool),
		ActivityRepo:  newPgxActivityRepository(dbPool),
		PersonalRepo:  newPgxPersonalRepository(dbPool),
		LearningRepo:  newPgxLearningRepository(dbPool),
	}
}
