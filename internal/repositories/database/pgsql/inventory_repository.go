package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
)

type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepositoryFacade
var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const inventoryColumns = `item_id, user_id, item_name, qty, unit, buying_price, selling_price, threshold,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(
		&item.ItemID,
		&item.UserID,
		&item.ItemName,
		&item.Qty,
		&item.Unit,
		&item.BuyingPrice,
		&item.SellingPrice,
		&item.Threshold,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PgxInventoryRepository) CreateItem(ctx context.Context, item domain.InventoryItem, charge *domain.CoinTransaction, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO inventory_items (item_id, user_id, item_name, qty, unit, buying_price, selling_price, threshold,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		item.ItemID,
		item.UserID,
		item.ItemName,
		item.Qty,
		item.Unit,
		item.BuyingPrice,
		item.SellingPrice,
		item.Threshold,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item %s: %w", item.ItemID, err)
	}

	if charge != nil {
		if err := applyBalanceChangeTx(ctx, tx, charge.UserID, charge.Amount); err != nil {
			return err
		}
		if err := insertCoinTransactionTx(ctx, tx, *charge); err != nil {
			return err
		}
	}
	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE item_id = $1;`
	item, err := scanInventoryItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}
	return item, nil
}

func (r *PgxInventoryRepository) queryItems(ctx context.Context, query string, args ...any) ([]domain.InventoryItem, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.InventoryItem, 0)
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory items: %w", err)
	}
	return items, nil
}

func (r *PgxInventoryRepository) FindItems(ctx context.Context, userID string, limit int, offset int) ([]domain.InventoryItem, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		WHERE ($1 = '' OR user_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	return r.queryItems(ctx, query, userID, limit, offset)
}

func (r *PgxInventoryRepository) FindLowStockItems(ctx context.Context, userID string, limit int) ([]domain.InventoryItem, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		WHERE ($1 = '' OR user_id = $1) AND qty <= threshold
		ORDER BY qty ASC
		LIMIT $2;
	`
	return r.queryItems(ctx, query, userID, limit)
}

func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			item_name = $2,
			qty = $3,
			unit = $4,
			buying_price = $5,
			selling_price = $6,
			threshold = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE item_id = $1;
	`
	cmd, err := r.Pool.Exec(ctx, query,
		item.ItemID,
		item.ItemName,
		item.Qty,
		item.Unit,
		item.BuyingPrice,
		item.SellingPrice,
		item.Threshold,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", item.ItemID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInventoryRepository) DeleteItem(ctx context.Context, itemID string) error {
	cmd, err := r.Pool.Exec(ctx, `DELETE FROM inventory_items WHERE item_id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item %s: %w", itemID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
