package repository

import (
	"database/sql"
	"errors"
	"fmt"

	entity "campusx/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrExchangeNotFound = errors.New("exchange not found")
	ErrItemNotFound     = errors.New("exchange item not found")
	ErrItemUnavailable  = errors.New("item is no longer available")
)

// ExchangeTxFunc mutates the locked exchange and its item inside a
// transaction. Returning an error aborts the transaction with no writes.
type ExchangeTxFunc func(ex *entity.Exchange, item *entity.Item) error

type ExchangeRepository interface {
	CreateExchangeTransaction(ex *entity.Exchange) error
	GetByID(id uuid.UUID) (*entity.Exchange, error)
	GetByOwnerID(ownerID uuid.UUID) ([]entity.Exchange, error)
	GetByRequesterID(requesterID uuid.UUID) ([]entity.Exchange, error)
	// Transact runs fn against the exchange and its item under row locks and
	// writes both back in the same transaction. This is the only way exchange
	// status may be mutated, so concurrent operations on the same exchange
	// serialize here.
	Transact(exchangeID uuid.UUID, fn ExchangeTxFunc) error
}

type exchangeRepository struct {
	db *sql.DB
}

func NewExchangeRepository(db *sql.DB) ExchangeRepository {
	return &exchangeRepository{db: db}
}

const exchangeColumns = `id, item_id, item_title, owner_id, requester_id, status, owner_confirmed, requester_confirmed, created_at, updated_at`

func scanExchange(row interface{ Scan(...interface{}) error }) (*entity.Exchange, error) {
	var ex entity.Exchange
	err := row.Scan(
		&ex.ID, &ex.ItemID, &ex.ItemTitle, &ex.OwnerID, &ex.RequesterID,
		&ex.Status, &ex.OwnerConfirmed, &ex.RequesterConfirmed, &ex.CreatedAt, &ex.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// CreateExchangeTransaction inserts the exchange and reserves its item in one
// transaction. The availability check is repeated under the row lock so two
// racing requests for the same item cannot both reserve it.
func (r *exchangeRepository) CreateExchangeTransaction(ex *entity.Exchange) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	var status entity.ItemStatus
	err = tx.QueryRow(`SELECT status FROM items WHERE id = $1 FOR UPDATE`, ex.ItemID).Scan(&status)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return ErrItemNotFound
	}
	if err != nil {
		tx.Rollback()
		return err
	}
	if status != entity.ItemAvailable {
		tx.Rollback()
		return ErrItemUnavailable
	}

	insert := `
		INSERT INTO exchanges (id, item_id, item_title, owner_id, requester_id, status, owner_confirmed, requester_confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, false, NOW(), NOW())
	`
	if _, err := tx.Exec(insert, ex.ID, ex.ItemID, ex.ItemTitle, ex.OwnerID, ex.RequesterID, ex.Status); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`UPDATE items SET status = $1, updated_at = NOW() WHERE id = $2`, entity.ItemPending, ex.ItemID); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *exchangeRepository) GetByID(id uuid.UUID) (*entity.Exchange, error) {
	query := fmt.Sprintf(`SELECT %s FROM exchanges WHERE id = $1`, exchangeColumns)
	ex, err := scanExchange(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ex, err
}

func (r *exchangeRepository) GetByOwnerID(ownerID uuid.UUID) ([]entity.Exchange, error) {
	return r.list(`owner_id`, ownerID)
}

func (r *exchangeRepository) GetByRequesterID(requesterID uuid.UUID) ([]entity.Exchange, error) {
	return r.list(`requester_id`, requesterID)
}

func (r *exchangeRepository) list(column string, id uuid.UUID) ([]entity.Exchange, error) {
	query := fmt.Sprintf(`SELECT %s FROM exchanges WHERE %s = $1 ORDER BY created_at DESC`, exchangeColumns, column)
	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []entity.Exchange
	for rows.Next() {
		ex, err := scanExchange(rows)
		if err != nil {
			return nil, err
		}
		exchanges = append(exchanges, *ex)
	}
	return exchanges, rows.Err()
}

func (r *exchangeRepository) Transact(exchangeID uuid.UUID, fn ExchangeTxFunc) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`SELECT %s FROM exchanges WHERE id = $1 FOR UPDATE`, exchangeColumns)
	ex, err := scanExchange(tx.QueryRow(query, exchangeID))
	if err == sql.ErrNoRows {
		tx.Rollback()
		return ErrExchangeNotFound
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	var item entity.Item
	itemQuery := `
		SELECT id, owner_id, category_id, title, description, condition, status, created_at, updated_at
		FROM items WHERE id = $1 FOR UPDATE
	`
	err = tx.QueryRow(itemQuery, ex.ItemID).Scan(
		&item.ID, &item.OwnerID, &item.CategoryID, &item.Title, &item.Description,
		&item.Condition, &item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return ErrItemNotFound
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := fn(ex, &item); err != nil {
		tx.Rollback()
		return err
	}

	update := `
		UPDATE exchanges
		SET status = $1, owner_confirmed = $2, requester_confirmed = $3, updated_at = NOW()
		WHERE id = $4
	`
	if _, err := tx.Exec(update, ex.Status, ex.OwnerConfirmed, ex.RequesterConfirmed, ex.ID); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`UPDATE items SET status = $1, updated_at = NOW() WHERE id = $2`, item.Status, item.ID); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
