package repository

import (
	"database/sql"
	"fmt"

	entity "campusx/internal/domain"

	"github.com/google/uuid"
)

type ItemRepository interface {
	CreateItem(item *entity.Item) error
	CreateItemImage(img *entity.ItemImage) error
	GetByID(id uuid.UUID) (*entity.Item, error)
	GetImages(itemID uuid.UUID) ([]entity.ItemImage, error)
	List(filter entity.ItemFilter) ([]entity.Item, error)
	GetByOwnerID(ownerID uuid.UUID) ([]entity.Item, error)
	Update(item *entity.Item) error
	UpdateStatus(id uuid.UUID, status entity.ItemStatus) error
}

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, owner_id, category_id, title, description, condition, status, created_at, updated_at`

func (r *itemRepository) CreateItem(item *entity.Item) error {
	query := `
		INSERT INTO items (id, owner_id, category_id, title, description, condition, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(query,
		item.ID, item.OwnerID, item.CategoryID, item.Title, item.Description,
		item.Condition, item.Status,
	)
	return err
}

func (r *itemRepository) CreateItemImage(img *entity.ItemImage) error {
	query := `
		INSERT INTO item_images (id, item_id, image_url, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := r.db.Exec(query, img.ID, img.ItemID, img.ImageURL)
	return err
}

func (r *itemRepository) GetByID(id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	query := fmt.Sprintf(`SELECT %s FROM items WHERE id = $1`, itemColumns)
	err := r.db.QueryRow(query, id).Scan(
		&item.ID, &item.OwnerID, &item.CategoryID, &item.Title, &item.Description,
		&item.Condition, &item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) GetImages(itemID uuid.UUID) ([]entity.ItemImage, error) {
	rows, err := r.db.Query(`SELECT id, item_id, image_url, created_at FROM item_images WHERE item_id = $1 ORDER BY created_at`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []entity.ItemImage
	for rows.Next() {
		var img entity.ItemImage
		if err := rows.Scan(&img.ID, &img.ItemID, &img.ImageURL, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// List returns browsable items. Filters are parameterized; only available
// items show up in the public listing.
func (r *itemRepository) List(filter entity.ItemFilter) ([]entity.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE status = $1`, itemColumns)
	args := []interface{}{entity.ItemAvailable}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	if filter.CategoryID != uuid.Nil {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.queryItems(query, args...)
}

func (r *itemRepository) GetByOwnerID(ownerID uuid.UUID) ([]entity.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE owner_id = $1 AND status != $2 ORDER BY created_at DESC`, itemColumns)
	return r.queryItems(query, ownerID, entity.ItemDeleted)
}

func (r *itemRepository) queryItems(query string, args ...interface{}) ([]entity.Item, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		var item entity.Item
		err := rows.Scan(
			&item.ID, &item.OwnerID, &item.CategoryID, &item.Title, &item.Description,
			&item.Condition, &item.Status, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepository) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET title = $1, description = $2, condition = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(query, item.Title, item.Description, item.Condition, item.ID)
	return err
}

func (r *itemRepository) UpdateStatus(id uuid.UUID, status entity.ItemStatus) error {
	_, err := r.db.Exec(`UPDATE items SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}
