package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xmkt/marketplace/internal/model"
)

// ListOptions controls filtering, ordering and pagination for ListItems.
type ListOptions struct {
	Category string // exact category match, empty for all
	Query    string // case-insensitive substring match on title
	Order    string // "asc" or "desc" (default) by timestamp
	Start    int    // offset, 0-based
	Limit    int    // 0 means no limit
}

const itemColumns = `id, title, price, contact, category, category_description,
	images, timestamp, apron_size, apron_color, delete_key_hash`

// CreateItem persists a new item and returns the stored record.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	images, err := json.Marshal(item.Images)
	if err != nil {
		return nil, fmt.Errorf("encoding image urls: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (title, price, contact, category, category_description,
		 images, timestamp, apron_size, apron_color, delete_key_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, item.Price, item.Contact, item.Category,
		nullable(item.CategoryDescription), string(images), item.Timestamp,
		nullable(item.ApronSize), nullable(item.ApronColor), nullable(item.DeleteKeyHash),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	)
	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns items sorted by timestamp (descending unless opts.Order
// is "asc"), filtered and paginated per opts.
func ListItems(ctx context.Context, db *sql.DB, opts ListOptions) ([]model.Item, error) {
	var where []string
	var args []any

	if opts.Category != "" {
		where = append(where, "category = ?")
		args = append(args, opts.Category)
	}
	if opts.Query != "" {
		where = append(where, "LOWER(title) LIKE '%' || LOWER(?) || '%'")
		args = append(args, opts.Query)
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	order := "DESC"
	if opts.Order == "asc" {
		order = "ASC"
	}
	query += " ORDER BY timestamp " + order

	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Start)
	} else if opts.Start > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, opts.Start)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem updates an item's editable metadata. Images, timestamp and the
// delete key hash are never touched after creation.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, title, price, category, categoryDescription string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET title = ?, price = ?, category = ?, category_description = ?
		 WHERE id = ?`,
		title, price, category, nullable(categoryDescription), id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem removes an item record.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// scanItem reads one item row via the given scan function.
func scanItem(scan func(...any) error) (*model.Item, error) {
	item := &model.Item{}
	var categoryDescription, apronSize, apronColor, deleteKeyHash sql.NullString
	var images string

	err := scan(&item.ID, &item.Title, &item.Price, &item.Contact, &item.Category,
		&categoryDescription, &images, &item.Timestamp, &apronSize, &apronColor, &deleteKeyHash)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(images), &item.Images); err != nil {
		return nil, fmt.Errorf("decoding image urls: %w", err)
	}
	item.CategoryDescription = categoryDescription.String
	item.ApronSize = apronSize.String
	item.ApronColor = apronColor.String
	item.DeleteKeyHash = deleteKeyHash.String
	return item, nil
}

// nullable converts an empty string to NULL so optional columns stay unset.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
