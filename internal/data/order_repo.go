package data

// Package data provides PostgreSQL repositories.

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/order-wizard/ow-api/internal/data/pgxutil"
	"github.com/order-wizard/ow-api/internal/domain/model"
	apperrors "github.com/order-wizard/ow-api/internal/errors"
)

const orderColumns = `
	id, user_id, order_number, product_name, order_date, product_image, price, status, note, created_at, updated_at`

// orderRow mirrors the orders table for pgx row collection.
type orderRow struct {
	ID           string            `db:"id"`
	UserID       string            `db:"user_id"`
	OrderNumber  string            `db:"order_number"`
	ProductName  string            `db:"product_name"`
	OrderDate    string            `db:"order_date"`
	ProductImage string            `db:"product_image"`
	Price        string            `db:"price"`
	Status       model.OrderStatus `db:"status"`
	Note         *string           `db:"note"`
	CreatedAt    sql.NullTime      `db:"created_at"`
	UpdatedAt    sql.NullTime      `db:"updated_at"`
}

func (r orderRow) toModel() model.Order {
	o := model.Order{
		ID:           r.ID,
		UserID:       r.UserID,
		OrderNumber:  r.OrderNumber,
		ProductName:  r.ProductName,
		OrderDate:    r.OrderDate,
		ProductImage: r.ProductImage,
		Price:        r.Price,
		Status:       r.Status,
		Note:         r.Note,
	}
	if r.CreatedAt.Valid {
		o.CreatedAt = r.CreatedAt.Time
	}
	if r.UpdatedAt.Valid {
		o.UpdatedAt = r.UpdatedAt.Time
	}
	return o
}

// OrderRepo provides database operations for orders. Every query is scoped
// to the owning user.
type OrderRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewOrderRepo creates a new OrderRepo with the real time provider.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewOrderRepoWithTimeProvider creates an OrderRepo with a custom clock.
func NewOrderRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *OrderRepo {
	return &OrderRepo{DB: db, timeProvider: tp}
}

// Create inserts a new order owned by userID. The ID is client-assigned;
// inserting a taken ID surfaces as a conflict.
func (r *OrderRepo) Create(ctx context.Context, userID string, req model.CreateOrderRequest) (model.Order, error) {
	now := r.timeProvider.Now().UTC()

	var row orderRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO orders (id, user_id, order_number, product_name, order_date, product_image, price, status, note, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
			RETURNING `+orderColumns,
			req.ID, userID, req.OrderNumber, req.ProductName, req.OrderDate, req.ProductImage, req.Price, req.Status, req.Note, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[orderRow])
		return err
	})
	if err != nil {
		return model.Order{}, apperrors.MapDBError(err)
	}
	return row.toModel(), nil
}

// Get retrieves an order by ID for the given user. Orders of other users are
// reported as not found.
func (r *OrderRepo) Get(ctx context.Context, userID, orderID string) (model.Order, error) {
	var row orderRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+orderColumns+`
			FROM orders
			WHERE id = $1 AND user_id = $2`,
			orderID, userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[orderRow])
		return err
	})
	if err != nil {
		return model.Order{}, apperrors.MapDBError(err)
	}
	return row.toModel(), nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var rowsOut []orderRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+orderColumns+`
			FROM orders
			WHERE user_id = $1
			ORDER BY created_at DESC, id`,
			userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[orderRow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	orders := make([]model.Order, len(rowsOut))
	for i, row := range rowsOut {
		orders[i] = row.toModel()
	}
	return orders, nil
}

// Update applies the non-nil fields of req to the user's order.
func (r *OrderRepo) Update(ctx context.Context, userID, orderID string, req model.UpdateOrderRequest) (model.Order, error) {
	now := r.timeProvider.Now().UTC()

	var row orderRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE orders SET
				status = COALESCE($3, status),
				note = COALESCE($4, note),
				updated_at = $5
			WHERE id = $1 AND user_id = $2
			RETURNING `+orderColumns,
			orderID, userID,
			req.Status, req.Note, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[orderRow])
		return err
	})
	if err != nil {
		return model.Order{}, apperrors.MapDBError(err)
	}
	return row.toModel(), nil
}

// Delete removes the user's order. Deleting a missing order is a not-found
// error so handlers can answer 404.
func (r *OrderRepo) Delete(ctx context.Context, userID, orderID string) error {
	var deleted int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `
			DELETE FROM orders
			WHERE id = $1 AND user_id = $2`,
			orderID, userID,
		)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if deleted == 0 {
		return apperrors.NotFound("order not found")
	}
	return nil
}
