// Package pgtest starts a throwaway PostgreSQL for integration tests and
// seeds it with back-office rows.
package pgtest

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/migrations"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const image = "postgres:15-alpine"

// Database is a migrated PostgreSQL container.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// SkipIfShort skips container-backed tests under -short.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

// Start runs a container and applies all migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err = migrations.Up(sqlDB); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// Truncate empties every table and resets identities.
func (d *Database) Truncate() error {
	return d.DB.Exec(`TRUNCATE TABLE table_logs, order_history, inventory, order_items, orders,
		employees, products, stores RESTART IDENTITY CASCADE`).Error
}

func (d *Database) insert(t testing.TB, query string, args ...any) int64 {
	t.Helper()
	var id int64
	require.NoError(t, d.DB.Raw(query, args...).Scan(&id).Error)
	return id
}

// Store inserts a location.
func (d *Database) Store(t testing.TB, name string, warehouse bool) int64 {
	t.Helper()
	return d.insert(t, `INSERT INTO stores (name, is_warehouse) VALUES (?, ?) RETURNING store_id`, name, warehouse)
}

// Product inserts a product.
func (d *Database) Product(t testing.TB, name string) int64 {
	t.Helper()
	return d.insert(t, `INSERT INTO products (name) VALUES (?) RETURNING product_id`, name)
}

// Employee inserts an employee with a role.
func (d *Database) Employee(t testing.TB, name, role string) int64 {
	t.Helper()
	return d.insert(t, `INSERT INTO employees (name, role) VALUES (?, ?) RETURNING employee_id`, name, role)
}

// Order inserts an order and its CREATED history entry.
func (d *Database) Order(t testing.TB, storeID, creatorID int64, status, total string) int64 {
	t.Helper()
	id := d.insert(t, `INSERT INTO orders (store_id, status, order_total) VALUES (?, ?, ?) RETURNING order_id`,
		storeID, status, total)
	d.insert(t, `INSERT INTO order_history (order_id, action, employee_id, comment)
		VALUES (?, 'CREATED', ?, 'Created order') RETURNING history_id`, id, creatorID)
	return id
}

// Item inserts an order line.
func (d *Database) Item(t testing.TB, orderID, productID int64, source string, quantity int, total string) int64 {
	t.Helper()
	return d.insert(t, `INSERT INTO order_items (order_id, product_id, source, quantity, item_total)
		VALUES (?, ?, ?, ?, ?) RETURNING order_item_id`, orderID, productID, source, quantity, total)
}

// Stock inserts an inventory record.
func (d *Database) Stock(t testing.TB, storeID, productID int64, quantity int) int64 {
	t.Helper()
	return d.insert(t, `INSERT INTO inventory (store_id, product_id, quantity) VALUES (?, ?, ?) RETURNING inventory_id`,
		storeID, productID, quantity)
}

// Quantity reads the stock of a product at a location; ok is false when there is no record.
func (d *Database) Quantity(t testing.TB, storeID, productID int64) (int, bool) {
	t.Helper()
	var quantities []int
	require.NoError(t, d.DB.Raw(`SELECT quantity FROM inventory WHERE store_id = ? AND product_id = ?`,
		storeID, productID).Scan(&quantities).Error)
	if len(quantities) == 0 {
		return 0, false
	}
	return quantities[0], true
}

// Count returns the number of rows matching a WHERE clause.
func (d *Database) Count(t testing.TB, table, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, d.DB.Table(table).Where(where, args...).Count(&n).Error)
	return n
}
