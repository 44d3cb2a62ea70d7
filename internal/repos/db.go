package repos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"bagshop/internal/domain"
	applog "bagshop/internal/log"
)

// OpenDB connects with driver ("sqlite" or "pgx"), applies the schema and seeds categories.
func OpenDB(ctx context.Context, driver, dsn string, maxOpen int) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("repos: open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// single writer; also keeps :memory: databases on one connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		if maxOpen <= 0 {
			maxOpen = 10
		}
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repos: ping: %w", err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repos: schema: %w", err)
	}
	if err := seedCategories(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repos: seed categories: %w", err)
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == "pgx" {
		schema = postgresSchema
	}
	// pgx runs one statement per Exec in extended mode
	for _, stmt := range strings.Split(schema, ";\n") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

const sqliteSchema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  phone_number TEXT NOT NULL,
  post_code TEXT,
  address TEXT,
  password_hash TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  code TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  deleted_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price INTEGER NOT NULL CHECK (price > 0),
  image_url TEXT NOT NULL,
  category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  description TEXT,
  color TEXT,
  is_new INTEGER NOT NULL DEFAULT 0,
  is_best INTEGER NOT NULL DEFAULT 0,
  view_count INTEGER NOT NULL DEFAULT 0,
  sales_count INTEGER NOT NULL DEFAULT 0,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  deleted_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_is_new   ON products(is_new);
CREATE INDEX IF NOT EXISTS idx_products_is_best  ON products(is_best);

CREATE TABLE IF NOT EXISTS carts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS cart_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cart_id INTEGER NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity BETWEEN 1 AND 999),
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  UNIQUE(cart_id, product_id)
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users(
  id BIGSERIAL PRIMARY KEY,
  user_id VARCHAR(50) NOT NULL UNIQUE,
  email VARCHAR(100) NOT NULL UNIQUE,
  name VARCHAR(50) NOT NULL,
  phone_number VARCHAR(50) NOT NULL,
  post_code VARCHAR(20),
  address VARCHAR(255),
  password_hash VARCHAR(255) NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS categories(
  id BIGSERIAL PRIMARY KEY,
  code VARCHAR(50) NOT NULL UNIQUE,
  name VARCHAR(100) NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL,
  deleted_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS products(
  id BIGSERIAL PRIMARY KEY,
  name VARCHAR(100) NOT NULL,
  price BIGINT NOT NULL CHECK (price > 0),
  image_url VARCHAR(255) NOT NULL,
  category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  description TEXT,
  color VARCHAR(50),
  is_new BOOLEAN NOT NULL DEFAULT FALSE,
  is_best BOOLEAN NOT NULL DEFAULT FALSE,
  view_count BIGINT NOT NULL DEFAULT 0,
  sales_count BIGINT NOT NULL DEFAULT 0,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL,
  deleted_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_is_new   ON products(is_new);
CREATE INDEX IF NOT EXISTS idx_products_is_best  ON products(is_best);

CREATE TABLE IF NOT EXISTS carts(
  id BIGSERIAL PRIMARY KEY,
  user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS cart_items(
  id BIGSERIAL PRIMARY KEY,
  cart_id BIGINT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity BETWEEN 1 AND 999),
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL,
  UNIQUE(cart_id, product_id)
);
`

// seedCategories inserts the fixed category set (idempotent).
func seedCategories(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	q := tx.Rebind(`
		INSERT INTO categories(code, name, created_at, updated_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(code) DO NOTHING`)
	for _, code := range domain.CategoryCodes {
		if _, err := tx.ExecContext(ctx, q, string(code), domain.CategoryNames[code], now, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SeedDemo inserts a handful of products when the catalog is empty.
func SeedDemo(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	applog.L().Info("seed.demo", slog.String("what", "products"))

	cats := NewCategoryRepo(db)
	prods := NewProductRepo(db)
	demo := []struct {
		code domain.CategoryCode
		p    domain.NewProduct
	}{
		{domain.TwinBag, domain.NewProduct{Name: "Twin Bag Classic", Price: 89000, ImageURL: "https://cdn.bagshop.test/twin-classic.jpg", Color: "black", IsNew: true}},
		{domain.RemoodBag, domain.NewProduct{Name: "Remood Tote", Price: 129000, ImageURL: "https://cdn.bagshop.test/remood-tote.jpg", Color: "ivory", IsBest: true}},
		{domain.CloBag, domain.NewProduct{Name: "Clo Mini", Price: 69000, ImageURL: "https://cdn.bagshop.test/clo-mini.jpg", Color: "brown", IsNew: true, IsBest: true}},
		{domain.MinimalBag, domain.NewProduct{Name: "Minimal Shoulder", Price: 99000, ImageURL: "https://cdn.bagshop.test/minimal-shoulder.jpg", Color: "grey"}},
		{domain.Accessory, domain.NewProduct{Name: "Leather Strap", Price: 19000, ImageURL: "https://cdn.bagshop.test/strap.jpg", Color: "tan"}},
	}
	for _, d := range demo {
		cat, err := cats.ByCode(ctx, d.code)
		if err != nil {
			return err
		}
		d.p.CategoryID = cat.ID
		if _, err := prods.Create(ctx, d.p); err != nil {
			return err
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure on either driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// extended codes off: fall back to the message
			return strings.Contains(sqlErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}
