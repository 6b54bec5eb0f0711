package server

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"productadmin/internal/domain"
)

// PostgresProductStore backs the stand-in server with a real database when
// DATABASE_URL is set, so the demo survives restarts. Categories, users and
// login history stay in memory either way.
type PostgresProductStore struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductStore(db *sql.DB, logger *logrus.Logger) *PostgresProductStore {
	return &PostgresProductStore{db: db, log: logger}
}

// EnsureSchema creates the products table when it does not exist yet.
func (s *PostgresProductStore) EnsureSchema() error {
	query := `
        CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name VARCHAR(100) NOT NULL,
            price NUMERIC(12,2) NOT NULL CHECK (price > 0),
            quantity INTEGER NOT NULL CHECK (quantity >= 0),
            description VARCHAR(500),
            category_id INTEGER,
            created_by INTEGER NOT NULL
        )`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("could not ensure products schema: %w", err)
	}
	return nil
}

func (s *PostgresProductStore) ListProducts() ([]domain.Product, error) {
	query := `
        SELECT id, name, price, quantity, COALESCE(description, ''), COALESCE(category_id, 0), created_by
        FROM products
        ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		s.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Description, &p.CategoryID, &p.CreatedByID); err != nil {
			return nil, fmt.Errorf("could not scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product row iteration failed: %w", err)
	}
	return products, nil
}

func (s *PostgresProductStore) GetProduct(id int) (*domain.Product, error) {
	query := `
        SELECT id, name, price, quantity, COALESCE(description, ''), COALESCE(category_id, 0), created_by
        FROM products
        WHERE id = $1`
	var p domain.Product
	err := s.db.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Description, &p.CategoryID, &p.CreatedByID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Warnf("Product with ID %d not found", id)
			return nil, ErrProductNotFound
		}
		s.log.Errorf("Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return &p, nil
}

func (s *PostgresProductStore) CreateProduct(product domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (name, price, quantity, description, category_id, created_by)
        VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, 0), $6)
        RETURNING id`
	err := s.db.QueryRow(query, product.Name, product.Price, product.Quantity,
		product.Description, product.CategoryID, product.CreatedByID).Scan(&product.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			s.log.Warnf("Check constraint violation for product '%s': %s", product.Name, pqErr.Message)
			return nil, fmt.Errorf("product data constraint violation: %s", pqErr.Message)
		}
		s.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	s.log.Infof("Product created successfully with ID: %d, Name: %s", product.ID, product.Name)
	return &product, nil
}

func (s *PostgresProductStore) UpdateProduct(id int, product domain.Product) (*domain.Product, error) {
	query := `
        UPDATE products
        SET name = $1, price = $2, quantity = $3, description = NULLIF($4, ''), category_id = NULLIF($5, 0)
        WHERE id = $6
        RETURNING id, COALESCE(created_by, 0)`
	err := s.db.QueryRow(query, product.Name, product.Price, product.Quantity,
		product.Description, product.CategoryID, id).Scan(&product.ID, &product.CreatedByID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		s.log.Errorf("Failed to update product ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}
	return &product, nil
}

func (s *PostgresProductStore) DeleteProduct(id int) error {
	result, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		s.log.Errorf("Failed to delete product ID %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read delete result: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	s.log.Infof("Product %d deleted", id)
	return nil
}
