package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bitary-listing-service/internal/domain"
)

// Predefined errors for store operations
var (
	ErrProductNotFound = errors.New("store: product not found")
	ErrClinicNotFound  = errors.New("store: clinic not found")
)

const (
	categoryColumns = `id, name, description, parent_category_id`
	productColumns  = `p.id, p.name, p.description, p.price, p.stock_quantity, COALESCE(c.name, ''), p.brand, p.image_url`
	productFrom     = ` FROM products.products p LEFT JOIN products.categories c ON c.id = p.category_id`
	clinicColumns   = `id, name, street, city, country, rating, status, owner_id`
)

// likeEscaper quotes LIKE wildcards so a search matches its text literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const (
	listCategoriesQuery = `SELECT ` + categoryColumns + ` FROM products.categories ORDER BY name ASC;`
	getProductQuery     = `SELECT ` + productColumns + productFrom + ` WHERE p.id = $1;`
	getClinicQuery      = `SELECT ` + clinicColumns + ` FROM clinics.clinics WHERE id = $1;`
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresStore implements the CategoryStorer, ProductStorer and
// ClinicStorer interfaces using PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{db: db, logger: logger}
}

// --- CategoryStorer Implementation ---

func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, listCategoriesQuery)
	if err != nil {
		return nil, fmt.Errorf("store: ListCategories failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ParentCategoryID); err != nil {
			return nil, fmt.Errorf("store: ListCategories failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListCategories iteration error: %w", err)
	}
	return categories, nil
}

// --- ProductStorer Implementation ---

// ListProducts returns the active product snapshot in id order. A search
// query narrows it upstream by name; category and ordering are left to
// the listing pipeline.
func (s *PostgresStore) ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, error) {
	whereClauses := []string{"p.is_active = TRUE"}
	var queryArgs []any
	if params.SearchQuery != nil && strings.TrimSpace(*params.SearchQuery) != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(`p.name ILIKE $%d ESCAPE '\'`, len(queryArgs)+1))
		queryArgs = append(queryArgs, "%"+likeEscaper.Replace(strings.TrimSpace(*params.SearchQuery))+"%")
	}
	query := "SELECT " + productColumns + productFrom +
		" WHERE " + strings.Join(whereClauses, " AND ") +
		" ORDER BY p.id ASC;"

	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListProducts failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProducts iteration error: %w", err)
	}
	s.logger.Debug("products snapshot fetched", zap.Int("count", len(products)))
	return products, nil
}

func (s *PostgresStore) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, getProductQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: GetProductByID failed to scan row: %w", err)
	}
	return &p, nil
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
		&p.Category, &p.Brand, &p.ImageURL,
	)
	return p, err
}

// --- ClinicStorer Implementation ---

func (s *PostgresStore) ListClinics(ctx context.Context, params ListClinicsParams) ([]domain.Clinic, error) {
	query := "SELECT " + clinicColumns + " FROM clinics.clinics"
	var queryArgs []any
	if params.ActiveOnly {
		query += " WHERE status = $1"
		queryArgs = append(queryArgs, int(domain.ClinicActive))
	}
	query += " ORDER BY id ASC;"

	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("store: ListClinics failed to query clinics: %w", err)
	}
	defer rows.Close()

	clinics := make([]domain.Clinic, 0)
	for rows.Next() {
		c, err := scanClinic(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListClinics failed to scan clinic row: %w", err)
		}
		clinics = append(clinics, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListClinics iteration error: %w", err)
	}
	s.logger.Debug("clinics snapshot fetched", zap.Int("count", len(clinics)))
	return clinics, nil
}

func (s *PostgresStore) GetClinicByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	c, err := scanClinic(s.db.QueryRowContext(ctx, getClinicQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClinicNotFound
		}
		return nil, fmt.Errorf("store: GetClinicByID failed to scan row: %w", err)
	}
	return &c, nil
}

func scanClinic(row rowScanner) (domain.Clinic, error) {
	var c domain.Clinic
	var status int
	err := row.Scan(
		&c.ID, &c.Name, &c.Address.Street, &c.Address.City, &c.Address.Country,
		&c.Rating, &status, &c.OwnerID,
	)
	c.Status = domain.ClinicStatus(status)
	return c, err
}

// Ping checks that the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Info("closing database connection pool")
	if err := s.db.Close(); err != nil {
		s.logger.Error("failed to close database connection pool", zap.Error(err))
		return err
	}
	s.logger.Info("database connection pool closed")
	return nil
}
