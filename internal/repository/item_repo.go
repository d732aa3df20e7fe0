package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"crepe_controlador/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresItemRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresItemRepository(db *sql.DB, logger *logrus.Logger) domain.ItemRepository {
	return &postgresItemRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresItemRepository) CreateItem(item *domain.Item) (*domain.Item, error) {
	query := `
        INSERT INTO itens (nome, preco, ativo)
        VALUES ($1, $2, $3)
        RETURNING id`

	err := r.db.QueryRow(query, item.Nome, item.Preco, item.Ativo).Scan(&item.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Check constraint violation for item '%s': %s", item.Nome, pqErr.Message)
			return nil, fmt.Errorf("%w: item data constraint violation: %s", domain.ErrInvalidArgument, pqErr.Message)
		}
		r.log.Errorf("Failed to create item '%s': %v", item.Nome, err)
		return nil, fmt.Errorf("could not create item: %w", err)
	}

	r.log.Infof("Item created successfully with ID: %d, Nome: %s", item.ID, item.Nome)
	return item, nil
}

func (r *postgresItemRepository) GetItemByID(id int) (*domain.Item, error) {
	query := `
        SELECT id, nome, preco, ativo
        FROM itens
        WHERE id = $1`
	item := &domain.Item{}

	err := r.db.QueryRow(query, id).Scan(
		&item.ID,
		&item.Nome,
		&item.Preco,
		&item.Ativo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Item with ID %d not found", id)
			return nil, fmt.Errorf("item with id %d %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get item by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get item by id: %w", err)
	}

	return item, nil
}

func (r *postgresItemRepository) UpdateItem(item *domain.Item) (*domain.Item, error) {
	query := `
        UPDATE itens
        SET nome = $1, preco = $2, ativo = $3
        WHERE id = $4`

	result, err := r.db.Exec(query, item.Nome, item.Preco, item.Ativo, item.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Check constraint violation for item update ID %d: %s", item.ID, pqErr.Message)
			return nil, fmt.Errorf("%w: item data constraint violation: %s", domain.ErrInvalidArgument, pqErr.Message)
		}
		r.log.Errorf("Failed to update item ID %d: %v", item.ID, err)
		return nil, fmt.Errorf("could not update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after item update ID %d: %v", item.ID, err)
		return nil, fmt.Errorf("could not confirm item update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Item with ID %d not found for update (0 rows affected)", item.ID)
		return nil, fmt.Errorf("item with id %d %w", item.ID, domain.ErrNotFound)
	}

	r.log.Infof("Item updated successfully: ID %d, Nome %s", item.ID, item.Nome)
	return item, nil
}

func (r *postgresItemRepository) ListItens() ([]domain.Item, error) {
	query := `
        SELECT id, nome, preco, ativo
        FROM itens
        ORDER BY nome`

	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list itens: %v", err)
		return nil, fmt.Errorf("could not retrieve itens: %w", err)
	}
	defer rows.Close()

	itens := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Nome, &item.Preco, &item.Ativo); err != nil {
			r.log.Errorf("Failed to scan item row: %v", err)
			return nil, fmt.Errorf("error scanning item: %w", err)
		}
		itens = append(itens, item)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during itens iteration: %v", err)
		return nil, fmt.Errorf("error iterating itens: %w", err)
	}

	r.log.Debugf("Retrieved %d itens", len(itens))
	return itens, nil
}
