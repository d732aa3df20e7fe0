package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"crepe_controlador/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresPedidoRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresPedidoRepository(db *sql.DB, logger *logrus.Logger) domain.PedidoRepository {
	return &postgresPedidoRepository{
		db:  db,
		log: logger,
	}
}

// CreatePedido's returns are named so the deferred commit can surface
// its failure to the caller.
func (r *postgresPedidoRepository) CreatePedido(pedido *domain.Pedido) (p *domain.Pedido, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Failed to begin transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("Recovered from panic, rolling back transaction")
			_ = tx.Rollback()
			panic(rec)
		} else if err != nil {
			r.log.Warnf("Rolling back transaction due to error: %v", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				r.log.Errorf("Failed to commit transaction: %v", cErr)
				p = nil
				err = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}
	}()

	// The serial id is the code allocator: formatting the returned id
	// inside the same transaction keeps codes unique and strictly
	// increasing under concurrent creates.
	headerQuery := `
        INSERT INTO pedidos (cliente, tipo_pedido, status, observacao, data_criacao, valor_total)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err = tx.QueryRow(headerQuery,
		nullString(pedido.Cliente),
		pedido.TipoPedido,
		pedido.Status,
		nullString(pedido.Observacao),
		pedido.DataCriacao,
		pedido.ValorTotal,
	).Scan(&pedido.ID)
	if err != nil {
		r.log.Errorf("Failed to insert pedido: %v", err)
		return nil, fmt.Errorf("could not create pedido entry: %w", err)
	}

	pedido.Codigo = domain.CodigoPedido(pedido.ID)
	_, err = tx.Exec(`UPDATE pedidos SET codigo = $1 WHERE id = $2`, pedido.Codigo, pedido.ID)
	if err != nil {
		r.log.Errorf("Failed to set codigo for pedido %d: %v", pedido.ID, err)
		return nil, fmt.Errorf("could not assign pedido codigo: %w", err)
	}

	if err = r.insertItensTx(tx, pedido); err != nil {
		return nil, err
	}

	r.log.Infof("Pedido %d (%s) created successfully with %d itens.", pedido.ID, pedido.Codigo, len(pedido.Itens))
	return pedido, nil
}

func (r *postgresPedidoRepository) UpdatePedido(pedido *domain.Pedido) (p *domain.Pedido, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Failed to begin transaction for pedido update: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			_ = tx.Rollback()
			panic(rec)
		} else if err != nil {
			r.log.Warnf("Rolling back pedido update due to error: %v", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				r.log.Errorf("Failed to commit pedido update: %v", cErr)
				p = nil
				err = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}
	}()

	headerQuery := `
        UPDATE pedidos
        SET cliente = $1, tipo_pedido = $2, status = $3, observacao = $4,
            data_conclusao = $5, valor_total = $6
        WHERE id = $7
        RETURNING codigo, data_criacao
    `
	err = tx.QueryRow(headerQuery,
		nullString(pedido.Cliente),
		pedido.TipoPedido,
		pedido.Status,
		nullString(pedido.Observacao),
		nullTime(pedido.DataConclusao),
		pedido.ValorTotal,
		pedido.ID,
	).Scan(&pedido.Codigo, &pedido.DataCriacao)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Pedido with ID %d not found for update", pedido.ID)
			return nil, fmt.Errorf("pedido with id %d %w", pedido.ID, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to update pedido ID %d: %v", pedido.ID, err)
		return nil, fmt.Errorf("could not update pedido: %w", err)
	}

	// Full line replacement: the submitted collection is the only source
	// of truth for the totals.
	_, err = tx.Exec(`DELETE FROM itens_pedido WHERE pedido_id = $1`, pedido.ID)
	if err != nil {
		r.log.Errorf("Failed to clear itens for pedido %d: %v", pedido.ID, err)
		return nil, fmt.Errorf("could not replace pedido itens: %w", err)
	}

	if err = r.insertItensTx(tx, pedido); err != nil {
		return nil, err
	}

	r.log.Infof("Pedido %d updated successfully with %d itens.", pedido.ID, len(pedido.Itens))
	return pedido, nil
}

func (r *postgresPedidoRepository) insertItensTx(tx *sql.Tx, pedido *domain.Pedido) error {
	itemQuery := `
        INSERT INTO itens_pedido (pedido_id, item_id, quantidade, preco_unitario, total_item)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	stmt, err := tx.Prepare(itemQuery)
	if err != nil {
		r.log.Errorf("Failed to prepare pedido item statement: %v", err)
		return fmt.Errorf("could not prepare item statement: %w", err)
	}
	defer stmt.Close()

	for i := range pedido.Itens {
		item := &pedido.Itens[i]
		item.PedidoID = pedido.ID
		err = stmt.QueryRow(pedido.ID, item.ItemID, item.Quantidade, item.PrecoUnitario, item.TotalItem).Scan(&item.ID)
		if err != nil {
			r.log.Errorf("Failed to insert pedido item (item_id: %d, quantidade: %d) for pedido %d: %v", item.ItemID, item.Quantidade, pedido.ID, err)
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
				return fmt.Errorf("item with id %d %w", item.ItemID, domain.ErrNotFound)
			}
			return fmt.Errorf("could not create pedido item (item_id: %d): %w", item.ItemID, err)
		}
	}

	return nil
}

func (r *postgresPedidoRepository) GetPedidoByID(id int) (*domain.PedidoDetalhe, error) {
	detalhe := &domain.PedidoDetalhe{}
	headerQuery := `
        SELECT id, codigo, cliente, tipo_pedido, status, observacao,
               data_criacao, data_conclusao, valor_total
        FROM pedidos
        WHERE id = $1
    `
	var cliente, observacao sql.NullString
	var dataConclusao sql.NullTime

	err := r.db.QueryRow(headerQuery, id).Scan(
		&detalhe.ID,
		&detalhe.Codigo,
		&cliente,
		&detalhe.TipoPedido,
		&detalhe.Status,
		&observacao,
		&detalhe.DataCriacao,
		&dataConclusao,
		&detalhe.ValorTotal,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Pedido with ID %d not found", id)
			return nil, fmt.Errorf("pedido with id %d %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get pedido by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve pedido: %w", err)
	}
	detalhe.Cliente = stringPtr(cliente)
	detalhe.Observacao = stringPtr(observacao)
	detalhe.DataConclusao = timePtr(dataConclusao)

	itensQuery := `
        SELECT ip.id, ip.pedido_id, ip.item_id, ip.quantidade, ip.preco_unitario, ip.total_item,
               i.nome, i.preco, i.ativo
        FROM itens_pedido ip
        JOIN itens i ON i.id = ip.item_id
        WHERE ip.pedido_id = $1
        ORDER BY ip.id
    `
	rows, err := r.db.Query(itensQuery, id)
	if err != nil {
		r.log.Errorf("Failed to query itens for pedido ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve pedido itens: %w", err)
	}
	defer rows.Close()

	itens := []domain.ItemPedidoDetalhe{}
	for rows.Next() {
		var item domain.ItemPedidoDetalhe
		if err := rows.Scan(
			&item.ID,
			&item.PedidoID,
			&item.ItemID,
			&item.Quantidade,
			&item.PrecoUnitario,
			&item.TotalItem,
			&item.NomeItem,
			&item.PrecoItem,
			&item.ItemAtivo,
		); err != nil {
			r.log.Errorf("Failed to scan pedido item row for pedido ID %d: %v", id, err)
			return nil, fmt.Errorf("error scanning pedido item: %w", err)
		}
		itens = append(itens, item)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during pedido itens iteration for pedido ID %d: %v", id, err)
		return nil, fmt.Errorf("error iterating pedido itens: %w", err)
	}
	detalhe.ItensDetalhe = itens

	r.log.Debugf("Pedido %d retrieved with %d itens", id, len(itens))
	return detalhe, nil
}

func (r *postgresPedidoRepository) ListPedidosByStatus(statuses []domain.StatusPedido) ([]domain.Pedido, error) {
	query := `
        SELECT id, codigo, cliente, tipo_pedido, status, observacao,
               data_criacao, data_conclusao, valor_total
        FROM pedidos
        WHERE status = ANY($1)
        ORDER BY data_criacao DESC
    `
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	rows, err := r.db.Query(query, pq.Array(values))
	if err != nil {
		r.log.Errorf("Failed to list pedidos by status %v: %v", values, err)
		return nil, fmt.Errorf("could not retrieve pedidos: %w", err)
	}
	defer rows.Close()

	return r.scanPedidos(rows)
}

func (r *postgresPedidoRepository) ListPedidosAbertosByTipo(tipo domain.TipoPedido) ([]domain.Pedido, error) {
	query := `
        SELECT id, codigo, cliente, tipo_pedido, status, observacao,
               data_criacao, data_conclusao, valor_total
        FROM pedidos
        WHERE tipo_pedido = $1 AND status = ANY($2)
        ORDER BY data_criacao
    `
	abertos := []string{string(domain.StatusPreparando), string(domain.StatusPronto)}

	rows, err := r.db.Query(query, tipo, pq.Array(abertos))
	if err != nil {
		r.log.Errorf("Failed to list pedidos abertos for tipo '%s': %v", tipo, err)
		return nil, fmt.Errorf("could not retrieve pedidos: %w", err)
	}
	defer rows.Close()

	return r.scanPedidos(rows)
}

func (r *postgresPedidoRepository) SearchPedidos(termo string) ([]domain.Pedido, error) {
	query := `
        SELECT id, codigo, cliente, tipo_pedido, status, observacao,
               data_criacao, data_conclusao, valor_total
        FROM pedidos
        WHERE codigo ILIKE '%' || $1 || '%'
           OR cliente ILIKE '%' || $1 || '%'
           OR tipo_pedido ILIKE '%' || $1 || '%'
           OR status ILIKE '%' || $1 || '%'
           OR observacao ILIKE '%' || $1 || '%'
        ORDER BY data_criacao DESC
    `
	rows, err := r.db.Query(query, termo)
	if err != nil {
		r.log.Errorf("Failed to search pedidos for termo '%s': %v", termo, err)
		return nil, fmt.Errorf("could not search pedidos: %w", err)
	}
	defer rows.Close()

	return r.scanPedidos(rows)
}

func (r *postgresPedidoRepository) scanPedidos(rows *sql.Rows) ([]domain.Pedido, error) {
	pedidos := []domain.Pedido{}
	for rows.Next() {
		var pedido domain.Pedido
		var cliente, observacao sql.NullString
		var dataConclusao sql.NullTime

		if err := rows.Scan(
			&pedido.ID,
			&pedido.Codigo,
			&cliente,
			&pedido.TipoPedido,
			&pedido.Status,
			&observacao,
			&pedido.DataCriacao,
			&dataConclusao,
			&pedido.ValorTotal,
		); err != nil {
			r.log.Errorf("Failed to scan pedido row: %v", err)
			return nil, fmt.Errorf("error scanning pedido: %w", err)
		}
		pedido.Cliente = stringPtr(cliente)
		pedido.Observacao = stringPtr(observacao)
		pedido.DataConclusao = timePtr(dataConclusao)
		pedidos = append(pedidos, pedido)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Error during pedidos iteration: %v", err)
		return nil, fmt.Errorf("error iterating pedidos: %w", err)
	}

	return pedidos, nil
}
