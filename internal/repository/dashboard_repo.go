package repository

import (
	"database/sql"
	"fmt"
	"time"

	"crepe_controlador/internal/domain"

	"github.com/sirupsen/logrus"
)

// postgresDashboardRepository shapes aggregate rows for the dashboard.
// All hour/day grouping happens in the configured civil timezone: the
// stored timestamptz is shifted with AT TIME ZONE before EXTRACT, so
// day boundaries follow the counter's local calendar.
type postgresDashboardRepository struct {
	db       *sql.DB
	timeZone string
	log      *logrus.Logger
}

func NewPostgresDashboardRepository(db *sql.DB, timeZone string, logger *logrus.Logger) domain.DashboardRepository {
	return &postgresDashboardRepository{
		db:       db,
		timeZone: timeZone,
		log:      logger,
	}
}

func (r *postgresDashboardRepository) HorariosPicoPorPeriodo(inicio, fim time.Time) ([]domain.HorarioPico, error) {
	query := `
        SELECT EXTRACT(HOUR FROM p.data_criacao AT TIME ZONE $3)::int AS hora,
               COUNT(*)::int AS quantidade_pedidos,
               COALESCE(SUM(p.valor_total), 0) AS faturamento
        FROM pedidos p
        WHERE (p.data_criacao AT TIME ZONE $3)::date BETWEEN $1::date AND $2::date
        GROUP BY hora
        ORDER BY hora
    `
	rows, err := r.db.Query(query, inicio, fim, r.timeZone)
	if err != nil {
		r.log.Errorf("Failed to query horarios de pico for periodo [%s, %s]: %v", inicio.Format("2006-01-02"), fim.Format("2006-01-02"), err)
		return nil, fmt.Errorf("could not retrieve horarios de pico: %w", err)
	}
	defer rows.Close()

	return r.scanHorarios(rows)
}

func (r *postgresDashboardRepository) HorariosPicoPorDiaSemana(diaSemana int, ano *int) ([]domain.HorarioPico, error) {
	query := `
        SELECT EXTRACT(HOUR FROM p.data_criacao AT TIME ZONE $3)::int AS hora,
               COUNT(*)::int AS quantidade_pedidos,
               COALESCE(SUM(p.valor_total), 0) AS faturamento
        FROM pedidos p
        WHERE EXTRACT(DOW FROM p.data_criacao AT TIME ZONE $3)::int = $1
          AND ($2::int IS NULL OR EXTRACT(YEAR FROM p.data_criacao AT TIME ZONE $3)::int = $2)
        GROUP BY hora
        ORDER BY hora
    `
	var anoParam sql.NullInt64
	if ano != nil {
		anoParam = sql.NullInt64{Int64: int64(*ano), Valid: true}
	}

	rows, err := r.db.Query(query, diaSemana, anoParam, r.timeZone)
	if err != nil {
		r.log.Errorf("Failed to query horarios de pico for dia da semana %d: %v", diaSemana, err)
		return nil, fmt.Errorf("could not retrieve horarios de pico: %w", err)
	}
	defer rows.Close()

	return r.scanHorarios(rows)
}

func (r *postgresDashboardRepository) HorariosPicoPorMes(ano, mes int) ([]domain.HorarioPico, error) {
	query := `
        SELECT EXTRACT(HOUR FROM p.data_criacao AT TIME ZONE $3)::int AS hora,
               COUNT(*)::int AS quantidade_pedidos,
               COALESCE(SUM(p.valor_total), 0) AS faturamento
        FROM pedidos p
        WHERE EXTRACT(YEAR FROM p.data_criacao AT TIME ZONE $3)::int = $1
          AND EXTRACT(MONTH FROM p.data_criacao AT TIME ZONE $3)::int = $2
        GROUP BY hora
        ORDER BY hora
    `
	rows, err := r.db.Query(query, ano, mes, r.timeZone)
	if err != nil {
		r.log.Errorf("Failed to query horarios de pico for %04d-%02d: %v", ano, mes, err)
		return nil, fmt.Errorf("could not retrieve horarios de pico: %w", err)
	}
	defer rows.Close()

	return r.scanHorarios(rows)
}

func (r *postgresDashboardRepository) scanHorarios(rows *sql.Rows) ([]domain.HorarioPico, error) {
	horarios := []domain.HorarioPico{}
	for rows.Next() {
		var h domain.HorarioPico
		if err := rows.Scan(&h.Hora, &h.QuantidadePedidos, &h.Faturamento); err != nil {
			r.log.Errorf("Failed to scan horario de pico row: %v", err)
			return nil, fmt.Errorf("error scanning horario de pico: %w", err)
		}
		horarios = append(horarios, h)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Error during horarios iteration: %v", err)
		return nil, fmt.Errorf("error iterating horarios: %w", err)
	}
	return horarios, nil
}

func (r *postgresDashboardRepository) PicosDiaSemana(inicio, fim time.Time) ([]domain.DiaSemanaPico, error) {
	// Busiest combinations first within each weekday.
	return r.queryDiaSemana(inicio, fim, "ORDER BY dia_semana, quantidade_pedidos DESC, hora")
}

func (r *postgresDashboardRepository) DistribuicaoDiaSemana(inicio, fim time.Time) ([]domain.DiaSemanaPico, error) {
	return r.queryDiaSemana(inicio, fim, "ORDER BY dia_semana, hora")
}

func (r *postgresDashboardRepository) queryDiaSemana(inicio, fim time.Time, orderBy string) ([]domain.DiaSemanaPico, error) {
	query := `
        SELECT EXTRACT(DOW FROM p.data_criacao AT TIME ZONE $3)::int AS dia_semana,
               EXTRACT(HOUR FROM p.data_criacao AT TIME ZONE $3)::int AS hora,
               COUNT(*)::int AS quantidade_pedidos,
               COALESCE(SUM(p.valor_total), 0) AS faturamento
        FROM pedidos p
        WHERE (p.data_criacao AT TIME ZONE $3)::date BETWEEN $1::date AND $2::date
        GROUP BY dia_semana, hora
        ` + orderBy

	rows, err := r.db.Query(query, inicio, fim, r.timeZone)
	if err != nil {
		r.log.Errorf("Failed to query picos por dia da semana for periodo [%s, %s]: %v", inicio.Format("2006-01-02"), fim.Format("2006-01-02"), err)
		return nil, fmt.Errorf("could not retrieve picos por dia da semana: %w", err)
	}
	defer rows.Close()

	picos := []domain.DiaSemanaPico{}
	for rows.Next() {
		var p domain.DiaSemanaPico
		if err := rows.Scan(&p.DiaSemana, &p.Hora, &p.QuantidadePedidos, &p.Faturamento); err != nil {
			r.log.Errorf("Failed to scan dia da semana row: %v", err)
			return nil, fmt.Errorf("error scanning dia da semana: %w", err)
		}
		p.NomeDia = domain.NomeDiaSemana(p.DiaSemana)
		picos = append(picos, p)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Error during dia da semana iteration: %v", err)
		return nil, fmt.Errorf("error iterating dia da semana: %w", err)
	}

	return picos, nil
}

func (r *postgresDashboardRepository) ResumoPeriodo(inicio, fim *time.Time) (*domain.ResumoPeriodo, error) {
	query := `
        SELECT COUNT(*)::int AS qtde_pedidos,
               COALESCE(SUM(p.valor_total), 0) AS faturamento_total,
               COALESCE(AVG(p.valor_total), 0) AS ticket_medio,
               COUNT(DISTINCT (p.data_criacao AT TIME ZONE $3)::date)::int AS qtde_dias,
               CASE WHEN COUNT(DISTINCT (p.data_criacao AT TIME ZONE $3)::date) > 0
                    THEN COUNT(*)::numeric / COUNT(DISTINCT (p.data_criacao AT TIME ZONE $3)::date)
                    ELSE 0
               END AS media_clientes_por_dia
        FROM pedidos p
        WHERE ($1::date IS NULL OR (p.data_criacao AT TIME ZONE $3)::date >= $1::date)
          AND ($2::date IS NULL OR (p.data_criacao AT TIME ZONE $3)::date <= $2::date)
    `
	resumo := &domain.ResumoPeriodo{}
	err := r.db.QueryRow(query, nullTime(inicio), nullTime(fim), r.timeZone).Scan(
		&resumo.QtdePedidos,
		&resumo.FaturamentoTotal,
		&resumo.TicketMedio,
		&resumo.QtdeDiasPeriodo,
		&resumo.MediaClientesPorDia,
	)
	if err != nil {
		r.log.Errorf("Failed to query resumo do periodo: %v", err)
		return nil, fmt.Errorf("could not retrieve resumo do periodo: %w", err)
	}

	return resumo, nil
}

func (r *postgresDashboardRepository) ItensRanking(inicio, fim *time.Time) ([]domain.ItemRanking, error) {
	query := `
        SELECT i.id, i.nome,
               COALESCE(SUM(ip.quantidade), 0)::int AS quantidade_vendida,
               COALESCE(SUM(ip.total_item), 0) AS faturamento
        FROM itens_pedido ip
        JOIN itens i ON i.id = ip.item_id
        JOIN pedidos p ON p.id = ip.pedido_id
        WHERE ($1::date IS NULL OR (p.data_criacao AT TIME ZONE $3)::date >= $1::date)
          AND ($2::date IS NULL OR (p.data_criacao AT TIME ZONE $3)::date <= $2::date)
        GROUP BY i.id, i.nome
        ORDER BY quantidade_vendida DESC, i.nome
    `
	rows, err := r.db.Query(query, nullTime(inicio), nullTime(fim), r.timeZone)
	if err != nil {
		r.log.Errorf("Failed to query itens ranking: %v", err)
		return nil, fmt.Errorf("could not retrieve itens ranking: %w", err)
	}
	defer rows.Close()

	ranking := []domain.ItemRanking{}
	for rows.Next() {
		var item domain.ItemRanking
		if err := rows.Scan(&item.ItemID, &item.Nome, &item.QuantidadeVendida, &item.Faturamento); err != nil {
			r.log.Errorf("Failed to scan item ranking row: %v", err)
			return nil, fmt.Errorf("error scanning item ranking: %w", err)
		}
		ranking = append(ranking, item)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during itens ranking iteration: %v", err)
		return nil, fmt.Errorf("error iterating itens ranking: %w", err)
	}

	return ranking, nil
}

func (r *postgresDashboardRepository) TipoPedidoResumo(inicio, fim *time.Time) ([]domain.TipoPedidoResumo, error) {
	query := `
        SELECT p.tipo_pedido,
               COUNT(*)::int AS qtde_pedidos,
               COALESCE(SUM(p.valor_total), 0) AS faturamento
        FROM pedidos p
        WHERE ($1::date IS NULL OR (p.data_criacao AT TIME ZONE $3)::date >= $1::date)
          AND ($2::date IS NULL OR (p.data_criacao AT TIME ZONE $3)::date <= $2::date)
        GROUP BY p.tipo_pedido
        ORDER BY p.tipo_pedido
    `
	rows, err := r.db.Query(query, nullTime(inicio), nullTime(fim), r.timeZone)
	if err != nil {
		r.log.Errorf("Failed to query resumo por tipo de pedido: %v", err)
		return nil, fmt.Errorf("could not retrieve resumo por tipo de pedido: %w", err)
	}
	defer rows.Close()

	resumos := []domain.TipoPedidoResumo{}
	for rows.Next() {
		var t domain.TipoPedidoResumo
		if err := rows.Scan(&t.TipoPedido, &t.QtdePedidos, &t.Faturamento); err != nil {
			r.log.Errorf("Failed to scan tipo de pedido row: %v", err)
			return nil, fmt.Errorf("error scanning tipo de pedido: %w", err)
		}
		resumos = append(resumos, t)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during tipo de pedido iteration: %v", err)
		return nil, fmt.Errorf("error iterating tipo de pedido: %w", err)
	}

	return resumos, nil
}

func (r *postgresDashboardRepository) PeriodoTotal() (*domain.PeriodoTotal, error) {
	query := `
        SELECT MIN((p.data_criacao AT TIME ZONE $1)::date) AS data_inicio,
               MAX((p.data_criacao AT TIME ZONE $1)::date) AS data_fim
        FROM pedidos p
        WHERE p.status = $2
    `
	var inicio, fim sql.NullTime
	err := r.db.QueryRow(query, r.timeZone, domain.StatusFinalizado).Scan(&inicio, &fim)
	if err != nil {
		r.log.Errorf("Failed to query periodo total: %v", err)
		return nil, fmt.Errorf("could not retrieve periodo total: %w", err)
	}

	if !inicio.Valid || !fim.Valid {
		r.log.Debug("No finalized pedidos yet, periodo total is empty")
		return nil, nil
	}

	return &domain.PeriodoTotal{
		DataInicio: inicio.Time,
		DataFim:    fim.Time,
	}, nil
}
