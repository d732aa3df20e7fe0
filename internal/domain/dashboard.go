package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dashboard rows. Periods are inclusive calendar-date windows evaluated
// in the configured civil timezone, not raw UTC instants.

type HorarioPico struct {
	Hora              int             `json:"hora"`
	QuantidadePedidos int             `json:"quantidadePedidos"`
	Faturamento       decimal.Decimal `json:"faturamento"`
}

type DiaSemanaPico struct {
	DiaSemana         int             `json:"diaSemana"`
	NomeDia           string          `json:"nomeDia"`
	Hora              int             `json:"hora"`
	QuantidadePedidos int             `json:"quantidadePedidos"`
	Faturamento       decimal.Decimal `json:"faturamento"`
}

type ResumoPeriodo struct {
	QtdePedidos         int             `json:"qtdePedidos"`
	FaturamentoTotal    decimal.Decimal `json:"faturamentoTotal"`
	TicketMedio         decimal.Decimal `json:"ticketMedio"`
	QtdeDiasPeriodo     int             `json:"qtdeDiasPeriodo"`
	MediaClientesPorDia decimal.Decimal `json:"mediaClientesPorDia"`
}

type ItemRanking struct {
	ItemID            int             `json:"itemId"`
	Nome              string          `json:"nome"`
	QuantidadeVendida int             `json:"quantidadeVendida"`
	Faturamento       decimal.Decimal `json:"faturamento"`
}

type TipoPedidoResumo struct {
	TipoPedido  TipoPedido      `json:"tipoPedido"`
	QtdePedidos int             `json:"qtdePedidos"`
	Faturamento decimal.Decimal `json:"faturamento"`
}

// PeriodoTotal bounds the "all time" filter: the first and last
// creation dates among Finalizado pedidos.
type PeriodoTotal struct {
	DataInicio time.Time `json:"dataInicio"`
	DataFim    time.Time `json:"dataFim"`
}

// NomeDiaSemana maps Postgres DOW numbering (Sunday = 0) to the
// display name used by the dashboard.
func NomeDiaSemana(dia int) string {
	nomes := []string{
		"Domingo",
		"Segunda-feira",
		"Terca-feira",
		"Quarta-feira",
		"Quinta-feira",
		"Sexta-feira",
		"Sabado",
	}
	if dia < 0 || dia >= len(nomes) {
		return ""
	}
	return nomes[dia]
}

// DashboardRepository assumes inicio <= fim when both bounds are set;
// the delivery layer rejects inverted windows before calling in.
type DashboardRepository interface {
	HorariosPicoPorPeriodo(inicio, fim time.Time) ([]HorarioPico, error)
	HorariosPicoPorDiaSemana(diaSemana int, ano *int) ([]HorarioPico, error)
	HorariosPicoPorMes(ano, mes int) ([]HorarioPico, error)
	PicosDiaSemana(inicio, fim time.Time) ([]DiaSemanaPico, error)
	DistribuicaoDiaSemana(inicio, fim time.Time) ([]DiaSemanaPico, error)
	ResumoPeriodo(inicio, fim *time.Time) (*ResumoPeriodo, error)
	ItensRanking(inicio, fim *time.Time) ([]ItemRanking, error)
	TipoPedidoResumo(inicio, fim *time.Time) ([]TipoPedidoResumo, error)
	PeriodoTotal() (*PeriodoTotal, error)
}
