package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type StatusPedido string

const (
	StatusPreparando StatusPedido = "Preparando"
	StatusPronto     StatusPedido = "Pronto"
	StatusFinalizado StatusPedido = "Finalizado"
	StatusCancelado  StatusPedido = "Cancelado"
)

func IsValidStatus(status StatusPedido) bool {
	switch status {
	case StatusPreparando, StatusPronto, StatusFinalizado, StatusCancelado:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status admits no further edits.
func (s StatusPedido) Terminal() bool {
	return s == StatusFinalizado || s == StatusCancelado
}

type TipoPedido string

const (
	TipoEntrega     TipoPedido = "Entrega"
	TipoRestaurante TipoPedido = "Restaurante"
)

func IsValidTipo(tipo TipoPedido) bool {
	return tipo == TipoEntrega || tipo == TipoRestaurante
}

// GrupoStatus is the coarse split the counter screens work with:
// ABERTOS covers Preparando/Pronto, FECHADOS covers the terminal pair.
type GrupoStatus string

const (
	GrupoAbertos  GrupoStatus = "ABERTOS"
	GrupoFechados GrupoStatus = "FECHADOS"
)

func IsValidGrupo(grupo GrupoStatus) bool {
	return grupo == GrupoAbertos || grupo == GrupoFechados
}

// StatusDoGrupo expands a group into its member statuses.
func StatusDoGrupo(grupo GrupoStatus) []StatusPedido {
	if grupo == GrupoAbertos {
		return []StatusPedido{StatusPreparando, StatusPronto}
	}
	return []StatusPedido{StatusFinalizado, StatusCancelado}
}

// CodigoPedido formats the display code for an order from its numeric
// identifier, zero-padded to at least 4 digits ("Pedido #0007").
// The identifier comes from the storage sequence, so codes inherit its
// uniqueness and ordering.
func CodigoPedido(n int) string {
	return fmt.Sprintf("Pedido #%04d", n)
}

type Pedido struct {
	ID            int             `json:"id"`
	Codigo        string          `json:"codigo"`
	Cliente       *string         `json:"cliente,omitempty"`
	TipoPedido    TipoPedido      `json:"tipoPedido"`
	Status        StatusPedido    `json:"status"`
	Observacao    *string         `json:"observacao,omitempty"`
	DataCriacao   time.Time       `json:"dataCriacao"`
	DataConclusao *time.Time      `json:"dataConclusao,omitempty"`
	ValorTotal    decimal.Decimal `json:"valorTotal"`
	Itens         []ItemPedido    `json:"itens,omitempty"`
}

// ItemPedido is one line of a pedido. PrecoUnitario is the catalog
// price frozen at the moment the line was added; later catalog edits
// never touch it.
type ItemPedido struct {
	ID            int             `json:"id"`
	PedidoID      int             `json:"pedidoId"`
	ItemID        int             `json:"itemId"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"precoUnitario"`
	TotalItem     decimal.Decimal `json:"totalItem"`
}

// ItemPedidoDetalhe joins a line with the current catalog row so the
// UI can show today's price next to the frozen one.
type ItemPedidoDetalhe struct {
	ItemPedido
	NomeItem  string          `json:"nomeItem"`
	PrecoItem decimal.Decimal `json:"precoItem"`
	ItemAtivo bool            `json:"itemAtivo"`
}

type PedidoDetalhe struct {
	Pedido
	ItensDetalhe []ItemPedidoDetalhe `json:"itens"`
}

// Payloads bound by the delivery layer.
type ItemPedidoCreate struct {
	ItemID     int `json:"itemId"`
	Quantidade int `json:"quantidade"`
}

type PedidoCreate struct {
	Cliente    *string            `json:"cliente"`
	TipoPedido TipoPedido         `json:"tipoPedido"`
	Observacao *string            `json:"observacao"`
	Itens      []ItemPedidoCreate `json:"itens"`
}

type PedidoUpdate struct {
	Cliente    *string            `json:"cliente"`
	TipoPedido TipoPedido         `json:"tipoPedido"`
	Status     StatusPedido       `json:"status"`
	Observacao *string            `json:"observacao"`
	Itens      []ItemPedidoCreate `json:"itens"`
}

type PedidoRepository interface {
	// CreatePedido persists the header and all lines in one
	// transaction and fills in ID and Codigo from the sequence.
	CreatePedido(pedido *Pedido) (*Pedido, error)
	// UpdatePedido replaces the header fields and the whole line
	// collection in one transaction. Codigo and DataCriacao are
	// immutable.
	UpdatePedido(pedido *Pedido) (*Pedido, error)
	GetPedidoByID(id int) (*PedidoDetalhe, error)
	ListPedidosByStatus(statuses []StatusPedido) ([]Pedido, error)
	ListPedidosAbertosByTipo(tipo TipoPedido) ([]Pedido, error)
	SearchPedidos(termo string) ([]Pedido, error)
}
