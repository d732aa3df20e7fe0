package usecase

import (
	"errors"
	"testing"
	"time"

	"crepe_controlador/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() *fakeItemRepo {
	return &fakeItemRepo{itens: map[int]domain.Item{
		1: {ID: 1, Nome: "Crepe de Frango", Preco: dec("10.50"), Ativo: true},
		2: {ID: 2, Nome: "Crepe de Chocolate", Preco: dec("3.25"), Ativo: true},
	}}
}

func newPedidoUseCaseForTest(pedidoRepo *fakePedidoRepo, itemRepo *fakeItemRepo, now time.Time) *pedidoUseCase {
	return &pedidoUseCase{
		pedidoRepo: pedidoRepo,
		itemRepo:   itemRepo,
		log:        testLogger(),
		now:        func() time.Time { return now },
	}
}

func TestCriarPedido_ComputesTotalsFromSnapshots(t *testing.T) {
	pedidoRepo := &fakePedidoRepo{}
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), now)

	pedido, err := uc.CriarPedido(&domain.PedidoCreate{
		TipoPedido: domain.TipoEntrega,
		Itens: []domain.ItemPedidoCreate{
			{ItemID: 1, Quantidade: 2},
			{ItemID: 2, Quantidade: 3},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, pedidoRepo.created)
	require.Len(t, pedido.Itens, 2)

	assert.True(t, pedido.Itens[0].PrecoUnitario.Equal(dec("10.50")))
	assert.True(t, pedido.Itens[0].TotalItem.Equal(dec("21.00")))
	assert.True(t, pedido.Itens[1].PrecoUnitario.Equal(dec("3.25")))
	assert.True(t, pedido.Itens[1].TotalItem.Equal(dec("9.75")))
	assert.True(t, pedido.ValorTotal.Equal(dec("30.75")), "total must equal the sum of line totals, got %s", pedido.ValorTotal)

	assert.Equal(t, domain.StatusPreparando, pedido.Status)
	assert.Equal(t, now, pedido.DataCriacao)
	assert.Nil(t, pedido.DataConclusao)
	assert.Equal(t, "Pedido #0007", pedido.Codigo)
}

func TestCriarPedido_EmptyItens(t *testing.T) {
	pedidoRepo := &fakePedidoRepo{}
	uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), time.Now())

	_, err := uc.CriarPedido(&domain.PedidoCreate{
		TipoPedido: domain.TipoRestaurante,
		Itens:      []domain.ItemPedidoCreate{},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Nil(t, pedidoRepo.created, "nothing may be persisted on validation failure")
}

func TestCriarPedido_UnknownItemAbortsWholeOperation(t *testing.T) {
	pedidoRepo := &fakePedidoRepo{}
	uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), time.Now())

	// First line resolves fine; the second one does not.
	_, err := uc.CriarPedido(&domain.PedidoCreate{
		TipoPedido: domain.TipoEntrega,
		Itens: []domain.ItemPedidoCreate{
			{ItemID: 1, Quantidade: 1},
			{ItemID: 99, Quantidade: 1},
		},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Nil(t, pedidoRepo.created, "no partial pedido may be persisted")
}

func TestCriarPedido_InvalidTipo(t *testing.T) {
	uc := newPedidoUseCaseForTest(&fakePedidoRepo{}, testCatalog(), time.Now())

	_, err := uc.CriarPedido(&domain.PedidoCreate{
		TipoPedido: "Viagem",
		Itens:      []domain.ItemPedidoCreate{{ItemID: 1, Quantidade: 1}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestCriarPedido_NonPositiveQuantidade(t *testing.T) {
	uc := newPedidoUseCaseForTest(&fakePedidoRepo{}, testCatalog(), time.Now())

	for _, quantidade := range []int{0, -1} {
		_, err := uc.CriarPedido(&domain.PedidoCreate{
			TipoPedido: domain.TipoEntrega,
			Itens:      []domain.ItemPedidoCreate{{ItemID: 1, Quantidade: quantidade}},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	}
}

func TestCriarPedido_SnapshotImmuneToLaterPriceChange(t *testing.T) {
	pedidoRepo := &fakePedidoRepo{}
	catalog := testCatalog()
	uc := newPedidoUseCaseForTest(pedidoRepo, catalog, time.Now())

	pedido, err := uc.CriarPedido(&domain.PedidoCreate{
		TipoPedido: domain.TipoEntrega,
		Itens:      []domain.ItemPedidoCreate{{ItemID: 1, Quantidade: 1}},
	})
	require.NoError(t, err)

	item := catalog.itens[1]
	item.Preco = dec("99.99")
	catalog.itens[1] = item

	assert.True(t, pedido.Itens[0].PrecoUnitario.Equal(dec("10.50")))
	assert.True(t, pedido.ValorTotal.Equal(dec("10.50")))
}

func abertoDetalhe(status domain.StatusPedido) *domain.PedidoDetalhe {
	return &domain.PedidoDetalhe{
		Pedido: domain.Pedido{
			ID:          3,
			Codigo:      domain.CodigoPedido(3),
			TipoPedido:  domain.TipoRestaurante,
			Status:      status,
			DataCriacao: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			ValorTotal:  dec("10.50"),
		},
	}
}

func TestAtualizarPedido_TerminalStatusRejected(t *testing.T) {
	for _, status := range []domain.StatusPedido{domain.StatusFinalizado, domain.StatusCancelado} {
		pedidoRepo := &fakePedidoRepo{getResult: abertoDetalhe(status)}
		uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), time.Now())

		_, err := uc.AtualizarPedido(3, &domain.PedidoUpdate{
			TipoPedido: domain.TipoRestaurante,
			Status:     domain.StatusPreparando,
			Itens:      []domain.ItemPedidoCreate{{ItemID: 1, Quantidade: 1}},
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrPreconditionFailed), "status %s must freeze the pedido", status)
		assert.Nil(t, pedidoRepo.updated)
	}
}

func TestAtualizarPedido_StampsDataConclusaoOnTerminalTransition(t *testing.T) {
	now := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)

	for _, status := range []domain.StatusPedido{domain.StatusFinalizado, domain.StatusCancelado} {
		pedidoRepo := &fakePedidoRepo{getResult: abertoDetalhe(domain.StatusPronto)}
		uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), now)

		pedido, err := uc.AtualizarPedido(3, &domain.PedidoUpdate{
			TipoPedido: domain.TipoRestaurante,
			Status:     status,
			Itens:      []domain.ItemPedidoCreate{{ItemID: 1, Quantidade: 1}},
		})

		require.NoError(t, err)
		require.NotNil(t, pedido.DataConclusao)
		assert.Equal(t, now, *pedido.DataConclusao)
		assert.False(t, pedido.DataConclusao.Before(pedidoRepo.getResult.DataCriacao))
	}
}

func TestAtualizarPedido_NonTerminalTransitionLeavesConclusaoNil(t *testing.T) {
	pedidoRepo := &fakePedidoRepo{getResult: abertoDetalhe(domain.StatusPronto)}
	uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), time.Now())

	// Backward transitions among non-terminal statuses stay allowed.
	pedido, err := uc.AtualizarPedido(3, &domain.PedidoUpdate{
		TipoPedido: domain.TipoRestaurante,
		Status:     domain.StatusPreparando,
		Itens:      []domain.ItemPedidoCreate{{ItemID: 1, Quantidade: 1}},
	})

	require.NoError(t, err)
	assert.Nil(t, pedido.DataConclusao)
}

func TestAtualizarPedido_ReplacesItensAndRecomputesTotal(t *testing.T) {
	pedidoRepo := &fakePedidoRepo{getResult: abertoDetalhe(domain.StatusPreparando)}
	uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), time.Now())

	pedido, err := uc.AtualizarPedido(3, &domain.PedidoUpdate{
		TipoPedido: domain.TipoEntrega,
		Status:     domain.StatusPronto,
		Itens: []domain.ItemPedidoCreate{
			{ItemID: 2, Quantidade: 4},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, pedidoRepo.updated)
	require.Len(t, pedido.Itens, 1)
	assert.Equal(t, 2, pedido.Itens[0].ItemID)
	assert.True(t, pedido.ValorTotal.Equal(dec("13.00")))
	assert.Equal(t, domain.TipoEntrega, pedido.TipoPedido)
}

func TestAtualizarPedido_EmptyItens(t *testing.T) {
	pedidoRepo := &fakePedidoRepo{getResult: abertoDetalhe(domain.StatusPreparando)}
	uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), time.Now())

	_, err := uc.AtualizarPedido(3, &domain.PedidoUpdate{
		TipoPedido: domain.TipoEntrega,
		Status:     domain.StatusPronto,
		Itens:      []domain.ItemPedidoCreate{},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Nil(t, pedidoRepo.updated)
}

func TestAtualizarPedido_NotFound(t *testing.T) {
	pedidoRepo := &fakePedidoRepo{}
	uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), time.Now())

	_, err := uc.AtualizarPedido(99, &domain.PedidoUpdate{
		TipoPedido: domain.TipoEntrega,
		Status:     domain.StatusPronto,
		Itens:      []domain.ItemPedidoCreate{{ItemID: 1, Quantidade: 1}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListarPorGrupoStatus_Mapping(t *testing.T) {
	pedidoRepo := &fakePedidoRepo{listResult: []domain.Pedido{}}
	uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), time.Now())

	_, err := uc.ListarPorGrupoStatus(domain.GrupoAbertos)
	require.NoError(t, err)
	assert.Equal(t, []domain.StatusPedido{domain.StatusPreparando, domain.StatusPronto}, pedidoRepo.listStatuses)

	_, err = uc.ListarPorGrupoStatus(domain.GrupoFechados)
	require.NoError(t, err)
	assert.Equal(t, []domain.StatusPedido{domain.StatusFinalizado, domain.StatusCancelado}, pedidoRepo.listStatuses)
}

func TestListarPorGrupoStatus_InvalidGrupo(t *testing.T) {
	uc := newPedidoUseCaseForTest(&fakePedidoRepo{}, testCatalog(), time.Now())

	_, err := uc.ListarPorGrupoStatus("TODOS")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestPesquisarPedidos_BlankTermo(t *testing.T) {
	uc := newPedidoUseCaseForTest(&fakePedidoRepo{}, testCatalog(), time.Now())

	for _, termo := range []string{"", "   "} {
		_, err := uc.PesquisarPedidos(termo)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	}
}

func TestPesquisarPedidos_TrimsTermo(t *testing.T) {
	pedidoRepo := &fakePedidoRepo{searchResult: []domain.Pedido{}}
	uc := newPedidoUseCaseForTest(pedidoRepo, testCatalog(), time.Now())

	_, err := uc.PesquisarPedidos("  Pedido #0001  ")
	require.NoError(t, err)
	assert.Equal(t, "Pedido #0001", pedidoRepo.searchTermo)
}
