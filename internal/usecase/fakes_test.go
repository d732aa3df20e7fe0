package usecase

import (
	"fmt"
	"io"
	"time"

	"crepe_controlador/internal/domain"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeItemRepo serves a fixed catalog keyed by item ID.
type fakeItemRepo struct {
	itens map[int]domain.Item
}

func (f *fakeItemRepo) CreateItem(item *domain.Item) (*domain.Item, error) {
	id := len(f.itens) + 1
	item.ID = id
	f.itens[id] = *item
	return item, nil
}

func (f *fakeItemRepo) GetItemByID(id int) (*domain.Item, error) {
	item, ok := f.itens[id]
	if !ok {
		return nil, fmt.Errorf("item with id %d %w", id, domain.ErrNotFound)
	}
	return &item, nil
}

func (f *fakeItemRepo) UpdateItem(item *domain.Item) (*domain.Item, error) {
	if _, ok := f.itens[item.ID]; !ok {
		return nil, fmt.Errorf("item with id %d %w", item.ID, domain.ErrNotFound)
	}
	f.itens[item.ID] = *item
	return item, nil
}

func (f *fakeItemRepo) ListItens() ([]domain.Item, error) {
	itens := []domain.Item{}
	for _, item := range f.itens {
		itens = append(itens, item)
	}
	return itens, nil
}

// fakePedidoRepo records calls and delegates to optional overrides.
type fakePedidoRepo struct {
	created      *domain.Pedido
	updated      *domain.Pedido
	getResult    *domain.PedidoDetalhe
	getErr       error
	listStatuses []domain.StatusPedido
	listResult   []domain.Pedido
	searchTermo  string
	searchResult []domain.Pedido
}

func (f *fakePedidoRepo) CreatePedido(pedido *domain.Pedido) (*domain.Pedido, error) {
	pedido.ID = 7
	pedido.Codigo = domain.CodigoPedido(pedido.ID)
	f.created = pedido
	return pedido, nil
}

func (f *fakePedidoRepo) UpdatePedido(pedido *domain.Pedido) (*domain.Pedido, error) {
	f.updated = pedido
	return pedido, nil
}

func (f *fakePedidoRepo) GetPedidoByID(id int) (*domain.PedidoDetalhe, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getResult == nil {
		return nil, fmt.Errorf("pedido with id %d %w", id, domain.ErrNotFound)
	}
	return f.getResult, nil
}

func (f *fakePedidoRepo) ListPedidosByStatus(statuses []domain.StatusPedido) ([]domain.Pedido, error) {
	f.listStatuses = statuses
	return f.listResult, nil
}

func (f *fakePedidoRepo) ListPedidosAbertosByTipo(tipo domain.TipoPedido) ([]domain.Pedido, error) {
	return f.listResult, nil
}

func (f *fakePedidoRepo) SearchPedidos(termo string) ([]domain.Pedido, error) {
	f.searchTermo = termo
	return f.searchResult, nil
}

// fakeDashboardRepo records the windows it was queried with.
type fakeDashboardRepo struct {
	inicio *time.Time
	fim    *time.Time
	called string
}

func (f *fakeDashboardRepo) HorariosPicoPorPeriodo(inicio, fim time.Time) ([]domain.HorarioPico, error) {
	f.called = "horarios-periodo"
	f.inicio, f.fim = &inicio, &fim
	return []domain.HorarioPico{}, nil
}

func (f *fakeDashboardRepo) HorariosPicoPorDiaSemana(diaSemana int, ano *int) ([]domain.HorarioPico, error) {
	f.called = "horarios-dia-semana"
	return []domain.HorarioPico{}, nil
}

func (f *fakeDashboardRepo) HorariosPicoPorMes(ano, mes int) ([]domain.HorarioPico, error) {
	f.called = "horarios-mes"
	return []domain.HorarioPico{}, nil
}

func (f *fakeDashboardRepo) PicosDiaSemana(inicio, fim time.Time) ([]domain.DiaSemanaPico, error) {
	f.called = "picos-dia-semana"
	return []domain.DiaSemanaPico{}, nil
}

func (f *fakeDashboardRepo) DistribuicaoDiaSemana(inicio, fim time.Time) ([]domain.DiaSemanaPico, error) {
	f.called = "distribuicao-dia-semana"
	return []domain.DiaSemanaPico{}, nil
}

func (f *fakeDashboardRepo) ResumoPeriodo(inicio, fim *time.Time) (*domain.ResumoPeriodo, error) {
	f.called = "resumo"
	f.inicio, f.fim = inicio, fim
	return &domain.ResumoPeriodo{}, nil
}

func (f *fakeDashboardRepo) ItensRanking(inicio, fim *time.Time) ([]domain.ItemRanking, error) {
	f.called = "itens-ranking"
	f.inicio, f.fim = inicio, fim
	return []domain.ItemRanking{}, nil
}

func (f *fakeDashboardRepo) TipoPedidoResumo(inicio, fim *time.Time) ([]domain.TipoPedidoResumo, error) {
	f.called = "tipo-pedido"
	f.inicio, f.fim = inicio, fim
	return []domain.TipoPedidoResumo{}, nil
}

func (f *fakeDashboardRepo) PeriodoTotal() (*domain.PeriodoTotal, error) {
	f.called = "periodo-total"
	return nil, nil
}
