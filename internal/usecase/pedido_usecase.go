package usecase

import (
	"fmt"
	"strings"
	"time"

	"crepe_controlador/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PedidoUseCase interface {
	CriarPedido(input *domain.PedidoCreate) (*domain.Pedido, error)
	AtualizarPedido(id int, input *domain.PedidoUpdate) (*domain.Pedido, error)
	ObterPedido(id int) (*domain.PedidoDetalhe, error)
	ListarPorGrupoStatus(grupo domain.GrupoStatus) ([]domain.Pedido, error)
	ListarAbertosPorTipo(tipo domain.TipoPedido) ([]domain.Pedido, error)
	PesquisarPedidos(termo string) ([]domain.Pedido, error)
}

var _ PedidoUseCase = (*pedidoUseCase)(nil)

type pedidoUseCase struct {
	pedidoRepo domain.PedidoRepository
	itemRepo   domain.ItemRepository
	log        *logrus.Logger
	now        func() time.Time
}

func NewPedidoUseCase(pedidoRepo domain.PedidoRepository, itemRepo domain.ItemRepository, logger *logrus.Logger) PedidoUseCase {
	return &pedidoUseCase{
		pedidoRepo: pedidoRepo,
		itemRepo:   itemRepo,
		log:        logger,
		now:        time.Now,
	}
}

func (uc *pedidoUseCase) CriarPedido(input *domain.PedidoCreate) (*domain.Pedido, error) {
	if !domain.IsValidTipo(input.TipoPedido) {
		uc.log.Warnf("Use Case: Invalid tipo de pedido '%s' on create", input.TipoPedido)
		return nil, fmt.Errorf("%w: invalid tipo de pedido: %s", domain.ErrInvalidArgument, input.TipoPedido)
	}

	itens, valorTotal, err := uc.montarItens(input.Itens)
	if err != nil {
		return nil, err
	}

	pedido := &domain.Pedido{
		Cliente:     input.Cliente,
		TipoPedido:  input.TipoPedido,
		Status:      domain.StatusPreparando,
		Observacao:  input.Observacao,
		DataCriacao: uc.now().UTC(),
		ValorTotal:  valorTotal,
		Itens:       itens,
	}

	uc.log.Infof("Use Case: Creating pedido (%s) with %d itens, total %s", pedido.TipoPedido, len(itens), valorTotal.String())
	created, err := uc.pedidoRepo.CreatePedido(pedido)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create pedido: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Pedido created successfully with ID %d (%s)", created.ID, created.Codigo)
	return created, nil
}

func (uc *pedidoUseCase) AtualizarPedido(id int, input *domain.PedidoUpdate) (*domain.Pedido, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid pedido ID", domain.ErrInvalidArgument)
	}
	if !domain.IsValidTipo(input.TipoPedido) {
		return nil, fmt.Errorf("%w: invalid tipo de pedido: %s", domain.ErrInvalidArgument, input.TipoPedido)
	}
	if !domain.IsValidStatus(input.Status) {
		return nil, fmt.Errorf("%w: invalid status: %s", domain.ErrInvalidArgument, input.Status)
	}

	atual, err := uc.pedidoRepo.GetPedidoByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Could not get pedido %d for update check: %v", id, err)
		return nil, err
	}

	// Terminal pedidos are frozen. This gate also guarantees
	// DataConclusao is stamped at most once: it is only nil here.
	if atual.Status.Terminal() {
		uc.log.Warnf("Use Case: Attempt to update pedido %d in terminal status '%s'", id, atual.Status)
		return nil, fmt.Errorf("%w: pedido can only be updated while Preparando or Pronto", domain.ErrPreconditionFailed)
	}

	itens, valorTotal, err := uc.montarItens(input.Itens)
	if err != nil {
		return nil, err
	}

	pedido := &domain.Pedido{
		ID:         id,
		Cliente:    input.Cliente,
		TipoPedido: input.TipoPedido,
		Status:     input.Status,
		Observacao: input.Observacao,
		ValorTotal: valorTotal,
		Itens:      itens,
	}
	if input.Status.Terminal() {
		conclusao := uc.now().UTC()
		pedido.DataConclusao = &conclusao
		uc.log.Infof("Use Case: Pedido %d transitioning to terminal status '%s' at %s", id, input.Status, conclusao.Format(time.RFC3339))
	}

	updated, err := uc.pedidoRepo.UpdatePedido(pedido)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update pedido %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Pedido %d updated successfully (status '%s', total %s)", updated.ID, updated.Status, updated.ValorTotal.String())
	return updated, nil
}

// montarItens resolves every referenced item, freezes its current price
// and accumulates the order total. Any unresolved item aborts the whole
// operation before persistence.
func (uc *pedidoUseCase) montarItens(inputs []domain.ItemPedidoCreate) ([]domain.ItemPedido, decimal.Decimal, error) {
	if len(inputs) == 0 {
		uc.log.Warn("Use Case: Pedido submitted without itens")
		return nil, decimal.Zero, fmt.Errorf("%w: pedido must contain at least one item", domain.ErrInvalidArgument)
	}

	itens := make([]domain.ItemPedido, 0, len(inputs))
	valorTotal := decimal.Zero

	for i, input := range inputs {
		if input.ItemID <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d: invalid item ID", domain.ErrInvalidArgument, i)
		}
		if input.Quantidade <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d (item %d): quantidade must be positive", domain.ErrInvalidArgument, i, input.ItemID)
		}

		item, err := uc.itemRepo.GetItemByID(input.ItemID)
		if err != nil {
			uc.log.Warnf("Use Case: Item lookup failed for ID %d: %v", input.ItemID, err)
			return nil, decimal.Zero, err
		}

		totalItem := item.Preco.Mul(decimal.NewFromInt(int64(input.Quantidade)))
		itens = append(itens, domain.ItemPedido{
			ItemID:        item.ID,
			Quantidade:    input.Quantidade,
			PrecoUnitario: item.Preco,
			TotalItem:     totalItem,
		})
		valorTotal = valorTotal.Add(totalItem)
	}

	return itens, valorTotal, nil
}

func (uc *pedidoUseCase) ObterPedido(id int) (*domain.PedidoDetalhe, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid pedido ID", domain.ErrInvalidArgument)
	}

	pedido, err := uc.pedidoRepo.GetPedidoByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get pedido ID %d: %v", id, err)
		return nil, err
	}

	return pedido, nil
}

func (uc *pedidoUseCase) ListarPorGrupoStatus(grupo domain.GrupoStatus) ([]domain.Pedido, error) {
	if !domain.IsValidGrupo(grupo) {
		uc.log.Warnf("Use Case: Invalid grupo de status '%s'", grupo)
		return nil, fmt.Errorf("%w: invalid grupo de status: %s", domain.ErrInvalidArgument, grupo)
	}

	pedidos, err := uc.pedidoRepo.ListPedidosByStatus(domain.StatusDoGrupo(grupo))
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list pedidos for grupo '%s': %v", grupo, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Retrieved %d pedidos for grupo '%s'", len(pedidos), grupo)
	return pedidos, nil
}

func (uc *pedidoUseCase) ListarAbertosPorTipo(tipo domain.TipoPedido) ([]domain.Pedido, error) {
	if !domain.IsValidTipo(tipo) {
		return nil, fmt.Errorf("%w: invalid tipo de pedido: %s", domain.ErrInvalidArgument, tipo)
	}

	pedidos, err := uc.pedidoRepo.ListPedidosAbertosByTipo(tipo)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list pedidos abertos for tipo '%s': %v", tipo, err)
		return nil, err
	}

	return pedidos, nil
}

func (uc *pedidoUseCase) PesquisarPedidos(termo string) ([]domain.Pedido, error) {
	if strings.TrimSpace(termo) == "" {
		uc.log.Warn("Use Case: Blank search termo")
		return nil, fmt.Errorf("%w: search termo cannot be blank", domain.ErrInvalidArgument)
	}

	pedidos, err := uc.pedidoRepo.SearchPedidos(strings.TrimSpace(termo))
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to search pedidos for termo '%s': %v", termo, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Search for '%s' returned %d pedidos", termo, len(pedidos))
	return pedidos, nil
}
