package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"crepe_controlador/internal/domain"

	"github.com/sirupsen/logrus"
)

type ItemUseCase interface {
	CriarItem(item *domain.Item) (*domain.Item, error)
	AtualizarItem(id int, item *domain.Item) (*domain.Item, error)
	ObterItem(id int) (*domain.Item, error)
	ListarItens() ([]domain.Item, error)
}

var _ ItemUseCase = (*itemUseCase)(nil)

type itemUseCase struct {
	itemRepo domain.ItemRepository
	log      *logrus.Logger
}

func NewItemUseCase(itemRepo domain.ItemRepository, logger *logrus.Logger) ItemUseCase {
	return &itemUseCase{
		itemRepo: itemRepo,
		log:      logger,
	}
}

func (uc *itemUseCase) validarItem(item *domain.Item) error {
	nome := strings.TrimSpace(item.Nome)
	if nome == "" {
		uc.log.Warn("Use Case: Attempted to save item with empty nome")
		return fmt.Errorf("%w: item nome cannot be empty", domain.ErrInvalidArgument)
	}
	// Rune count, not bytes: accented nomes must not burn two slots.
	if utf8.RuneCountInString(nome) > domain.ItemNomeMaxLen {
		uc.log.Warnf("Use Case: Item nome exceeds %d characters", domain.ItemNomeMaxLen)
		return fmt.Errorf("%w: item nome cannot exceed %d characters", domain.ErrInvalidArgument, domain.ItemNomeMaxLen)
	}
	if !item.Preco.IsPositive() {
		uc.log.Warnf("Use Case: Attempted to save item '%s' with non-positive preco: %s", nome, item.Preco.String())
		return fmt.Errorf("%w: item preco must be positive", domain.ErrInvalidArgument)
	}
	item.Nome = nome
	return nil
}

func (uc *itemUseCase) CriarItem(item *domain.Item) (*domain.Item, error) {
	if err := uc.validarItem(item); err != nil {
		return nil, err
	}

	created, err := uc.itemRepo.CreateItem(item)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create item '%s': %v", item.Nome, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Item '%s' created successfully with ID %d", created.Nome, created.ID)
	return created, nil
}

func (uc *itemUseCase) AtualizarItem(id int, item *domain.Item) (*domain.Item, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid item ID", domain.ErrInvalidArgument)
	}
	if err := uc.validarItem(item); err != nil {
		return nil, err
	}

	item.ID = id
	updated, err := uc.itemRepo.UpdateItem(item)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update item ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Item %d updated successfully", updated.ID)
	return updated, nil
}

func (uc *itemUseCase) ObterItem(id int) (*domain.Item, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid item ID", domain.ErrInvalidArgument)
	}

	item, err := uc.itemRepo.GetItemByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get item ID %d: %v", id, err)
		return nil, err
	}

	return item, nil
}

func (uc *itemUseCase) ListarItens() ([]domain.Item, error) {
	itens, err := uc.itemRepo.ListItens()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list itens: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Retrieved %d itens", len(itens))
	return itens, nil
}
