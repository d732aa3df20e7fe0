package domain

import "github.com/shopspring/decimal"

const ItemNomeMaxLen = 150

type Item struct {
	ID    int             `json:"id"`
	Nome  string          `json:"nome"`
	Preco decimal.Decimal `json:"preco"`
	Ativo bool            `json:"ativo"`
}

// Itens are never hard-deleted: deactivation keeps historical order
// lines pointing at a valid catalog row.
type ItemRepository interface {
	CreateItem(item *Item) (*Item, error)
	GetItemByID(id int) (*Item, error)
	UpdateItem(item *Item) (*Item, error)
	ListItens() ([]Item, error)
}
