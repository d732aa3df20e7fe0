package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"crepe_controlador/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus_DomainKinds(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, mapErrorToStatus(domain.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, mapErrorToStatus(domain.ErrInvalidArgument))
	assert.Equal(t, http.StatusConflict, mapErrorToStatus(domain.ErrPreconditionFailed))
}

func TestMapErrorToStatus_WrappedDomainKinds(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, mapErrorToStatus(fmt.Errorf("pedido with id 9 %w", domain.ErrNotFound)))
	assert.Equal(t, http.StatusBadRequest, mapErrorToStatus(fmt.Errorf("%w: pedido must contain at least one item", domain.ErrInvalidArgument)))
	assert.Equal(t, http.StatusConflict, mapErrorToStatus(fmt.Errorf("%w: pedido can only be updated while Preparando or Pronto", domain.ErrPreconditionFailed)))
}

func TestMapErrorToStatus_Infrastructure(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, mapErrorToStatus(errors.New("connection refused")))
	assert.Equal(t, http.StatusConflict, mapErrorToStatus(errors.New(`pq: duplicate key value violates unique constraint "pedidos_codigo_key"`)))
}
