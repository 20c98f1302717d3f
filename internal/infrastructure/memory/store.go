// Package memory implementa los puertos de persistencia sobre mapas en memoria.
// Se usa con STORE_DRIVER=memory (demo/local) y en las pruebas de casos de uso.
//
// Los registros se guardan por valor: lo que entra y lo que sale son copias, de modo
// que los llamadores nunca comparten estado con el almacén.
package memory

import (
	"sync"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

type state struct {
	companies    map[string]entity.Company
	users        map[string]entity.User
	products     map[string]entity.Product
	movements    []entity.StockMovement
	transactions map[string]entity.Transaction
	events       map[string]entity.Event
	employees    map[string]entity.Employee
	tasks        map[string]entity.Task
	invitations  map[string]entity.Invitation
	blocks       map[string]entity.BlockedDate
}

func newState() state {
	return state{
		companies:    make(map[string]entity.Company),
		users:        make(map[string]entity.User),
		products:     make(map[string]entity.Product),
		movements:    make([]entity.StockMovement, 0),
		transactions: make(map[string]entity.Transaction),
		events:       make(map[string]entity.Event),
		employees:    make(map[string]entity.Employee),
		tasks:        make(map[string]entity.Task),
		invitations:  make(map[string]entity.Invitation),
		blocks:       make(map[string]entity.BlockedDate),
	}
}

// clone copia los mapas. Los slices internos de cada registro no se modifican en sitio
// (Update reemplaza el registro completo), así que pueden compartirse con la copia.
func (s state) clone() state {
	return state{
		companies:    cloneMap(s.companies),
		users:        cloneMap(s.users),
		products:     cloneMap(s.products),
		movements:    append([]entity.StockMovement(nil), s.movements...),
		transactions: cloneMap(s.transactions),
		events:       cloneMap(s.events),
		employees:    cloneMap(s.employees),
		tasks:        cloneMap(s.tasks),
		invitations:  cloneMap(s.invitations),
		blocks:       cloneMap(s.blocks),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store almacén compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex
	state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// view da acceso al almacén. held indica que el llamador ya tiene el lock exclusivo
// (repos atados a una transacción del TxRunner).
type view struct {
	s    *Store
	held bool
}

func (v view) read() func() {
	if v.held {
		return func() {}
	}
	v.s.mu.RLock()
	return v.s.mu.RUnlock
}

func (v view) write() func() {
	if v.held {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}
