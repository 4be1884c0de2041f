// Package memory implementa todos os repositórios sobre um estado em memória com
// transações por cópia: cada Run trabalha sobre um clone do estado, que só substitui
// o original quando fn termina sem erro. Serve ao modo demonstração (STORAGE_DRIVER=memory)
// e aos testes dos casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

type state struct {
	shipments map[int64]entity.Shipment
	costs     map[int64]entity.CostEntry
	farms     map[int64]entity.Farm
	drivers   map[int64]entity.Driver
	vehicles  map[int64]entity.Vehicle
	payments  map[int64]entity.Payment
	users     map[int64]entity.User
	seq       map[string]int64
}

func newState() *state {
	return &state{
		shipments: map[int64]entity.Shipment{},
		costs:     map[int64]entity.CostEntry{},
		farms:     map[int64]entity.Farm{},
		drivers:   map[int64]entity.Driver{},
		vehicles:  map[int64]entity.Vehicle{},
		payments:  map[int64]entity.Payment{},
		users:     map[int64]entity.User{},
		seq:       map[string]int64{},
	}
}

// clone copia os mapas; campos ponteiro das entidades são compartilhados e nunca
// alterados no lugar (sempre substituídos).
func (st *state) clone() *state {
	out := &state{
		shipments: make(map[int64]entity.Shipment, len(st.shipments)),
		costs:     make(map[int64]entity.CostEntry, len(st.costs)),
		farms:     make(map[int64]entity.Farm, len(st.farms)),
		drivers:   make(map[int64]entity.Driver, len(st.drivers)),
		vehicles:  make(map[int64]entity.Vehicle, len(st.vehicles)),
		payments:  make(map[int64]entity.Payment, len(st.payments)),
		users:     make(map[int64]entity.User, len(st.users)),
		seq:       make(map[string]int64, len(st.seq)),
	}
	for k, v := range st.shipments {
		out.shipments[k] = v
	}
	for k, v := range st.costs {
		out.costs[k] = v
	}
	for k, v := range st.farms {
		out.farms[k] = v
	}
	for k, v := range st.drivers {
		out.drivers[k] = v
	}
	for k, v := range st.vehicles {
		out.vehicles[k] = v
	}
	for k, v := range st.payments {
		out.payments[k] = v
	}
	for k, v := range st.users {
		out.users[k] = v
	}
	for k, v := range st.seq {
		out.seq[k] = v
	}
	return out
}

// nextID simula BIGSERIAL: ids consumidos não voltam mesmo após rollback.
func (st *state) nextID(table string) int64 {
	st.seq[table]++
	return st.seq[table]
}

// accessor separa o acesso autocommit (com lock) do acesso dentro de Run (sem lock).
type accessor interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

type autoCommit struct{ s *Store }

func (a autoCommit) read(fn func(st *state) error) error {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return fn(a.s.st)
}

func (a autoCommit) write(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	next := a.s.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	a.s.st = next
	return nil
}

type inTx struct{ st *state }

func (t inTx) read(fn func(st *state) error) error  { return fn(t.st) }
func (t inTx) write(fn func(st *state) error) error { return fn(t.st) }

// Store guarda o estado e serializa as transações.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

// New cria um Store vazio.
func New() *Store {
	return &Store{st: newState(), now: time.Now}
}

// SetClock troca o relógio usado em created_at e nos códigos (testes).
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Run executa fn sobre um clone do estado. Sucesso troca o estado; erro descarta o clone.
// As transações são serializadas: equivale ao bloqueio de linhas do banco.
func (s *Store) Run(ctx context.Context, fn func(tx repository.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(s.repositories(inTx{st: work})); err != nil {
		// sequências avançam mesmo em rollback, como no Postgres
		s.st.seq = work.seq
		return err
	}
	s.st = work
	return nil
}

// Repositories devolve os repositórios em modo autocommit.
func (s *Store) Repositories() repository.TxRepositories {
	return s.repositories(autoCommit{s: s})
}

func (s *Store) repositories(acc accessor) repository.TxRepositories {
	return repository.TxRepositories{
		Shipments: &ShipmentRepository{acc: acc, now: s.clock},
		Costs:     &CostEntryRepository{acc: acc, now: s.clock},
		Farms:     &FarmRepository{acc: acc, now: s.clock},
		Drivers:   &DriverRepository{acc: acc, now: s.clock},
		Vehicles:  &VehicleRepository{acc: acc, now: s.clock},
		Payments:  &PaymentRepository{acc: acc, now: s.clock},
		Totals:    &TotalsReconciler{acc: acc, now: s.clock},
		Exists:    &ExistenceChecker{acc: acc},
	}
}

// Dashboard devolve o repositório de leitura do painel.
func (s *Store) Dashboard() repository.DashboardRepository {
	return &DashboardRepository{acc: autoCommit{s: s}}
}

// Users devolve o repositório de usuários.
func (s *Store) Users() repository.UserRepository {
	return &UserRepository{acc: autoCommit{s: s}, now: s.clock}
}

// clock é lido sem lock: SetClock só é usado antes do uso concorrente.
func (s *Store) clock() time.Time {
	return s.now()
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 || offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return list[offset:end]
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
