// Package testutil содержит in-memory реализацию хранилища календаря для тестов use case'ов.
// Транзакции сериализуются мьютексом и откатываются при ошибке, поэтому поведение
// конкурентных сценариев совпадает с SERIALIZABLE в postgres.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type pair [2]uuid.UUID

type state struct {
	branches       map[uuid.UUID]domain.Branch
	services       map[uuid.UUID]domain.Service
	branchServices map[pair]bool
	staff          map[uuid.UUID]domain.Staff
	staffServices  map[pair]bool
	shifts         []domain.Shift
	breaks         []domain.Break
	timeOffs       []domain.TimeOff
	bookings       map[uuid.UUID]domain.Booking
	holds          map[uuid.UUID]domain.BookingHold
	outbox         []domain.OutboxEvent
}

func newState() *state {
	return &state{
		branches:       make(map[uuid.UUID]domain.Branch),
		services:       make(map[uuid.UUID]domain.Service),
		branchServices: make(map[pair]bool),
		staff:          make(map[uuid.UUID]domain.Staff),
		staffServices:  make(map[pair]bool),
		bookings:       make(map[uuid.UUID]domain.Booking),
		holds:          make(map[uuid.UUID]domain.BookingHold),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.branches {
		c.branches[k] = v
	}
	for k, v := range s.services {
		c.services[k] = v
	}
	for k, v := range s.branchServices {
		c.branchServices[k] = v
	}
	for k, v := range s.staff {
		c.staff[k] = v
	}
	for k, v := range s.staffServices {
		c.staffServices[k] = v
	}
	c.shifts = append(c.shifts, s.shifts...)
	c.breaks = append(c.breaks, s.breaks...)
	c.timeOffs = append(c.timeOffs, s.timeOffs...)
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.holds {
		c.holds[k] = v
	}
	c.outbox = append(c.outbox, s.outbox...)
	return c
}

// Store in-memory хранилище календаря
type Store struct {
	mu    sync.Mutex
	state *state

	errMu  sync.Mutex
	errors map[string]error

	txCount int
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{state: newState(), errors: make(map[string]error)}
}

type txKey struct{}

// FailOn заставляет метод репозитория op (например "Holds.Create") возвращать err
func (s *Store) FailOn(op string, err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	s.errors[op] = err
}

func (s *Store) injected(op string) error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.errors[op]
}

// with выполняет fn над состоянием. Внутри транзакции мьютекс уже захвачен
func (s *Store) with(ctx context.Context, fn func(st *state) error) error {
	if tx, ok := ctx.Value(txKey{}).(*Store); ok && tx == s {
		return fn(s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// TxManager менеджер транзакций поверх Store
type TxManager struct {
	store *Store
}

func (s *Store) TxManager() *TxManager { return &TxManager{store: s} }

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.store.transact(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.store.transact(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.store.transact(ctx, fn)
}

func (s *Store) transact(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey{}).(*Store); ok && tx == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.txCount++
	snapshot := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// TxCount число начатых транзакций верхнего уровня
func (s *Store) TxCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txCount
}

// Clock управляемые часы для тестов
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock { return &Clock{now: now} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
