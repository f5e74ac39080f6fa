// Package memory provee implementaciones en memoria de los puertos de
// persistencia. Se usan en pruebas de casos de uso y de handlers HTTP,
// donde un PostgreSQL real no aporta nada.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/matwana/logistics-api/internal/application/usecase"
	"github.com/matwana/logistics-api/internal/domain"
	"github.com/matwana/logistics-api/internal/domain/entity"
)

// Store agrupa los cinco repositorios en memoria compartiendo un mutex.
type Store struct {
	mu sync.Mutex

	users       map[int64]*entity.User
	parcels     map[int64]*entity.Parcel
	vehicles    map[int64]*entity.Vehicle
	locations   map[int64]*entity.Location
	assignments map[int64]*entity.Assignment

	nextID int64
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		users:       make(map[int64]*entity.User),
		parcels:     make(map[int64]*entity.Parcel),
		vehicles:    make(map[int64]*entity.Vehicle),
		locations:   make(map[int64]*entity.Location),
		assignments: make(map[int64]*entity.Assignment),
	}
}

func (s *Store) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

// Repos devuelve los repositorios atados al Store.
func (s *Store) Repos() usecase.Repos {
	return usecase.Repos{
		Users:       &UserRepository{store: s},
		Parcels:     &ParcelRepository{store: s},
		Vehicles:    &VehicleRepository{store: s},
		Locations:   &LocationRepository{store: s},
		Assignments: &AssignmentRepository{store: s},
	}
}

// TxRunner devuelve un usecase.TxRunner que ejecuta fn directamente sobre
// el Store. No hay rollback: suficiente para el camino feliz de las pruebas.
func (s *Store) TxRunner() usecase.TxRunner {
	return &txRunner{store: s}
}

type txRunner struct {
	store *Store
}

func (t *txRunner) Run(_ context.Context, fn func(r usecase.Repos) error) error {
	return fn(t.store.Repos())
}

// UserRepository implementa repository.UserRepository en memoria.
type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextIDLocked()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByPhoneNumber(_ context.Context, phone string) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.PhoneNumber == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.User, 0, len(s.users))
	for id := int64(1); id <= s.nextID; id++ {
		if u, ok := s.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

// ParcelRepository implementa repository.ParcelRepository en memoria.
type ParcelRepository struct {
	store *Store
}

func (r *ParcelRepository) Create(_ context.Context, parcel *entity.Parcel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	parcel.ID = s.nextIDLocked()
	cp := *parcel
	s.parcels[parcel.ID] = &cp
	return nil
}

func (r *ParcelRepository) GetByID(_ context.Context, id int64) (*entity.Parcel, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ParcelRepository) List(_ context.Context) ([]*entity.Parcel, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Parcel, 0, len(s.parcels))
	for id := int64(1); id <= s.nextID; id++ {
		if p, ok := s.parcels[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ParcelRepository) Update(_ context.Context, parcel *entity.Parcel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parcels[parcel.ID]; !ok {
		return domain.ErrParcelNotFound
	}
	cp := *parcel
	s.parcels[parcel.ID] = &cp
	return nil
}

func (r *ParcelRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.parcels, id)
	return nil
}

// VehicleRepository implementa repository.VehicleRepository en memoria.
type VehicleRepository struct {
	store *Store
}

func (r *VehicleRepository) Create(_ context.Context, vehicle *entity.Vehicle) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	vehicle.ID = s.nextIDLocked()
	cp := *vehicle
	s.vehicles[vehicle.ID] = &cp
	return nil
}

func (r *VehicleRepository) GetByID(_ context.Context, id int64) (*entity.Vehicle, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *VehicleRepository) List(_ context.Context) ([]*entity.Vehicle, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Vehicle, 0, len(s.vehicles))
	for id := int64(1); id <= s.nextID; id++ {
		if v, ok := s.vehicles[id]; ok {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *VehicleRepository) Update(_ context.Context, vehicle *entity.Vehicle) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[vehicle.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *vehicle
	s.vehicles[vehicle.ID] = &cp
	return nil
}

func (r *VehicleRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vehicles, id)
	return nil
}

// LocationRepository implementa repository.LocationRepository en memoria.
type LocationRepository struct {
	store *Store
}

func (r *LocationRepository) Create(_ context.Context, location *entity.Location) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	location.ID = s.nextIDLocked()
	cp := *location
	s.locations[location.ID] = &cp
	return nil
}

func (r *LocationRepository) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *LocationRepository) GetByRoute(_ context.Context, origin, destination string) (*entity.Location, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.locations {
		if l.Origin == origin && l.Destination == destination {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *LocationRepository) List(_ context.Context) ([]*entity.Location, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Location, 0, len(s.locations))
	for id := int64(1); id <= s.nextID; id++ {
		if l, ok := s.locations[id]; ok {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *LocationRepository) Update(_ context.Context, location *entity.Location) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[location.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *location
	s.locations[location.ID] = &cp
	return nil
}

// Delete replica el contrato del adaptador PostgreSQL: una tarifa
// referenciada por paquetes o vehículos no se borra, es un conflicto.
func (r *LocationRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locationInUseLocked(id) {
		return fmt.Errorf("%w: tarifa referenciada por otros registros", domain.ErrConflict)
	}
	delete(s.locations, id)
	return nil
}

func (r *LocationRepository) DeleteAll(_ context.Context) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.locations {
		if s.locationInUseLocked(id) {
			return fmt.Errorf("%w: tarifa referenciada por otros registros", domain.ErrConflict)
		}
	}
	s.locations = make(map[int64]*entity.Location)
	return nil
}

func (s *Store) locationInUseLocked(id int64) bool {
	for _, p := range s.parcels {
		if p.LocationID != nil && *p.LocationID == id {
			return true
		}
	}
	for _, v := range s.vehicles {
		if v.LocationID != nil && *v.LocationID == id {
			return true
		}
	}
	return false
}

// AssignmentRepository implementa repository.AssignmentRepository en memoria.
type AssignmentRepository struct {
	store *Store
}

func (r *AssignmentRepository) Create(_ context.Context, assignment *entity.Assignment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	assignment.ID = s.nextIDLocked()
	cp := *assignment
	s.assignments[assignment.ID] = &cp
	return nil
}

func (r *AssignmentRepository) ListByUserID(_ context.Context, userID int64) ([]*entity.Assignment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Assignment
	for id := int64(1); id <= s.nextID; id++ {
		if a, ok := s.assignments[id]; ok && a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *AssignmentRepository) DeleteFirstByUserID(_ context.Context, userID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := int64(1); id <= s.nextID; id++ {
		if a, ok := s.assignments[id]; ok && a.UserID == userID {
			delete(s.assignments, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *AssignmentRepository) DeleteByUserID(_ context.Context, userID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.assignments {
		if a.UserID == userID {
			delete(s.assignments, id)
		}
	}
	return nil
}

func (r *AssignmentRepository) DeleteByParcelID(_ context.Context, parcelID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.assignments {
		if a.ParcelID == parcelID {
			delete(s.assignments, id)
		}
	}
	return nil
}
