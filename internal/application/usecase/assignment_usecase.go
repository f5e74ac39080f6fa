package usecase

import (
	"context"

	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/application/policy"
	"github.com/matwana/logistics-api/internal/domain"
	"github.com/matwana/logistics-api/internal/domain/repository"
)

// AssignmentUseCase consultas y bajas del vínculo staff ↔ paquete.
// El alta ocurre únicamente dentro de ParcelUseCase.Create.
type AssignmentUseCase struct {
	assignments repository.AssignmentRepository
	parcels     repository.ParcelRepository
	users       repository.UserRepository
	locations   repository.LocationRepository
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(
	assignments repository.AssignmentRepository,
	parcels repository.ParcelRepository,
	users repository.UserRepository,
	locations repository.LocationRepository,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		assignments: assignments,
		parcels:     parcels,
		users:       users,
		locations:   locations,
	}
}

// ParcelsForUser lista los paquetes asignados al usuario. El rol del usuario
// referenciado debe ser de staff; solo el staff recibe asignaciones.
func (uc *AssignmentUseCase) ParcelsForUser(ctx context.Context, userID int64) ([]*dto.ParcelResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !policy.Allows(policy.AssignmentRead, user.Role) {
		return nil, domain.ErrForbidden
	}

	assignments, err := uc.assignments.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ParcelResponse, 0, len(assignments))
	for _, a := range assignments {
		parcel, err := uc.parcels.GetByID(ctx, a.ParcelID)
		if err != nil {
			return nil, err
		}
		if parcel == nil {
			continue // asignación huérfana: el paquete ya no existe
		}
		resp, err := buildParcelResponse(ctx, parcel, uc.users, uc.locations)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// DeleteForUser borra la primera asignación del usuario. Solo admin.
// ErrNotFound si el usuario no tiene asignaciones.
func (uc *AssignmentUseCase) DeleteForUser(ctx context.Context, userID int64) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !policy.Allows(policy.AssignmentDelete, user.Role) {
		return domain.ErrForbidden
	}
	return uc.assignments.DeleteFirstByUserID(ctx, userID)
}
