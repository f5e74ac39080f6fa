package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/matwana/logistics-api/internal/application/auth"
	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/domain"
	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
	"github.com/matwana/logistics-api/internal/domain/validate"
)

// UserUseCase CRUD de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	tx   TxRunner
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, tx TxRunner) *UserUseCase {
	return &UserUseCase{repo: repo, tx: tx}
}

// Create valida todos los campos acumulando mensajes y persiste el usuario
// con el password hasheado. Equivalente a signup pero bajo /users.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	var msgs []string
	msgs = validate.Name(in.Name, msgs)
	msgs = validate.PhoneNumber(in.PhoneNumber, msgs)
	msgs = validate.Email(in.Email, msgs)
	msgs = validate.Password(in.Password, msgs)
	msgs = validate.Role(in.Role, msgs)

	existing, err := uc.repo.GetByPhoneNumber(ctx, in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		msgs = append(msgs, "ya existe un usuario con ese teléfono")
	}
	if err := validate.Finish(msgs); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	now := time.Now()
	user := &entity.User{
		Name:         in.Name,
		PhoneNumber:  in.PhoneNumber,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// GetByID devuelve la proyección del usuario o ErrUserNotFound.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

var userPatchAllowed = map[string]bool{
	"name":         true,
	"phone_number": true,
	"email":        true,
	"password":     true,
	"role":         true,
}

// Patch aplica una actualización allow-listed re-ejecutando los validadores
// de creación sobre cada campo presente. Claves desconocidas o inmutables
// (id, created_at) se rechazan.
func (uc *UserUseCase) Patch(ctx context.Context, id int64, p Patch) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	var msgs []string
	msgs = checkAllowed(p, userPatchAllowed, msgs)

	name, phone, email, role := user.Name, user.PhoneNumber, user.Email, user.Role
	var password string // solo se rehashea si viene en el patch
	msgs = decodeString(p, "name", &name, msgs)
	msgs = decodeString(p, "phone_number", &phone, msgs)
	msgs = decodeString(p, "email", &email, msgs)
	msgs = decodeString(p, "password", &password, msgs)
	msgs = decodeString(p, "role", &role, msgs)

	if _, ok := p["name"]; ok {
		msgs = validate.Name(name, msgs)
	}
	if _, ok := p["phone_number"]; ok {
		msgs = validate.PhoneNumber(phone, msgs)
		existing, err := uc.repo.GetByPhoneNumber(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			msgs = append(msgs, "ya existe un usuario con ese teléfono")
		}
	}
	if _, ok := p["email"]; ok {
		msgs = validate.Email(email, msgs)
	}
	if _, ok := p["password"]; ok {
		msgs = validate.Password(password, msgs)
	}
	if _, ok := p["role"]; ok {
		msgs = validate.Role(role, msgs)
	}
	if err := validate.Finish(msgs); err != nil {
		return nil, err
	}

	user.Name, user.PhoneNumber, user.Email = name, phone, email
	if role != "" {
		user.Role = role
	}
	if _, ok := p["password"]; ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete borra el usuario y, en la misma transacción, todas sus asignaciones.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.tx.Run(ctx, func(r Repos) error {
		if err := r.Assignments.DeleteByUserID(ctx, id); err != nil {
			return err
		}
		return r.Users.Delete(ctx, id)
	})
}
