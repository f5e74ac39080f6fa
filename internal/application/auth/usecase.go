package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/domain"
	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
	"github.com/matwana/logistics-api/internal/domain/validate"
	"github.com/matwana/logistics-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int
	RefreshExpMinutes int
	Issuer            string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Signup valida todos los campos (acumulando mensajes), hashea el password
// con bcrypt y persiste el usuario. El rol por defecto es customer.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	var msgs []string
	msgs = validate.Name(in.Name, msgs)
	msgs = validate.PhoneNumber(in.PhoneNumber, msgs)
	msgs = validate.Email(in.Email, msgs)
	msgs = validate.Password(in.Password, msgs)
	msgs = validate.Role(in.Role, msgs)

	existing, err := uc.userRepo.GetByPhoneNumber(ctx, in.PhoneNumber)
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
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica teléfono/password y emite el par access + refresh token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByPhoneNumber(ctx, in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message: "sesión iniciada correctamente",
		Tokens:  dto.TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}

// ToUserResponse proyecta un usuario a su vista pública (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
