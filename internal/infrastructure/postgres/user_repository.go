package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository implementa repository.UserRepository sobre PostgreSQL.
type UserRepository struct {
	db Queryer
}

// NewUserRepository construye el repositorio. Acepta el pool o una tx.
func NewUserRepository(db Queryer) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, phone_number, COALESCE(email, ''), password_hash, role, created_at, updated_at`

// Create inserta el usuario y asigna el ID generado. El email vacío se
// guarda como NULL para que el UNIQUE no choque entre usuarios sin email.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, phone_number, email, password_hash, role)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		user.Name, user.PhoneNumber, user.Email, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return conflict("teléfono o email")
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByPhoneNumber devuelve (nil, nil) si no existe.
func (r *UserRepository) GetByPhoneNumber(ctx context.Context, phone string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, phone))
}

// List devuelve todos los usuarios ordenados por ID.
func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.PhoneNumber, &u.Email,
			&u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("escanear usuario: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// Update persiste los campos mutables del usuario.
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $1, phone_number = $2, email = NULLIF($3, ''),
		    password_hash = $4, role = $5, updated_at = now()
		WHERE id = $6`

	tag, err := r.db.Exec(ctx, query,
		user.Name, user.PhoneNumber, user.Email, user.PasswordHash, user.Role, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return conflict("teléfono o email")
		}
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("actualizar usuario %d: fila no encontrada", user.ID)
	}
	return nil
}

// Delete elimina el usuario por ID.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("borrar usuario: %w", err)
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.PhoneNumber, &u.Email,
		&u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("escanear usuario: %w", err)
	}
	return &u, nil
}
