package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/matwana/logistics-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// conflict traduce la violación de unicidad a domain.ErrConflict con un
// mensaje descriptivo del campo, para que el borde HTTP responda 400.
func conflict(field string) error {
	return fmt.Errorf("%w: %s ya registrado", domain.ErrConflict, field)
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return strings.Contains(err.Error(), "23503")
}

// inUse traduce la violación de clave foránea en un borrado a domain.ErrConflict:
// la fila sigue referenciada por otras tablas, el cliente debe resolverlo primero.
func inUse(what string) error {
	return fmt.Errorf("%w: %s referenciada por otros registros", domain.ErrConflict, what)
}
