// Package policy centraliza la autorización por rol. Sustituye los chequeos
// ad hoc de pertenencia a conjuntos de strings dispersos por endpoint: cada
// acción protegida declara aquí su conjunto de roles permitidos y todos los
// puntos de entrada consultan la misma tabla.
package policy

import "github.com/matwana/logistics-api/internal/domain/entity"

// Action acción protegida sobre un tipo de recurso.
type Action string

const (
	ParcelCreate     Action = "parcel.create"
	ParcelReprice    Action = "parcel.reprice"
	AssignmentRead   Action = "assignment.read"
	AssignmentDelete Action = "assignment.delete"
)

var rules = map[Action][]string{
	ParcelCreate:     {entity.RoleCustomerService, entity.RoleAdmin},
	ParcelReprice:    {entity.RoleCustomerService, entity.RoleAdmin},
	AssignmentRead:   {entity.RoleCustomerService, entity.RoleAdmin},
	AssignmentDelete: {entity.RoleAdmin},
}

// Allows indica si el rol puede ejecutar la acción. Acciones desconocidas se niegan.
func Allows(action Action, role string) bool {
	for _, r := range rules[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Roles devuelve el conjunto de roles permitidos para la acción (para mensajes y tests).
func Roles(action Action) []string {
	out := make([]string, len(rules[action]))
	copy(out, rules[action])
	return out
}
