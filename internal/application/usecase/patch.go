package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Patch es el cuerpo de un PUT: mapa campo → valor nuevo. Solo se aplican
// campos de la allow-list de cada entidad; los desconocidos o inmutables
// (id, created_at, sender_id, …) se rechazan con mensaje de validación.
type Patch map[string]json.RawMessage

// unknownFieldMsg mensaje para claves fuera de la allow-list.
func unknownFieldMsg(key string) string {
	return fmt.Sprintf("campo no permitido en actualización: %s", key)
}

func badValueMsg(key string) string {
	return fmt.Sprintf("valor inválido para el campo %s", key)
}

// checkAllowed acumula un mensaje por cada clave del patch fuera de la allow-list.
func checkAllowed(p Patch, allowed map[string]bool, msgs []string) []string {
	for key := range p {
		if !allowed[key] {
			msgs = append(msgs, unknownFieldMsg(key))
		}
	}
	return msgs
}

// decodeString decodifica un valor string del patch; acumula mensaje si el tipo no cuadra.
func decodeString(p Patch, key string, dst *string, msgs []string) []string {
	raw, ok := p[key]
	if !ok {
		return msgs
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		msgs = append(msgs, badValueMsg(key))
	}
	return msgs
}

// decodeDecimal decodifica un valor numérico (acepta número o string, como shopspring).
func decodeDecimal(p Patch, key string, dst *decimal.Decimal, msgs []string) []string {
	raw, ok := p[key]
	if !ok {
		return msgs
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		msgs = append(msgs, badValueMsg(key))
	}
	return msgs
}

// decodeInt64Ptr decodifica una referencia opcional (null limpia la referencia).
func decodeInt64Ptr(p Patch, key string, dst **int64, msgs []string) []string {
	raw, ok := p[key]
	if !ok {
		return msgs
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		msgs = append(msgs, badValueMsg(key))
	}
	return msgs
}
