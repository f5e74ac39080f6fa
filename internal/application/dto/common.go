package dto

// ErrorResponse cuerpo de error HTTP. Error para un mensaje único,
// Errors para la lista ordenada de mensajes de validación acumulados.
type ErrorResponse struct {
	Error  string   `json:"error,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// MessageResponse cuerpo de éxito con mensaje (deletes, operaciones sin entidad).
type MessageResponse struct {
	Message string `json:"message"`
}
