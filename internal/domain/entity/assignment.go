package entity

// Assignment vincula a un usuario de staff (customer_service o admin) con un
// paquete que atiende. Se crea exactamente una por cada creación de paquete,
// ligando al staff creador. Borrar el usuario o el paquete borra sus asignaciones.
type Assignment struct {
	ID       int64
	UserID   int64
	ParcelID int64
}
