package dto

// SignupRequest entrada para registro. Mismas reglas de campo que CreateUserRequest.
type SignupRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// LoginRequest entrada para login por teléfono + contraseña.
type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// TokenPair par de tokens emitidos al iniciar sesión.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse salida de login.
type LoginResponse struct {
	Message string    `json:"message"`
	Tokens  TokenPair `json:"tokens"`
}
