package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LoginRequest binds form fields (the desktop client posts a classic form).
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=1"`
	Password string `form:"password" json:"password" validate:"required,min=4"`
}

type CrearUsuarioRequest struct {
	Username string `json:"username" validate:"required,min=1,max=150"`
	Nombre   string `json:"nombre"   validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol"      validate:"omitempty,oneof=admin salida operador"`
}

// ActualizarUsuarioRequest applies only the supplied fields.
type ActualizarUsuarioRequest struct {
	Username string `json:"username" validate:"omitempty,min=1,max=150"`
	Nombre   string `json:"nombre"   validate:"omitempty,min=2,max=100"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Rol      string `json:"rol"      validate:"omitempty,oneof=admin salida operador"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioResponse deliberately omits the password hash; it is never exposed.
type UsuarioResponse struct {
	ID          uint    `json:"id_usuario"`
	Username    string  `json:"username"`
	Nombre      string  `json:"nombre"`
	Email       string  `json:"email"`
	Rol         string  `json:"rol"`
	Activo      bool    `json:"activo"`
	UltimoLogin *string `json:"ultimo_login"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresIn int             `json:"expires_in"` // seconds
	User      UsuarioResponse `json:"user"`
}
