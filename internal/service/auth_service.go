package service

import (
	"context"
	"time"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/apierror"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/config"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/dto"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/model"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	ObtenerUsuario(ctx context.Context, id uint) (*dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	CambiarActivo(ctx context.Context, id uint) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// Login never reveals which of username/password was wrong; an inactive
// account answers 401 with its own detail regardless of the password.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apierror.DataAccess("Error al buscar el usuario", err)
	}
	if user == nil {
		return nil, apierror.Authentication("Usuario o contraseña incorrectos")
	}
	if !user.Activo {
		return nil, apierror.Authentication("Usuario inactivo. Contacte al administrador.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Authentication("Usuario o contraseña incorrectos")
	}

	now := time.Now()
	if err := s.repo.UpdateUltimoLogin(ctx, user.ID, now); err != nil {
		return nil, apierror.DataAccess("Error al actualizar el último login", err)
	}
	user.UltimoLogin = &now

	token, err := s.generateToken(user)
	if err != nil {
		return nil, apierror.DataAccess("Error al generar el token", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: s.cfg.JWTExpirationHours * 3600,
		User:      toUsuarioResponse(user),
	}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	rol := req.Rol
	if rol == "" {
		rol = model.RolOperador
	}

	if err := s.checkDuplicados(ctx, req.Username, req.Email, req.Nombre, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apierror.DataAccess("Error al generar el hash", err)
	}
	user := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apierror.DataAccess("Error al crear el usuario", err)
	}
	resp := toUsuarioResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	var users []model.Usuario
	var err error
	if incluirInactivos {
		users, err = s.repo.ListAll(ctx)
	} else {
		users, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, apierror.DataAccess("Error al listar usuarios", err)
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = toUsuarioResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ObtenerUsuario(ctx context.Context, id uint) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.DataAccess("Error al buscar el usuario", err)
	}
	if user == nil {
		return nil, apierror.NotFound("Usuario no encontrado")
	}
	resp := toUsuarioResponse(user)
	return &resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.DataAccess("Error al buscar el usuario", err)
	}
	if user == nil {
		return nil, apierror.NotFound("Usuario no encontrado")
	}

	if req.Username != "" || req.Email != "" || req.Nombre != "" {
		// Collision check against every other row, active or not.
		username := user.Username
		if req.Username != "" {
			username = req.Username
		}
		email := user.Email
		if req.Email != "" {
			email = req.Email
		}
		nombre := user.Nombre
		if req.Nombre != "" {
			nombre = req.Nombre
		}
		if err := s.checkDuplicados(ctx, username, email, nombre, user.ID); err != nil {
			return nil, err
		}
		user.Username, user.Email, user.Nombre = username, email, nombre
	}
	if req.Rol != "" {
		user.Rol = req.Rol
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, apierror.DataAccess("Error al generar el hash", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apierror.DataAccess("Error al actualizar el usuario", err)
	}
	resp := toUsuarioResponse(user)
	return &resp, nil
}

// CambiarActivo toggles the logical-delete flag (no hard delete exists).
func (s *authService) CambiarActivo(ctx context.Context, id uint) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.DataAccess("Error al buscar el usuario", err)
	}
	if user == nil {
		return nil, apierror.NotFound("Usuario no encontrado")
	}
	user.Activo = !user.Activo
	if err := s.repo.SetActivo(ctx, id, user.Activo); err != nil {
		return nil, apierror.DataAccess("Error al cambiar el estado del usuario", err)
	}
	resp := toUsuarioResponse(user)
	return &resp, nil
}

func (s *authService) checkDuplicados(ctx context.Context, username, email, nombre string, excludeID uint) error {
	dup, err := s.repo.FindDuplicate(ctx, username, email, nombre, excludeID)
	if err != nil {
		return apierror.DataAccess("Error al verificar duplicados", err)
	}
	if dup == nil {
		return nil
	}
	switch {
	case dup.Username == username:
		return apierror.Conflict("Username ya registrado")
	case dup.Email == email:
		return apierror.Conflict("Email ya registrado")
	default:
		return apierror.Conflict("Nombre ya registrado")
	}
}

func (s *authService) generateToken(user *model.Usuario) (string, error) {
	duration := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"rol":      user.Rol,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func toUsuarioResponse(u *model.Usuario) dto.UsuarioResponse {
	var ultimoLogin *string
	if u.UltimoLogin != nil {
		s := u.UltimoLogin.Format(time.RFC3339)
		ultimoLogin = &s
	}
	return dto.UsuarioResponse{
		ID:          u.ID,
		Username:    u.Username,
		Nombre:      u.Nombre,
		Email:       u.Email,
		Rol:         u.Rol,
		Activo:      u.Activo,
		UltimoLogin: ultimoLogin,
	}
}
