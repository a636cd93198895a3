package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-stock/pkg/config"
	"github.com/jhoicas/inventario-stock/pkg/jwt"
)

var validRoles = []string{"admin", "bodeguero", "vendedor"}

// TokenResult salida de token.
type TokenResult struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in_minutes"`
}

// NewTokenCommand emite un JWT firmado con JWT_SECRET para operar la API
// (scripts de carga, pruebas manuales). Las cuentas de usuario viven fuera.
func NewTokenCommand(opts *RootOptions) *cobra.Command {
	var userID, role string
	var expMinutes int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token Bearer para la API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if userID == "" {
				return NewExitError(ExitCommandError, "--user es obligatorio")
			}
			if !isValidRole(role) {
				return NewExitError(ExitCommandError, fmt.Sprintf("rol inválido %q: debe ser uno de %v", role, validRoles))
			}
			secret, issuer, defaultExp, err := opts.jwtSettings()
			if err != nil {
				return WrapExitError(ExitCommandError, "leer configuración", err)
			}
			if expMinutes <= 0 {
				expMinutes = defaultExp
			}
			tok, err := jwt.Generate(secret, userID, role, issuer, expMinutes)
			if err != nil {
				return WrapExitError(ExitCommandError, "firmar token", err)
			}
			return p.emit(TokenResult{Token: tok, UserID: userID, Role: role, ExpiresIn: expMinutes}, tok)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "id del usuario que firmará los movimientos")
	cmd.Flags().StringVar(&role, "role", "bodeguero", "rol (admin|bodeguero|vendedor)")
	cmd.Flags().IntVar(&expMinutes, "exp", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	return cmd
}

// jwtSettings usa JWTSecret de las opciones si está definido; si no, la config de entorno.
func (o *RootOptions) jwtSettings() (secret, issuer string, expMinutes int, err error) {
	if o.JWTSecret != "" {
		return o.JWTSecret, "stockctl", 60, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", "", 0, err
	}
	return cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, nil
}

func isValidRole(role string) bool {
	for _, r := range validRoles {
		if r == role {
			return true
		}
	}
	return false
}
