package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// HeaderIdempotencyKey cabecera con la que el cliente identifica un reintento.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKey = 128

// IdempotencyStore es el contrato mínimo que necesita el middleware.
// Lo implementa *redis.IdempotencyStore.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Idempotent evita que un reintento con la misma Idempotency-Key registre el
// movimiento dos veces. Sin cabecera la petición pasa sin control. Debe usarse
// DESPUÉS de AuthMiddleware: la clave se aísla por usuario.
//
// Comportamiento:
//   - 409 DUPLICATE_REQUEST → la clave ya fue usada por una petición exitosa o en curso.
//   - 503 IDEMPOTENCY_UNAVAILABLE → fallo del store; no se ejecuta el handler.
//   - Si el handler falla (error o status >= 400) la clave se libera para reintentar.
func Idempotent(store IdempotencyStore, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if key == "" {
			return c.Next()
		}
		if len(key) > maxIdempotencyKey {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "Idempotency-Key excede 128 caracteres",
			})
		}
		storeKey := strings.Join([]string{"idem", GetUserID(c), c.Method(), c.Path(), key}, ":")

		ok, err := store.Reserve(c.UserContext(), storeKey)
		if err != nil {
			log.Error().Err(err).Str("key", storeKey).Msg("reservar clave de idempotencia")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "IDEMPOTENCY_UNAVAILABLE",
				Message: "no se pudo verificar la clave de idempotencia, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "DUPLICATE_REQUEST",
				Message: "la petición con esta Idempotency-Key ya fue procesada",
			})
		}

		err = c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			if rerr := store.Release(context.Background(), storeKey); rerr != nil {
				log.Warn().Err(rerr).Str("key", storeKey).Msg("liberar clave de idempotencia")
			}
		}
		return err
	}
}
