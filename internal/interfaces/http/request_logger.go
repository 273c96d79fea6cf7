package http

import (
	"github.com/gofiber/contrib/fiberzerolog"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger registra cada petición con ip, latencia, status, método, url y error.
// 5xx en nivel error, 4xx en warn y el resto en info.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return fiberzerolog.New(fiberzerolog.Config{
		Logger: &log,
	})
}
