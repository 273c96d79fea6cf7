package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// MountDocs sirve Swagger UI en /docs y la especificación en /docs/swagger.json.
// Si el archivo no existe no monta nada y devuelve false.
func MountDocs(app *fiber.App, file string) bool {
	if _, err := os.Stat(file); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: file,
		Path:     "docs",
		Title:    "Farmacia POS API",
	}))
	return true
}
