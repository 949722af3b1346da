package http

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/docs"
)

// Docs sirve Swagger UI en /docs y la especificación en /docs/swagger.json.
// La especificación va embebida en el binario.
func Docs(title string) fiber.Handler {
	return swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "./docs/swagger.json",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       title,
	})
}
