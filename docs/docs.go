// Package docs publica la especificación Swagger de la API.
// swagger.json se regenera a partir de las anotaciones de los handlers.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:generate swag init -d ../ -g cmd/api/main.go -o . --outputTypes json

//go:embed swagger.json
var doc string

// SwaggerInfo información de la API registrada en swag.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "Inventario POS API",
	Description:      "Inventario, ventas, compras y fidelización de un punto de venta.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  doc,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
