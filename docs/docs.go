// Package docs registra la especificación OpenAPI de la API en el registro de swag.
// swagger.json es la fuente; el middleware de Swagger UI lo sirve desde disco.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos de la API. Host se completa en el arranque.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cotizador API",
	Description:      "Backend de QuoteMaster Pro: usuarios por invitación, clientes, cotizaciones, PDF y correo.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
