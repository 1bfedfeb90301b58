// Package docs registra el spec OpenAPI servido en /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT: 'Bearer {token}'"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Registra un usuario (owner o staff)",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/auth/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Emite el par access/refresh a partir de credenciales",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Renueva el par de tokens con un refresh token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Perfil del usuario autenticado",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/pets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pets"],
                "summary": "Lista mascotas visibles (owner: propias, staff: todas)",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pets"],
                "summary": "Crea una mascota",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pets"],
                "summary": "Perfil de mascota (dueño o staff)",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["pets"],
                "summary": "Actualiza una mascota (dueño o staff)",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["pets"],
                "summary": "Elimina una mascota (dueño o staff)",
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/pets/{petID}/vaccinations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccinations"],
                "summary": "Historial de vacunación de una mascota",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/vaccines": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccines"],
                "summary": "Lista el catálogo de vacunas",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccines"],
                "summary": "Crea una vacuna (solo staff)",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/vaccines/{vaccineID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccines"],
                "summary": "Detalle de una vacuna",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccines"],
                "summary": "Actualiza una vacuna (solo staff)",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccines"],
                "summary": "Elimina una vacuna (solo staff)",
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/vaccinations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccinations"],
                "summary": "Lista registros de vacunación visibles",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccinations"],
                "summary": "Registra una aplicación de vacuna (solo staff)",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/vaccinations/upcoming": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccinations"],
                "summary": "Dosis próximas (due_soon) visibles, por fecha ascendente",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/vaccinations/overdue": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccinations"],
                "summary": "Dosis vencidas visibles, la más vencida primero",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/vaccinations/{vaccinationID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccinations"],
                "summary": "Detalle de un registro de vacunación",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccinations"],
                "summary": "Corrige un registro (solo staff)",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["vaccinations"],
                "summary": "Elimina un registro (solo staff)",
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"}
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Vet Clinic API",
	Description:      "API de clínica veterinaria: mascotas, catálogo de vacunas y registros de vacunación.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
