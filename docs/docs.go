// Package docs registra la descripción OpenAPI que sirve /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/animals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "List available animals",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/animals/featured": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Featured animals for the home page",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/rescues": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rescues"],
                "summary": "Report an animal in distress",
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/rescues/status/{publicID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rescues"],
                "summary": "Track a rescue report by its public id",
                "parameters": [{"type": "string", "name": "publicID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/me/catalog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["visitor"],
                "summary": "Current catalog page for the stored filters",
                "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/forms/{kind}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Current state of a form wizard",
                "parameters": [{"type": "string", "name": "kind", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/forms/{kind}/submit": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Submit a completed form",
                "parameters": [{"type": "string", "name": "kind", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"},
                    "422": {"description": "Unprocessable Entity"},
                    "429": {"description": "Too Many Requests"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/auth/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Session of the current visitor",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Animal Rescue API",
	Description:      "Adoption catalog, rescue reports and volunteer, contact and donation forms.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
