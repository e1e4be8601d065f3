// Package swagger registers the API documentation served at /swagger.
package swagger

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
    "paths": {
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Service health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/towns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["towns"],
                "summary": "Lists the public towns",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["towns"],
                "summary": "Creates a new town",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/towns/{townID}": {
            "patch": {
                "consumes": ["application/json"],
                "tags": ["towns"],
                "summary": "Updates a town's settings",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["towns"],
                "summary": "Deletes a town",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/towns/{townID}/{interactableID}/incStars": {
            "patch": {
                "produces": ["application/json"],
                "tags": ["areas"],
                "summary": "Stars a poster session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/towns/{townID}/{interactableID}/addVideotoPlaylist": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["areas"],
                "summary": "Pushes a video onto a watch together playlist",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/towns/{townID}/{interactableID}/playNext": {
            "patch": {
                "produces": ["application/json"],
                "tags": ["areas"],
                "summary": "Plays the next queued video",
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
	Title:            "Townsquare API",
	Description:      "Gin-Gonic server for the Townsquare virtual-town backend",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
