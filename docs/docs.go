// Package docs holds the OpenAPI document served by gin-swagger.
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
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {"tags": ["Auth"], "summary": "Register", "responses": {"201": {"description": "Created"}}}
        },
        "/auth/login": {
            "post": {"tags": ["Auth"], "summary": "Login", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/refresh": {
            "post": {"tags": ["Auth"], "summary": "Refresh access token", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/profile": {
            "get": {"tags": ["Auth"], "summary": "My profile", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/items": {
            "get": {"tags": ["Items"], "summary": "Browse items", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Items"], "summary": "Post an item", "security": [{"ApiKeyAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/items/{id}": {
            "get": {"tags": ["Items"], "summary": "Item detail", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["Items"], "summary": "Update an item", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Items"], "summary": "Delete an item", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/exchanges": {
            "post": {"tags": ["Exchanges"], "summary": "Request an exchange", "security": [{"ApiKeyAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/exchanges/{id}": {
            "get": {"tags": ["Exchanges"], "summary": "Exchange detail with allowed actions", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/exchanges/{id}/respond": {
            "post": {"tags": ["Exchanges"], "summary": "Owner accepts or rejects a pending exchange", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid transition"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/exchanges/{id}/confirm": {
            "post": {"tags": ["Exchanges"], "summary": "Confirm my side of an exchange", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid state"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/exchanges/{id}/cancel": {
            "post": {"tags": ["Exchanges"], "summary": "Cancel an exchange", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/exchanges/{id}/messages": {
            "get": {"tags": ["Chat"], "summary": "Exchange chat history", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Chat"], "summary": "Send a chat message", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}}}
        },
        "/notifications": {
            "get": {"tags": ["Notifications"], "summary": "My notifications", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/notifications/{id}/read": {
            "patch": {"tags": ["Notifications"], "summary": "Mark a notification read", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users": {
            "get": {"tags": ["Admin"], "summary": "List users", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users/{id}/status": {
            "patch": {"tags": ["Admin"], "summary": "Block or unblock a user", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/items/{id}/moderate": {
            "patch": {"tags": ["Admin"], "summary": "Hide or restore an item", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Campus X API",
	Description:      "Campus item-exchange platform: items, exchanges, chat, notifications, admin moderation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
