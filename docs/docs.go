// Package docs registers the console's OpenAPI description with swag so
// echo-swagger can serve it under /swagger/.
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
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/login": {
            "get": {"tags": ["session"], "summary": "Login view", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["session"], "summary": "Log in",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "parameters": [
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"303": {"description": "Redirect to /products"}, "401": {"description": "Unauthorized"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/register": {
            "post": {
                "tags": ["session"], "summary": "Register and log in",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "parameters": [
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "name": "full_name", "in": "formData", "required": true},
                    {"type": "string", "name": "role", "in": "formData", "enum": ["sales", "admin", "logistics"]}
                ],
                "responses": {"303": {"description": "Redirect to /products"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/logout": {
            "post": {"tags": ["session"], "summary": "Log out", "responses": {"303": {"description": "Redirect to /login"}}}
        },
        "/me": {
            "get": {"tags": ["session"], "summary": "Current operator", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "303": {"description": "Redirect to /login"}}}
        },
        "/products": {
            "get": {
                "tags": ["products"], "summary": "Product list view", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "303": {"description": "Redirect to /login"}, "502": {"description": "Bad Gateway"}}
            },
            "post": {
                "tags": ["products"], "summary": "Create a product",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "name": "category", "in": "formData", "required": true},
                    {"type": "string", "name": "price", "in": "formData", "required": true},
                    {"type": "string", "name": "stock", "in": "formData", "required": true},
                    {"type": "string", "name": "description", "in": "formData"}
                ],
                "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["products"], "summary": "Product detail", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/prices": {
            "get": {
                "tags": ["prices"], "summary": "Price comparison view", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "product_id", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/prices/suggest": {
            "post": {
                "tags": ["prices"], "summary": "Compare market prices",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [{"type": "integer", "name": "product_id", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/prices/history": {
            "get": {
                "tags": ["prices"], "summary": "Past comparisons", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "product_id", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/prices/alerts": {
            "get": {"tags": ["prices"], "summary": "Price alerts", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MobiCorp Storefront Console",
	Description:      "Operator console over the MobiCorp storefront API: session, catalog, and price comparison views.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
