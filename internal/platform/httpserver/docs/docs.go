// Package docs registers the OpenAPI document served under /swagger/.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/token": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange username and password for a bearer token",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "400": {"description": "Incorrect username or password", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users (admin)",
                "parameters": [
                    {"type": "integer", "name": "skip", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/UserResponse"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a teacher or student account",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/UserResponse"}},
                    "400": {"description": "Validation failed or username taken", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create an account with any role (admin)",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/UserResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UserResponse"}}
                }
            }
        },
        "/users/{user_id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Partially update a user (admin)",
                "parameters": [
                    {"type": "integer", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UserResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete a user (admin)",
                "parameters": [
                    {"type": "integer", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classes/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "List classes (admin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ClassResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Create a class (admin)",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ClassResponse"}}
                }
            }
        },
        "/classes/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Search classes by name or code",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ClassResponse"}}}
                }
            }
        },
        "/classes/{class_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Get a class",
                "parameters": [
                    {"type": "integer", "name": "class_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/assignments/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assignments"],
                "summary": "Create an assignment (teacher or admin)",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/submissions/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Submit work for an assignment (student)",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_at": {"type": "string", "format": "date-time"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "teacher", "student"]}
            }
        },
        "UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"},
                "teacher_id": {"type": "integer"}
            }
        },
        "ClassResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "code": {"type": "string"},
                "teacher_id": {"type": "integer", "x-nullable": true}
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
	Title:            "ClassTrack API",
	Description:      "Class management backend: accounts, classes, enrollments, assignments and submissions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
