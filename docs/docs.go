// Package docs holds the swagger document served on /umdb/swagger.json
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
        "/configuration": {
            "get": {
                "produces": ["application/json"],
                "tags": ["configuration"],
                "summary": "Current configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Configuration"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/router.WrappedError"}}
                }
            },
            "put": {
                "description": "Checks the adb executable before storing it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["configuration"],
                "summary": "Update the configuration",
                "parameters": [
                    {"description": "New configuration", "name": "configuration", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Configuration"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Configuration"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.WrappedError"}}
                }
            }
        },
        "/executable/check": {
            "get": {
                "description": "Defaults to the configured adb command when no path is given",
                "produces": ["application/json"],
                "tags": ["configuration"],
                "summary": "Check an adb executable",
                "parameters": [
                    {"type": "string", "description": "Path or name of the executable", "name": "path", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.JsonResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.WrappedError"}}
                }
            }
        },
        "/devices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "List connected devices",
                "parameters": [
                    {"type": "string", "description": "android or ios", "name": "system", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Device"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.WrappedError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/router.WrappedError"}}
                }
            }
        },
        "/devices/mdns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Browse wireless debugging endpoints",
                "parameters": [
                    {"type": "string", "description": "android", "name": "system", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ServiceEndpoint"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.WrappedError"}}
                }
            }
        },
        "/devices/watch": {
            "get": {
                "tags": ["devices"],
                "summary": "Stream device listings over a websocket",
                "parameters": [
                    {"type": "string", "description": "android or ios, when the header cannot be set", "name": "system", "in": "query"},
                    {"type": "string", "description": "Go duration between listings, 5s by default", "name": "interval", "in": "query"}
                ],
                "responses": {}
            }
        },
        "/devices/{id}/connect": {
            "post": {
                "description": "Switches the device to TCP/IP mode on port and connects to ip:port",
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Connect to a device over TCP/IP",
                "parameters": [
                    {"type": "string", "description": "Device serial", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "android", "name": "system", "in": "header", "required": true},
                    {"type": "string", "description": "Device IP address", "name": "ip", "in": "header", "required": true},
                    {"type": "integer", "description": "TCP/IP port", "name": "port", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.JsonResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.WrappedError"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/router.WrappedError"}}
                }
            }
        },
        "/devices/{id}/link": {
            "post": {
                "consumes": ["text/plain"],
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Open a deep link on a device",
                "parameters": [
                    {"type": "string", "description": "Device serial", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "android", "name": "system", "in": "header", "required": true},
                    {"description": "Link to open", "name": "link", "in": "body", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.linkResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.WrappedError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/router.WrappedError"}}
                }
            }
        },
        "/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Recent log entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/logger.Entry"}}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Enable or disable informational logs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.JsonResponse"}}
                }
            }
        }
    },
    "definitions": {
        "logger.Entry": {
            "type": "object",
            "properties": {
                "event": {"type": "string"},
                "level": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "integer"}
            }
        },
        "models.Configuration": {
            "type": "object",
            "properties": {
                "adb_command": {"type": "string"}
            }
        },
        "models.Device": {
            "type": "object",
            "properties": {
                "alias": {"type": "string"},
                "id": {"type": "string"},
                "is_offline": {"type": "boolean"},
                "is_remote": {"type": "boolean"},
                "known_ips": {"type": "array", "items": {"type": "string"}},
                "model": {"type": "string"}
            }
        },
        "models.ServiceEndpoint": {
            "type": "object",
            "properties": {
                "addresses": {"type": "array", "items": {"type": "string"}},
                "host": {"type": "string"},
                "instance": {"type": "string"},
                "port": {"type": "integer"}
            }
        },
        "router.JsonResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "router.WrappedError": {
            "type": "object",
            "properties": {
                "details": {},
                "type": {"type": "string"}
            }
        },
        "router.linkResponse": {
            "type": "object",
            "properties": {
                "result": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/umdb",
	Schemes:          []string{"http"},
	Title:            "UMDB",
	Description:      "HTTP API over the adb command line for listing, connecting and driving mobile devices",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
