// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/audit": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "Recent operator actions, newest first",
                "parameters": [
                    {"type": "string", "description": "Only events of this shop", "name": "shop_id", "in": "query"},
                    {"type": "integer", "description": "Page size (1-100, default 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.auditResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/commissions": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["commissions"],
                "summary": "Refresh and return the commissions of the selected shop",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.CommissionState"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/commissions/{week_id}/pay": {
            "post": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["commissions"],
                "summary": "Mark a week of the selected shop as paid",
                "parameters": [
                    {"type": "string", "description": "Week id", "name": "week_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.CommissionState"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current console session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Log in to the shop API",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "delete": {
                "tags": ["session"],
                "summary": "Log out",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/shops": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["shops"],
                "summary": "Refresh and return the shop list view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shopsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/shops/form": {
            "put": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shops"],
                "summary": "Create or update a shop",
                "parameters": [
                    {"description": "Shop form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.shopFormRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shopsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/shops/{shop_id}": {
            "delete": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["shops"],
                "summary": "Delete a shop",
                "parameters": [
                    {"type": "string", "description": "Shop id", "name": "shop_id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Must be true", "name": "confirm", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shopsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/shops/{shop_id}/edit": {
            "post": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["shops"],
                "summary": "Load a shop into the form",
                "parameters": [
                    {"type": "string", "description": "Shop id", "name": "shop_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shopsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/shops/{shop_id}/ledger": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["commissions"],
                "summary": "Commission ledger of a shop",
                "parameters": [
                    {"type": "string", "description": "Shop id", "name": "shop_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ledgerResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/shops/{shop_id}/range": {
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shops"],
                "summary": "Store the commission date filter of the selected shop",
                "parameters": [
                    {"type": "string", "description": "Shop id", "name": "shop_id", "in": "path", "required": true},
                    {"description": "Date range", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.dateRangeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shopsResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/shops/{shop_id}/select": {
            "post": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["shops"],
                "summary": "Select a shop and load its commissions",
                "parameters": [
                    {"type": "string", "description": "Shop id", "name": "shop_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shopsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "domain.AuditEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "action": {"type": "string"},
                "session_id": {"type": "string"},
                "username": {"type": "string"},
                "shop_id": {"type": "string"},
                "week_id": {"type": "string"},
                "outcome": {"type": "string"},
                "occurred_at": {"type": "string"}
            }
        },
        "domain.CommissionEntry": {
            "type": "object",
            "properties": {
                "round_id": {"type": "string"},
                "amount": {"type": "number"}
            }
        },
        "domain.Shop": {
            "type": "object",
            "properties": {
                "shop_id": {"type": "string"},
                "username": {"type": "string"},
                "balance": {"type": "number"},
                "billing_type": {"type": "string", "enum": ["prepaid", "postpaid"]}
            }
        },
        "domain.ShopForm": {
            "type": "object",
            "properties": {
                "shop_id": {"type": "string"},
                "username": {"type": "string"},
                "balance": {"type": "string"},
                "billing_type": {"type": "string"}
            }
        },
        "handler.auditResponse": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"$ref": "#/definitions/domain.AuditEvent"}}
            }
        },
        "handler.dateRangeRequest": {
            "type": "object",
            "properties": {
                "start": {"type": "string"},
                "end": {"type": "string"}
            }
        },
        "handler.ledgerResponse": {
            "type": "object",
            "properties": {
                "shop_id": {"type": "string"},
                "commissions": {"type": "object", "additionalProperties": {"$ref": "#/definitions/domain.CommissionEntry"}}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {"route": {"type": "string"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "authenticated": {"type": "boolean"},
                "login": {"$ref": "#/definitions/service.LoginState"}
            }
        },
        "handler.shopFormRequest": {
            "type": "object",
            "properties": {
                "shop_id": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"},
                "balance": {"type": "string"},
                "billing_type": {"type": "string", "enum": ["prepaid", "postpaid"]}
            }
        },
        "handler.shopsResponse": {
            "type": "object",
            "properties": {
                "shops": {"type": "array", "items": {"$ref": "#/definitions/domain.Shop"}},
                "form": {"$ref": "#/definitions/domain.ShopForm"},
                "editing": {"type": "boolean"},
                "error": {"type": "string"},
                "success": {"type": "string"},
                "selected_shop_id": {"type": "string"},
                "date_range": {"$ref": "#/definitions/handler.dateRangeRequest"},
                "commissions": {"$ref": "#/definitions/service.CommissionState"}
            }
        },
        "service.CommissionRow": {
            "type": "object",
            "properties": {
                "week_id": {"type": "string"},
                "week": {"type": "string"},
                "total_commission": {"type": "string"},
                "total_payment": {"type": "string"},
                "status": {"type": "string"},
                "paid": {"type": "boolean"},
                "can_mark_paid": {"type": "boolean"}
            }
        },
        "service.CommissionState": {
            "type": "object",
            "properties": {
                "shop_id": {"type": "string"},
                "loading": {"type": "boolean"},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/service.CommissionRow"}},
                "error": {"type": "string"},
                "success": {"type": "string"}
            }
        },
        "service.LoginState": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {
            "type": "apiKey",
            "name": "shop_console_session",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Shop Console API",
	Description:      "JSON surface of the shop administration console.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
