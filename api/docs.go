// Package api contains the OpenAPI description of the HTTP API, served
// at /docs.
package api

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
        "/": {
            "get": {
                "description": "Entrypoint for the API, listing all endpoints",
                "tags": ["General"],
                "summary": "API root",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/router.RootResponse"}
                    }
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the software version of the API",
                "tags": ["General"],
                "summary": "API version",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/router.VersionResponse"}
                    }
                }
            }
        },
        "/v1": {
            "get": {
                "description": "Returns general information about the v1 API",
                "tags": ["v1"],
                "summary": "v1 API",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/v1.Response"}
                    }
                }
            }
        },
        "/v1/envelopes": {
            "get": {
                "description": "Returns all envelopes of the owner, filtered by the query parameters",
                "tags": ["Envelopes"],
                "summary": "Get envelopes",
                "parameters": [
                    {"type": "string", "description": "Filter by category", "name": "category", "in": "query"},
                    {"type": "string", "description": "Filter by title, '*' matches any number of characters", "name": "title", "in": "query"},
                    {"type": "string", "description": "Search for this text in title and category", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/v1.EnvelopeListResponse"}
                    }
                }
            },
            "post": {
                "description": "Creates a new envelope on the remote service and adds it to the store",
                "tags": ["Envelopes"],
                "summary": "Create envelope",
                "parameters": [
                    {
                        "description": "Envelope",
                        "name": "envelope",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/v1.EnvelopeEditable"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}}
                }
            }
        },
        "/v1/envelopes/sync": {
            "post": {
                "description": "Replaces all envelopes in the store with the envelopes of the remote service",
                "tags": ["Envelopes"],
                "summary": "Synchronize envelopes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.EnvelopeListResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/v1.EnvelopeListResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/v1.EnvelopeListResponse"}}
                }
            }
        },
        "/v1/envelopes/ws": {
            "get": {
                "description": "Upgrades to a websocket connection that receives a message for every change of the store",
                "tags": ["Envelopes"],
                "summary": "Change feed",
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/v1.httpError"}}
                }
            }
        },
        "/v1/envelopes/{id}": {
            "get": {
                "description": "Returns a specific envelope",
                "tags": ["Envelopes"],
                "summary": "Get Envelope",
                "parameters": [
                    {"type": "string", "description": "ID formatted as string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}}
                }
            },
            "delete": {
                "description": "Deletes an envelope on the remote service and removes it from the store",
                "tags": ["Envelopes"],
                "summary": "Delete envelope",
                "parameters": [
                    {"type": "string", "description": "ID formatted as string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/v1.httpError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/v1.httpError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/v1.httpError"}}
                }
            },
            "patch": {
                "description": "Updates an envelope. Only values to be updated need to be specified.",
                "tags": ["Envelopes"],
                "summary": "Update envelope",
                "parameters": [
                    {"type": "string", "description": "ID formatted as string", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Envelope",
                        "name": "envelope",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/v1.EnvelopeEditable"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/v1.EnvelopeResponse"}}
                }
            }
        },
        "/v1/summary": {
            "get": {
                "description": "Returns the totals over all envelopes and the breakdown per category",
                "tags": ["Summary"],
                "summary": "Budget summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.SummaryResponse"}}
                }
            }
        },
        "/v1/categories": {
            "get": {
                "description": "Returns the known categories and the categories in use",
                "tags": ["Summary"],
                "summary": "Categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.CategoriesResponse"}}
                }
            }
        }
    },
    "definitions": {
        "router.RootResponse": {
            "type": "object",
            "properties": {
                "links": {"$ref": "#/definitions/router.RootLinks"}
            }
        },
        "router.RootLinks": {
            "type": "object",
            "properties": {
                "docs": {"type": "string", "example": "https://example.com/api/docs/index.html"},
                "version": {"type": "string", "example": "https://example.com/api/version"},
                "metrics": {"type": "string", "example": "https://example.com/api/metrics"},
                "v1": {"type": "string", "example": "https://example.com/api/v1"}
            }
        },
        "router.VersionResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {
                        "version": {"type": "string", "example": "1.1.0"}
                    }
                }
            }
        },
        "v1.Response": {
            "type": "object",
            "properties": {
                "links": {
                    "type": "object",
                    "properties": {
                        "envelopes": {"type": "string", "example": "https://example.com/api/v1/envelopes"},
                        "summary": {"type": "string", "example": "https://example.com/api/v1/summary"},
                        "categories": {"type": "string", "example": "https://example.com/api/v1/categories"}
                    }
                }
            }
        },
        "v1.httpError": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "An ID specified in the query string was not a valid ID"}
            }
        },
        "v1.EnvelopeEditable": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "Groceries"},
                "category": {"type": "string", "example": "Food & Dining"},
                "description": {"type": "string", "example": "Weekly shopping"},
                "allocatedAmount": {"type": "number", "example": 400},
                "spentAmount": {"type": "number", "example": 125.5}
            }
        },
        "v1.Envelope": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "65392deb-5e92-4268-b114-297faad6cdce"},
                "title": {"type": "string", "example": "Groceries"},
                "category": {"type": "string", "example": "Food & Dining"},
                "description": {"type": "string", "example": "Weekly shopping"},
                "allocatedAmount": {"type": "number", "example": 400},
                "spentAmount": {"type": "number", "example": 125.5},
                "available": {"type": "number", "example": 274.5},
                "progress": {"type": "integer", "example": 31},
                "links": {
                    "type": "object",
                    "properties": {
                        "self": {"type": "string", "example": "https://example.com/api/v1/envelopes/65392deb-5e92-4268-b114-297faad6cdce"}
                    }
                }
            }
        },
        "v1.EnvelopeResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/v1.Envelope"},
                "error": {"type": "string"}
            }
        },
        "v1.EnvelopeListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/v1.Envelope"}},
                "loading": {"type": "boolean", "example": false},
                "error": {"type": "string"}
            }
        },
        "store.CategorySummary": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "example": "Food & Dining"},
                "count": {"type": "integer", "example": 3},
                "allocated": {"type": "number", "example": 600},
                "spent": {"type": "number", "example": 245.5}
            }
        },
        "store.Summary": {
            "type": "object",
            "properties": {
                "totalAllocated": {"type": "number", "example": 1500},
                "totalSpent": {"type": "number", "example": 820.25},
                "remaining": {"type": "number", "example": 679.75},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/store.CategorySummary"}}
            }
        },
        "v1.SummaryResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/store.Summary"}
            }
        },
        "v1.CategoriesResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {
                        "known": {"type": "array", "items": {"type": "string"}},
                        "inUse": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
