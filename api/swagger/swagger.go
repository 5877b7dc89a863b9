package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Study Plan API",
        "description": "Weekly study schedule generator",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Planner", "description": "Weekly plan generation, validation, and export"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/plan/generate": {
            "post": {
                "tags": ["Planner"],
                "summary": "Generate a weekly study plan",
                "responses": {
                    "200": {"description": "Generated plan with capacity report"},
                    "400": {"description": "Malformed snapshot"}
                }
            }
        },
        "/api/v1/plan/export": {
            "post": {
                "tags": ["Planner"],
                "summary": "Download the generated plan as csv, pdf, or ics",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered plan"},
                    "400": {"description": "Malformed snapshot or unsupported format"}
                }
            }
        },
        "/api/v1/constraints/validate": {
            "post": {
                "tags": ["Planner"],
                "summary": "Validate a candidate constraint",
                "responses": {
                    "200": {"description": "Constraint is well formed"},
                    "400": {"description": "Constraint is malformed"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
