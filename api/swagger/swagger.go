package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "University Portal API",
        "description": "Academic analytics and records engine",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Records", "description": "GPA aggregation and academic records"},
        {"name": "Degree", "description": "Degree progress and graduation eligibility"},
        {"name": "Transcript", "description": "Transcript assembly and export"},
        {"name": "Sessions", "description": "Study session tracking"},
        {"name": "Analytics", "description": "Study statistics, patterns and efficiency"},
        {"name": "Recommendations", "description": "Personalised study recommendations"},
        {"name": "Charts", "description": "Render-ready chart series"},
        {"name": "Goals", "description": "Learning goal tracking"}
    ],
    "paths": {
        "/students/{id}/academic-record": {
            "get": {
                "tags": ["Records"],
                "summary": "Full academic record",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{id}/academic-record/summary": {
            "get": {
                "tags": ["Records"],
                "summary": "Compact academic summary",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/enrollments/{enrollmentId}/grade": {
            "put": {
                "tags": ["Records"],
                "summary": "Finalize an enrollment with a terminal status and grade",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "enrollmentId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Enrollment already finalized"}
                }
            }
        },
        "/students/{id}/degree-progress": {
            "get": {
                "tags": ["Degree"],
                "summary": "Degree progress snapshot",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No requirements table configured"}
                }
            }
        },
        "/students/{id}/transcript": {
            "get": {
                "tags": ["Transcript"],
                "summary": "Assembled transcript",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "text"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/students/{id}/study-sessions": {
            "get": {
                "tags": ["Sessions"],
                "summary": "List study sessions",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Sessions"],
                "summary": "Record a manual study session",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/study-sessions/{sessionId}": {
            "put": {
                "tags": ["Sessions"],
                "summary": "Update a manual study session",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "sessionId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Delete a manual study session",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "sessionId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Derived sessions cannot be deleted"}
                }
            }
        },
        "/students/{id}/analytics/study": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Aggregate study statistics",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/analytics/patterns": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Mined study patterns",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/analytics/efficiency": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Focus score, trend and burnout risk",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/recommendations": {
            "get": {
                "tags": ["Recommendations"],
                "summary": "Prioritised study recommendations",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/charts/{series}": {
            "get": {
                "tags": ["Charts"],
                "summary": "Render-ready chart series",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "series", "in": "path", "type": "string", "required": true, "enum": ["gpa-trend", "weekly-pattern", "category-progress", "hourly-efficiency"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown series key"}
                }
            }
        },
        "/students/{id}/goals": {
            "get": {
                "tags": ["Goals"],
                "summary": "List learning goals",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Goals"],
                "summary": "Declare a learning goal",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/goals/{goalId}": {
            "put": {
                "tags": ["Goals"],
                "summary": "Advance goal progress or transition status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "goalId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
