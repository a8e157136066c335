// Package docs holds the swagger document served under /swagger. It follows the layout
// `swag init` produces from the handler annotations and can be regenerated with it.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "API banner",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/health": {
            "get": {
                "description": "Reports whether the database answers a ping. The endpoint itself always returns 200.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/api/classes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns every class, newest first.",
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "List all classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ClassListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Name and teacher are required. Status defaults to active.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Create a class",
                "parameters": [
                    {"description": "Class to create", "name": "class", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ClassInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.ClassCreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/classes/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Case-insensitive substring match on class name or teacher.",
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Search classes",
                "parameters": [
                    {"type": "string", "description": "Search term", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ClassSearchResponse"}},
                    "400": {"description": "Missing search term", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/classes/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Get a class",
                "parameters": [
                    {"type": "string", "description": "Class ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ClassResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Fields left out of the body keep their stored values.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Update a class",
                "parameters": [
                    {"type": "string", "description": "Class ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "class", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ClassInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Delete a class",
                "parameters": [
                    {"type": "string", "description": "Class ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/classes/{id}/recording": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Set the recording URL of a class",
                "parameters": [
                    {"type": "string", "description": "Class ID", "name": "id", "in": "path", "required": true},
                    {"description": "Recording URL", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RecordingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/classes/{id}/transcript": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Set the transcript of a class",
                "parameters": [
                    {"type": "string", "description": "Class ID", "name": "id", "in": "path", "required": true},
                    {"description": "Transcript", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TranscriptRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/classes/{id}/analysis": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Set the analysis data of a class",
                "parameters": [
                    {"type": "string", "description": "Class ID", "name": "id", "in": "path", "required": true},
                    {"description": "Analysis data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AnalysisRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/whisperx/transcribe": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Runs WhisperX on the uploaded file and returns the formatted transcript, segments, speaker roster and participation statistics.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["whisperx"],
                "summary": "Transcribe an audio recording",
                "parameters": [
                    {"type": "file", "description": "Audio file (wav, mp3, mpeg, ogg, webm, m4a, flac; max 100MB)", "name": "audio", "in": "formData", "required": true},
                    {"type": "string", "default": "base", "description": "Whisper model", "name": "model", "in": "formData"},
                    {"type": "string", "default": "es", "description": "Language code", "name": "language", "in": "formData"},
                    {"type": "string", "default": "int8", "description": "Compute type", "name": "compute_type", "in": "formData"},
                    {"type": "integer", "default": 8, "description": "Batch size", "name": "batch_size", "in": "formData"},
                    {"type": "boolean", "default": false, "description": "Enable speaker diarization", "name": "diarize", "in": "formData"},
                    {"type": "integer", "default": 1, "description": "Minimum speakers", "name": "min_speakers", "in": "formData"},
                    {"type": "integer", "default": 5, "description": "Maximum speakers", "name": "max_speakers", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TranscriptionSuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Transcription queue is full", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/whisperx/availability": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["whisperx"],
                "summary": "Check whether WhisperX can be executed",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AvailabilityResponse"}}
                }
            }
        },
        "/api/whisperx/models/{model}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["whisperx"],
                "summary": "Get WhisperX help output for a model",
                "parameters": [
                    {"type": "string", "default": "large-v2", "description": "Model name", "name": "model", "in": "path"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ModelInfoResponse"}}
                }
            }
        },
        "/api/whisperx/debug": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["whisperx"],
                "summary": "Show the configured WhisperX paths",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DebugResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.AnalysisRequest": {
            "type": "object",
            "properties": {"analysisData": {"type": "object"}}
        },
        "handlers.Availability": {
            "type": "object",
            "properties": {"available": {"type": "boolean"}, "timestamp": {"type": "string"}}
        },
        "handlers.AvailabilityResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/handlers.Availability"}, "success": {"type": "boolean", "example": true}}
        },
        "handlers.ClassCreatedResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/handlers.CreatedClass"}, "message": {"type": "string"}, "success": {"type": "boolean", "example": true}}
        },
        "handlers.ClassListResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "data": {"type": "array", "items": {"$ref": "#/definitions/models.Class"}}, "success": {"type": "boolean", "example": true}}
        },
        "handlers.ClassResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/models.Class"}, "success": {"type": "boolean", "example": true}}
        },
        "handlers.ClassSearchResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "data": {"type": "array", "items": {"$ref": "#/definitions/models.Class"}}, "searchTerm": {"type": "string"}, "success": {"type": "boolean", "example": true}}
        },
        "handlers.CreatedClass": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "teacher": {"type": "string"},
                "description": {"type": "string"},
                "subject": {"type": "string"},
                "grade_level": {"type": "string"},
                "duration": {"type": "number"},
                "status": {"type": "string", "enum": ["active", "inactive"]}
            }
        },
        "handlers.DebugResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/models.DebugInfo"}, "success": {"type": "boolean", "example": true}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "message": {"type": "string"}, "success": {"type": "boolean", "example": false}}
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {"database": {"type": "string", "example": "connected"}, "status": {"type": "string", "example": "ok"}, "timestamp": {"type": "string"}}
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "success": {"type": "boolean", "example": true}}
        },
        "handlers.ModelInfoResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/models.ModelInfo"}, "success": {"type": "boolean", "example": true}}
        },
        "handlers.RecordingRequest": {
            "type": "object",
            "required": ["recordingUrl"],
            "properties": {"recordingUrl": {"type": "string", "maxLength": 2048}}
        },
        "handlers.TranscriptRequest": {
            "type": "object",
            "required": ["transcript"],
            "properties": {"transcript": {"type": "string"}}
        },
        "handlers.TranscriptionSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/models.TranscriptionResponse"}, "success": {"type": "boolean", "example": true}}
        },
        "models.Class": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "teacher": {"type": "string"},
                "description": {"type": "string"},
                "subject": {"type": "string"},
                "grade_level": {"type": "string"},
                "duration": {"type": "number"},
                "status": {"type": "string", "enum": ["active", "inactive"]},
                "recording_url": {"type": "string"},
                "transcript": {"type": "string"},
                "analysis_data": {"type": "object"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.ClassInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "teacher": {"type": "string", "maxLength": 255},
                "description": {"type": "string"},
                "subject": {"type": "string", "maxLength": 255},
                "grade_level": {"type": "string", "maxLength": 100},
                "duration": {"type": "number", "minimum": 0},
                "status": {"type": "string", "enum": ["active", "inactive"]}
            }
        },
        "models.DebugInfo": {
            "type": "object",
            "properties": {"environment": {"type": "object", "additionalProperties": {"type": "string"}}, "pythonPath": {"type": "string"}, "whisperXPath": {"type": "string"}}
        },
        "models.Interaction": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "from": {"type": "string"}, "to": {"type": "string"}}
        },
        "models.ModelInfo": {
            "type": "object",
            "properties": {"available": {"type": "boolean"}, "error": {"type": "string"}, "info": {"type": "string"}}
        },
        "models.ParticipationReport": {
            "type": "object",
            "properties": {
                "interactionPatterns": {"type": "array", "items": {"$ref": "#/definitions/models.Interaction"}},
                "speakerStats": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.SpeakerStats"}},
                "totalTime": {"type": "number"}
            }
        },
        "models.Segment": {
            "type": "object",
            "properties": {
                "end": {"type": "number"},
                "speaker": {"type": "string"},
                "start": {"type": "number"},
                "text": {"type": "string"},
                "words": {"type": "array", "items": {"$ref": "#/definitions/models.Word"}}
            }
        },
        "models.SpeakerStats": {
            "type": "object",
            "properties": {"segments": {"type": "integer"}, "time": {"type": "number"}, "words": {"type": "integer"}}
        },
        "models.SpeakerSummary": {
            "type": "object",
            "properties": {"confidence": {"type": "number"}, "id": {"type": "string"}, "type": {"type": "string", "enum": ["professor", "student"]}}
        },
        "models.TranscriptionResponse": {
            "type": "object",
            "properties": {
                "duration": {"type": "number"},
                "language": {"type": "string"},
                "participation": {"$ref": "#/definitions/models.ParticipationReport"},
                "segments": {"type": "array", "items": {"$ref": "#/definitions/models.Segment"}},
                "speakers": {"type": "array", "items": {"$ref": "#/definitions/models.SpeakerSummary"}},
                "transcript": {"type": "string"}
            }
        },
        "models.Word": {
            "type": "object",
            "properties": {"end": {"type": "number"}, "speaker": {"type": "string"}, "start": {"type": "number"}, "word": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MentorAI Backend API",
	Description:      "Class records and WhisperX transcription for MentorAI.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
