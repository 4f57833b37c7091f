// Package docs holds the generated-style swagger document swag.Register
// expects at init time, authored by hand rather than by running `swag
// init` (the toolchain is not invoked in this build). Its shape mirrors
// what that generator would emit: a SwaggerInfo struct plus a raw JSON
// template registered under its InstanceName.
package docs

import (
	"github.com/swaggo/swag"
)

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "OpenADR 3.0 VTN authorization and visibility kernel.",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe, pings the storage backend",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/auth/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Issue a bearer token via the client-credentials grant",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/programs": {
            "get": {
                "tags": ["programs"],
                "summary": "List programs visible to the caller",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["programs"],
                "summary": "Create a program",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds the runtime-filled template parameters, the same
// fields swag's generated file exposes.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "OpenADR VTN Kernel API",
	Description:      "OpenADR 3.0 VTN authorization and visibility kernel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
