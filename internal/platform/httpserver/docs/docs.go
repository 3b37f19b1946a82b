// Package docs registers the OpenAPI document served at /swagger/doc.json.
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
    "paths": {
        "/v1/faucet/claims/token": {
            "post": {
                "summary": "Claim the configured token disbursement once per account",
                "parameters": [
                    {"type": "string", "name": "X-Account-Address", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "already claimed, asset not configured, or insufficient balance"},
                    "503": {"description": "claims paused"}
                }
            }
        },
        "/v1/faucet/claims/currency": {
            "post": {
                "summary": "Claim the configured native-currency disbursement once per account",
                "parameters": [
                    {"type": "string", "name": "X-Account-Address", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "already claimed or insufficient balance"},
                    "503": {"description": "claims paused"}
                }
            }
        },
        "/v1/faucet/claims/{account}": {
            "get": {
                "summary": "Report whether an account has claimed",
                "parameters": [
                    {"type": "string", "name": "account", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/faucet/status": {
            "get": {
                "summary": "Ledger configuration and held balances",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/faucet/fund": {
            "post": {
                "summary": "Deposit native currency into the ledger",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/faucet/admin/claims/{account}/reset": {
            "post": {
                "summary": "Clear one account's claimed flag (owner only)",
                "parameters": [
                    {"type": "string", "name": "X-Account-Address", "in": "header", "required": true},
                    {"type": "string", "name": "account", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "caller is not the owner"}
                }
            }
        },
        "/v1/faucet/admin/asset": {
            "put": {
                "summary": "Replace the distributed asset (owner only)",
                "parameters": [
                    {"type": "string", "name": "X-Account-Address", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "zero asset address"},
                    "403": {"description": "caller is not the owner"}
                }
            }
        },
        "/v1/faucet/admin/amount": {
            "put": {
                "summary": "Replace the per-claim disbursement amount (owner only)",
                "parameters": [
                    {"type": "string", "name": "X-Account-Address", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "caller is not the owner"}
                }
            }
        },
        "/v1/faucet/admin/pause": {
            "post": {
                "summary": "Pause claim operations (owner only)",
                "parameters": [
                    {"type": "string", "name": "X-Account-Address", "in": "header", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "caller is not the owner"}}
            }
        },
        "/v1/faucet/admin/unpause": {
            "post": {
                "summary": "Resume claim operations (owner only)",
                "parameters": [
                    {"type": "string", "name": "X-Account-Address", "in": "header", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "caller is not the owner"}}
            }
        },
        "/v1/faucet/admin/withdrawals/asset": {
            "post": {
                "summary": "Withdraw held tokens of any asset (owner only)",
                "parameters": [
                    {"type": "string", "name": "X-Account-Address", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "caller is not the owner"},
                    "502": {"description": "transfer failed"}
                }
            }
        },
        "/v1/faucet/admin/withdrawals/currency": {
            "post": {
                "summary": "Withdraw held native currency (owner only)",
                "parameters": [
                    {"type": "string", "name": "X-Account-Address", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "caller is not the owner"},
                    "502": {"description": "transfer failed"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Faucet Claim Ledger API",
	Description:      "Single-claim value distribution ledger",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
