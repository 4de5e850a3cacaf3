// Package docs holds the swagger descriptor served at /swagger. Regenerate
// with swag init -g cmd/api/main.go -o internal/docs after changing handler
// annotations.
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
		"/categories": {
			"get": {
				"tags": [
					"categories"
				],
				"summary": "List categories",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "boolean",
						"description": "Only active categories",
						"name": "active_only",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"categories"
				],
				"summary": "Create a category",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreateCategoryRequest"
						}
					}
				]
			}
		},
		"/categories/tree": {
			"get": {
				"tags": [
					"categories"
				],
				"summary": "Category tree",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "boolean",
						"description": "Only active categories",
						"name": "active_only",
						"in": "query"
					}
				]
			}
		},
		"/categories/bulk": {
			"post": {
				"tags": [
					"categories"
				],
				"summary": "Bulk category action",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.BulkCategoryRequest"
						}
					}
				]
			}
		},
		"/categories/{id}": {
			"get": {
				"tags": [
					"categories"
				],
				"summary": "Get category by ID",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Category ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"categories"
				],
				"summary": "Update category",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Category ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.UpdateCategoryRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"categories"
				],
				"summary": "Remove category",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Category ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/budgets": {
			"get": {
				"tags": [
					"budgets"
				],
				"summary": "List budgets",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Filter by status",
						"name": "status",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Filter by type",
						"name": "type",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Items per page",
						"name": "page_size",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"budgets"
				],
				"summary": "Create a budget",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreateBudgetRequest"
						}
					}
				]
			}
		},
		"/budgets/{id}": {
			"get": {
				"tags": [
					"budgets"
				],
				"summary": "Get budget by ID",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Budget ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/budgets/{id}/status": {
			"patch": {
				"tags": [
					"budgets"
				],
				"summary": "Update budget status",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Budget ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.UpdateBudgetStatusRequest"
						}
					}
				]
			}
		},
		"/budgets/{id}/items": {
			"post": {
				"tags": [
					"budgets"
				],
				"summary": "Add budget item",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Budget ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.AddBudgetItemRequest"
						}
					}
				]
			}
		},
		"/budgets/{id}/items/{itemId}": {
			"put": {
				"tags": [
					"budgets"
				],
				"summary": "Update budget item",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Budget ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Budget item ID",
						"name": "itemId",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.UpdateBudgetItemRequest"
						}
					}
				]
			}
		},
		"/budgets/{id}/items/{itemId}/actual": {
			"put": {
				"tags": [
					"budgets"
				],
				"summary": "Override item actual amount",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Budget ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Budget item ID",
						"name": "itemId",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SetActualAmountRequest"
						}
					}
				]
			}
		},
		"/budgets/{id}/transactions": {
			"get": {
				"tags": [
					"budgets"
				],
				"summary": "List budget transactions",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Budget ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Items per page",
						"name": "page_size",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"budgets"
				],
				"summary": "Record budget transaction",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Budget ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.RecordTransactionRequest"
						}
					}
				]
			}
		},
		"/budgets/{id}/audit": {
			"get": {
				"tags": [
					"budgets"
				],
				"summary": "Budget audit trail",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Budget not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Budget ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Maximum entries (default 20, max 200)",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/budgets/{id}/reconciliation": {
			"get": {
				"tags": [
					"budgets"
				],
				"summary": "Budget reconciliation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Budget ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/reports/comparative": {
			"get": {
				"tags": [
					"reports"
				],
				"summary": "Comparative report",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "current, last_month, quarter, year or custom",
						"name": "period",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Custom period start (YYYY-MM-DD)",
						"name": "start_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Custom period end (YYYY-MM-DD)",
						"name": "end_date",
						"in": "query"
					}
				]
			}
		},
		"/reports/{kind}": {
			"get": {
				"tags": [
					"reports"
				],
				"summary": "Generate report",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Report kind",
						"name": "kind",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Row grouping",
						"name": "group_by",
						"in": "query"
					},
					{
						"type": "string",
						"description": "current, last_month, quarter, year or custom",
						"name": "period",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Custom period start (YYYY-MM-DD)",
						"name": "start_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Custom period end (YYYY-MM-DD)",
						"name": "end_date",
						"in": "query"
					}
				]
			}
		}
	},
	"definitions": {
		"handlers.ErrorDetail": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"handlers.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"$ref": "#/definitions/handlers.ErrorDetail"
				}
			}
		},
		"handlers.CreateCategoryRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"parent_id": {
					"type": "string"
				},
				"color": {
					"type": "string"
				},
				"icon": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"handlers.UpdateCategoryRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"parent_id": {
					"type": "string"
				},
				"color": {
					"type": "string"
				},
				"icon": {
					"type": "string"
				}
			}
		},
		"handlers.BulkCategoryRequest": {
			"type": "object",
			"properties": {
				"action": {
					"type": "string",
					"enum": [
						"activate",
						"deactivate",
						"delete"
					]
				},
				"ids": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			},
			"required": [
				"action",
				"ids"
			]
		},
		"handlers.BudgetItemRequest": {
			"type": "object",
			"properties": {
				"category_id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"budgeted_amount": {
					"type": "string"
				}
			}
		},
		"handlers.CreateBudgetRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"type": {
					"type": "string",
					"enum": [
						"monthly",
						"quarterly",
						"yearly",
						"custom"
					]
				},
				"start_date": {
					"type": "string"
				},
				"end_date": {
					"type": "string"
				},
				"total_amount": {
					"type": "string"
				},
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handlers.BudgetItemRequest"
					}
				}
			},
			"required": [
				"name",
				"type",
				"start_date",
				"end_date",
				"total_amount"
			]
		},
		"handlers.UpdateBudgetStatusRequest": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"draft",
						"active",
						"closed"
					]
				}
			},
			"required": [
				"status"
			]
		},
		"handlers.AddBudgetItemRequest": {
			"type": "object",
			"properties": {
				"category_id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"budgeted_amount": {
					"type": "string"
				}
			},
			"required": [
				"name",
				"budgeted_amount"
			]
		},
		"handlers.UpdateBudgetItemRequest": {
			"type": "object",
			"properties": {
				"category_id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"budgeted_amount": {
					"type": "string"
				}
			}
		},
		"handlers.SetActualAmountRequest": {
			"type": "object",
			"properties": {
				"actual_amount": {
					"type": "string"
				}
			},
			"required": [
				"actual_amount"
			]
		},
		"handlers.RecordTransactionRequest": {
			"type": "object",
			"properties": {
				"budget_item_id": {
					"type": "string"
				},
				"amount": {
					"type": "string"
				},
				"transaction_date": {
					"type": "string"
				},
				"description": {
					"type": "string"
				}
			},
			"required": [
				"budget_item_id",
				"amount",
				"transaction_date"
			]
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and JWT token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "POS Finance API",
	Description:      "Category hierarchy, budget ledger and finance reports for a point-of-sale backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
