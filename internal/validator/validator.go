// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"posfinance/internal/models"
	"posfinance/internal/period"
	"posfinance/internal/services"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("budget_type", validateBudgetType)
		_ = v.RegisterValidation("budget_status", validateBudgetStatus)
		_ = v.RegisterValidation("period_keyword", validatePeriodKeyword)
		_ = v.RegisterValidation("report_kind", validateReportKind)
		_ = v.RegisterValidation("bulk_action", validateBulkAction)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateBudgetType(fl validator.FieldLevel) bool {
	return models.BudgetType(fl.Field().String()).Valid()
}

func validateBudgetStatus(fl validator.FieldLevel) bool {
	return models.BudgetStatus(fl.Field().String()).Valid()
}

func validatePeriodKeyword(fl validator.FieldLevel) bool {
	return period.Keyword(fl.Field().String()).Valid()
}

func validateReportKind(fl validator.FieldLevel) bool {
	return services.ReportKind(fl.Field().String()).Valid()
}

func validateBulkAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "activate", "deactivate", "delete":
		return true
	}
	return false
}
