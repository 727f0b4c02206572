// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finanzas/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("bucket_kind", validateBucketKind)
		_ = v.RegisterValidation("bucket_role", validateBucketRole)
		_ = v.RegisterValidation("period_year", validatePeriodYear)
		_ = v.RegisterValidation("period_month", validatePeriodMonth)
		_ = v.RegisterValidation("amount_partition", validateAmountPartition)
		_ = v.RegisterValidation("extra_list", validateExtraList)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateBucketKind(fl validator.FieldLevel) bool {
	switch models.BucketKind(fl.Field().String()) {
	case models.BucketKindNone, models.BucketKindInvestment:
		return true
	}
	return false
}

func validateBucketRole(fl validator.FieldLevel) bool {
	switch models.BucketRole(fl.Field().String()) {
	case models.BucketRoleLiving, models.BucketRoleInvestment, models.BucketRoleLeisure, models.BucketRoleOther:
		return true
	}
	return false
}

func validatePeriodYear(fl validator.FieldLevel) bool {
	return models.ValidYear(fl.Field().String())
}

func validatePeriodMonth(fl validator.FieldLevel) bool {
	return models.ValidMonth(fl.Field().String())
}

func validateAmountPartition(fl validator.FieldLevel) bool {
	switch models.AmountPartition(fl.Field().String()) {
	case models.PartitionExpense, models.PartitionInvestmentPesos, models.PartitionInvestmentUSD:
		return true
	}
	return false
}

func validateExtraList(fl validator.FieldLevel) bool {
	switch models.ExtraList(fl.Field().String()) {
	case models.ExtraListLiving, models.ExtraListInvestment, models.ExtraListLeisure:
		return true
	}
	return false
}
