// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Listed symbols are short uppercase tickers, optionally with an exchange
// suffix (e.g. RELIANCE, TCS.BSE).
var symbolRegex = regexp.MustCompile(`^[A-Z0-9&-]{1,20}(\.[A-Z]{1,5})?$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("order_side", validateOrderSide)
		_ = v.RegisterValidation("order_type", validateOrderType)
		_ = v.RegisterValidation("symbol", validateSymbol)
	}
}

func validateOrderSide(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "BUY", "SELL":
		return true
	}
	return false
}

func validateOrderType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "MARKET", "LIMIT":
		return true
	}
	return false
}

func validateSymbol(fl validator.FieldLevel) bool {
	return symbolRegex.MatchString(fl.Field().String())
}
