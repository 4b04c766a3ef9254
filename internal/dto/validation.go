package dto

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
)

// RegisterValidations installs the ledger's custom binding rules on gin's
// validator engine. Call once at startup before serving or binding.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("ledgerdate", validLedgerDate)
}

// validLedgerDate accepts calendar dates in YYYY-MM-DD form only.
func validLedgerDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.DateLayout, fl.Field().String())
	return err == nil
}
