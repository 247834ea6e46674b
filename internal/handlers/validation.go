package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerPattern matches exchange ticker symbols: 1-10 characters starting
// with a letter, allowing dots and dashes for share classes like BRK.B.
var tickerPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.\-]{0,9}$`)

var registerValidatorsOnce sync.Once

// RegisterValidators installs custom binding validators on gin's validator
// engine. Safe to call more than once.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
				return tickerPattern.MatchString(fl.Field().String())
			})
		}
	})
}
