package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// glAccountRe accepts the account code shapes the external packages use:
// bare digits, slash-separated segments ("8400/000") or dashed codes.
var glAccountRe = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z/ .\-]{0,49}$`)

// registerCustomValidators attaches domain validations to gin's binding
// validator so request structs can use them in their binding tags.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("glaccount", func(fl validator.FieldLevel) bool {
		return glAccountRe.MatchString(fl.Field().String())
	})
}
