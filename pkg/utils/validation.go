package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestID"

// MinimumGuestAge applies to every line item of an order.
const MinimumGuestAge = 18

var (
	mobileRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	utrRegex    = regexp.MustCompile(`^[0-9]{12}$`)

	registerOnce sync.Once
)

// IsValidMobile reports whether s looks like a phone number: optional '+', 10-15 digits.
func IsValidMobile(s string) bool {
	return mobileRegex.MatchString(strings.TrimSpace(s))
}

// IsValidUTR reports whether s is a 12-digit payment reference.
func IsValidUTR(s string) bool {
	return utrRegex.MatchString(s)
}

// IsAdultAge parses a free-text age and checks it against MinimumGuestAge.
func IsAdultAge(age string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(age))
	return err == nil && n >= MinimumGuestAge
}

// RegisterValidators adds the custom binding tags `mobile`, `adult` and `utr`
// to gin's validator engine. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
			return IsValidMobile(fl.Field().String())
		})
		_ = v.RegisterValidation("adult", func(fl validator.FieldLevel) bool {
			return IsAdultAge(fl.Field().String())
		})
		_ = v.RegisterValidation("utr", func(fl validator.FieldLevel) bool {
			return IsValidUTR(fl.Field().String())
		})
	})
}

// DescribeValidationError flattens validator errors into a short message.
func DescribeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "adult":
			parts = append(parts, "only guests aged 18 or above are allowed")
		case "mobile":
			parts = append(parts, fe.Field()+" must be a valid mobile number")
		case "utr":
			parts = append(parts, fe.Field()+" must be exactly 12 digits")
		default:
			parts = append(parts, fe.Field()+" failed "+fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}
