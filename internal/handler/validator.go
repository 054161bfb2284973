package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// Validator checks request bodies against their struct tags. Besides the
// stock rules it knows shopifygid and specialty.
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	requestValid  *Validator
)

// GetValidator returns the shared request validator.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("shopifygid", validateShopifyGID)
		_ = v.RegisterValidation("specialty", validateSpecialtyType)
		requestValid = &Validator{validate: v}
	})
	return requestValid
}

// ValidateStruct validates s using its tags.
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// jsonFieldName reports fields under the name clients send.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// FormatValidationError maps each failing field, keyed by its JSON name, to
// a message for the client. Errors that are not validation failures come
// back under "error".
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "shopifygid":
		return "Must be a Shopify global id (" + shopifyGIDPrefix + "...)"
	case "specialty":
		return "Unknown specialty type"
	case "url":
		return "Must be an absolute URL"
	case "max", "lte":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	}
	return "Invalid value"
}

// shopifyGIDPrefix starts every Storefront global id.
const shopifyGIDPrefix = "gid://shopify/"

// validateShopifyGID accepts gid://shopify/<Type>/<id>. Empty values are
// left to required.
func validateShopifyGID(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	rest, ok := strings.CutPrefix(v, shopifyGIDPrefix)
	if !ok {
		return false
	}
	kind, id, found := strings.Cut(rest, "/")
	return found && kind != "" && id != ""
}

func validateSpecialtyType(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == "" || domain.SpecialtyType(v).Valid()
}
