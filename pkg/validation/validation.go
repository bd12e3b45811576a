package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"umkm-reels/pkg/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const InvalidMessage = "The given data was invalid."

// Indonesian mobile numbers, local (08...) or country-code (628...) form.
var phonePattern = regexp.MustCompile(`^(08\d{8,12}|628\d{8,12})$`)

var registerOnce sync.Once

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Register installs the custom rules on gin's validator and makes field
// errors use JSON/form names. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		configure(v)
	})
}

// New returns a standalone validator with the same rules.
func New() *validator.Validate {
	v := validator.New()
	configure(v)
	return v
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("idphone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || ValidPhone(s)
	})
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Fields converts validator errors into field -> messages.
func Fields(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		fields[name] = append(fields[name], message(fe))
	}
	return fields
}

// FromBindError turns a gin binding failure into a 422 application error.
func FromBindError(err error) *apperror.Error {
	if fields := Fields(err); fields != nil {
		return apperror.Validation(InvalidMessage, fields)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperror.Field(field, fmt.Sprintf("The %s field has an invalid type.", humanize(field)))
	case errors.As(err, &syntaxErr):
		return apperror.Field("body", "The request body is not valid JSON.")
	default:
		return apperror.Field("body", err.Error())
	}
}

func message(fe validator.FieldError) string {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "idphone":
		return fmt.Sprintf("The %s format is invalid.", field)
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("The %s must be a valid UUID.", field)
	case "latitude", "longitude":
		return fmt.Sprintf("The %s must be a valid %s.", field, fe.Tag())
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
