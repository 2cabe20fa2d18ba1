package validate

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Violation is a single broken field rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is the full set of broken rules for one payload.
// Validation is exhaustive: every rule is checked, not only the first.
type Violations struct {
	Items []Violation
}

func (v *Violations) Error() string {
	msgs := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		msgs = append(msgs, item.Field+": "+item.Message)
	}
	return strings.Join(msgs, "; ")
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// report fields by their json name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("currentyear", notInFuture)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &Violations{Items: make([]Violation, 0, len(verrs))}
	for _, fe := range verrs {
		out.Items = append(out.Items, Violation{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

// notInFuture bounds a publication year by the current calendar year.
func notInFuture(fl validator.FieldLevel) bool {
	return fl.Field().Int() <= int64(time.Now().Year())
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "currentyear":
		return fmt.Sprintf("%s must not be in the future", fe.Field())
	case "hexadecimal", "len":
		return fmt.Sprintf("%s is not a valid identifier", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
