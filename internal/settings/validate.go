package settings

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"wc-invoice-gateway/internal/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report option names rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// document is the typed view of a bucket that validation runs against.
type document struct {
	Title            string   `json:"title" validate:"max=200"`
	Description      string   `json:"description" validate:"max=2000"`
	Instructions     string   `json:"instructions" validate:"max=2000"`
	OrderStatus      string   `json:"order_status" validate:"omitempty,oneof=pending processing on-hold completed"`
	EnableForMethods []string `json:"enable_for_methods" validate:"dive,max=128"`
	UserRoles        []string `json:"user_roles" validate:"dive,max=64"`
}

// Validate checks a bucket for values the store would never have written.
// The Resolver tolerates all of them; callers use this to warn operators.
func Validate(s Settings) error {
	doc := document{
		Title:            stringValue(s, KeyTitle),
		Description:      stringValue(s, KeyDescription),
		Instructions:     stringValue(s, KeyInstructions),
		OrderStatus:      string(model.OrderStatus(stringValue(s, KeyOrderStatus)).Normalize()),
		EnableForMethods: stringSet(s[KeyEnableForMethods]),
		UserRoles:        stringSet(s[KeyUserRoles]),
	}

	err := validate.Struct(doc)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return model.NewValidationError(OptionName, err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return model.NewValidationError(OptionName, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s exceeds %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func stringValue(s Settings, key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}
