package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
)

var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	// имена полей в ошибках совпадают с ключами TOML
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	}); err != nil {
		panic(fmt.Errorf("register glob validation: %w", err))
	}
	if err := v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return isIdentifier(fl.Field().String())
	}); err != nil {
		panic(fmt.Errorf("register identifier validation: %w", err))
	}
	return v
})

// Validate checks the struct constraints of cfg and reports every violation
// as "field: problem".
func Validate(cfg *Config) error {
	err := validate().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: %q is not one of %s", field, fe.Value(), fe.Param()))
		case "glob":
			msgs = append(msgs, fmt.Sprintf("%s: invalid glob %q", field, fe.Value()))
		case "identifier":
			msgs = append(msgs, fmt.Sprintf("%s: %q is not an identifier", field, fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}
