package models

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"

	"bitbucket.org/mmdatafocus/zohobooks/utils"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the validator used for request views. It reads `binding` tags,
// like gin, and reports json field names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.SetTagName("binding")
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		// a zero decimal counts as unset for "required"
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			d, ok := field.Interface().(decimal.Decimal)
			if !ok || d.IsZero() {
				return nil
			}
			return d.String()
		}, decimal.Decimal{})
		validate = v
	})
	return validate
}

// ValidationError lists the fields of a request view that failed validation,
// keyed by their json path.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func validateStruct(input any) error {
	err := Validator().Struct(input)
	if err == nil {
		return nil
	}
	fields := utils.ProcessValidationErrors(err)
	if fields == nil {
		return err
	}
	trimmed := make(map[string]string, len(fields))
	for k, tag := range fields {
		trimmed[jsonPath(k)] = tag
	}
	return &ValidationError{Fields: trimmed}
}

// jsonPath turns "UpdateContact.CreateContact.contact_name" into "contact_name".
// The struct name and embedded structs appear under their Go names; json names never start upper case.
func jsonPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ".")
}
