package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

func init() {
	// Zoho rejects quoted numbers on write.
	decimal.MarshalJSONWithoutQuotes = true
}

// CustomFieldPrefix starts every organization-defined field key returned inline by the API.
const CustomFieldPrefix = "cf_"

// Extensions holds every key of an API object that is not bound to a typed field,
// most notably the inline "cf_*" custom field values. Values stay raw until read.
type Extensions map[string]json.RawMessage

// Keys returns the extension keys in sorted order.
func (e Extensions) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e Extensions) Get(key string) (json.RawMessage, bool) {
	v, ok := e[key]
	return v, ok
}

// String returns the value as text. Strings are unquoted, numbers and booleans keep their literal form.
func (e Extensions) String(key string) (string, bool) {
	raw, ok := e[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return "", true
	}
	return trimmed, true
}

// Set stores value under key, encoded as JSON.
func (e *Extensions) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("extension %s: %w", key, err)
	}
	if *e == nil {
		*e = Extensions{}
	}
	(*e)[key] = raw
	return nil
}

// CustomFields returns only the "cf_" prefixed entries.
func (e Extensions) CustomFields() Extensions {
	out := Extensions{}
	for k, v := range e {
		if strings.HasPrefix(k, CustomFieldPrefix) {
			out[k] = v
		}
	}
	return out
}

// Decode copies the extensions into out, a pointer to a struct whose fields carry
// `json:"cf_..."` tags. Values are weakly typed: "12" decodes into an int field.
func (e Extensions) Decode(out any) error {
	values := make(map[string]any, len(e))
	for k, raw := range e {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("extension %s: %w", k, err)
		}
		values[k] = v
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(values)
}

var knownKeysCache sync.Map // reflect.Type -> map[string]struct{}

// knownJSONKeys lists the json names bound by the fields of struct type t,
// following embedded structs the same way encoding/json does.
func knownJSONKeys(t reflect.Type) map[string]struct{} {
	if cached, ok := knownKeysCache.Load(t); ok {
		return cached.(map[string]struct{})
	}
	keys := map[string]struct{}{}
	collectJSONKeys(t, keys)
	knownKeysCache.Store(t, keys)
	return keys
}

func collectJSONKeys(t reflect.Type, keys map[string]struct{}) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if f.Anonymous && name == "" {
			ft := f.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectJSONKeys(ft, keys)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
	}
}

// decodeWithExtensions unmarshals data into dst (a method-less alias of the model type,
// so that this does not recurse) and returns the keys dst does not bind.
func decodeWithExtensions[T any](data []byte, dst *T) (Extensions, error) {
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	known := knownJSONKeys(reflect.TypeOf(*dst))
	var ext Extensions
	for k, v := range raw {
		if _, ok := known[k]; ok {
			continue
		}
		if ext == nil {
			ext = Extensions{}
		}
		ext[k] = v
	}
	return ext, nil
}

// encodeWithExtensions marshals src and merges ext into the resulting object.
// Typed fields win over an extension with the same key.
func encodeWithExtensions(src any, ext Extensions) ([]byte, error) {
	b, err := json.Marshal(src)
	if err != nil || len(ext) == 0 {
		return b, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range ext {
		if _, ok := merged[k]; ok {
			continue
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}

// FlexString is a value the API sends either as a JSON string or a JSON number,
// such as pricebook ids or day counts. It always marshals as a string.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a string or a number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }
