package introspect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"

	rlerrors "runlike/internal/errors"
	"runlike/pkg/inspect"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("mapstructure")
	})
}

// requiredPaths must resolve to a non-null value before a document can be
// translated.
var requiredPaths = []string{"Name", "Config.Image"}

// Document is a parsed inspection record. The generic tree is kept next to
// the typed projection so callers can reach fields the schema doesn't model.
// Neither is modified after Parse returns.
type Document struct {
	record    map[string]any
	Container inspect.Container
}

// Parse decodes raw inspection output. It accepts the list printed by
// `docker inspect` (first element used) or a bare object as returned by the
// Engine API.
func Parse(raw []byte) (*Document, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, rlerrors.NewParseError("Cannot parse inspection output", err.Error(), err)
	}

	var record map[string]any
	switch v := payload.(type) {
	case []any:
		if len(v) == 0 {
			return nil, rlerrors.NewParseError("Cannot parse inspection output", "no container record in output", nil)
		}
		rec, ok := v[0].(map[string]any)
		if !ok {
			return nil, rlerrors.NewParseError("Cannot parse inspection output",
				fmt.Sprintf("container record is %T, not an object", v[0]), nil)
		}
		record = rec
	case map[string]any:
		record = v
	default:
		return nil, rlerrors.NewParseError("Cannot parse inspection output",
			fmt.Sprintf("unexpected top-level %T", payload), nil)
	}

	doc := &Document{record: record}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToStringSliceHook,
		Result:     &doc.Container,
	})
	if err != nil {
		return nil, rlerrors.NewParseError("Cannot parse inspection output", err.Error(), err)
	}
	if err := decoder.Decode(record); err != nil {
		return nil, rlerrors.NewParseError("Inspection output has an unexpected shape", err.Error(), err)
	}

	return doc, nil
}

// stringToStringSliceHook accepts a bare string where a list of strings is
// expected; older engines emit Cmd and Entrypoint that way.
func stringToStringSliceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string(nil)) {
		return data, nil
	}
	s := data.(string)
	if s == "" {
		return []string{}, nil
	}
	return []string{s}, nil
}

// Lookup walks a dot-separated path through the record. Map levels are
// indexed by key and list levels by position. A present JSON null yields
// (nil, nil); an unresolvable segment yields a FieldAccessError.
func (d *Document) Lookup(path string) (any, error) {
	var value any = d.record
	for _, key := range strings.Split(path, ".") {
		switch node := value.(type) {
		case map[string]any:
			next, ok := node[key]
			if !ok {
				return nil, rlerrors.NewFieldAccessError(path)
			}
			value = next
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, rlerrors.NewFieldAccessError(path)
			}
			value = node[idx]
		default:
			return nil, rlerrors.NewFieldAccessError(path)
		}
	}
	return value, nil
}

// Require is Lookup that also rejects null.
func (d *Document) Require(path string) (any, error) {
	value, err := d.Lookup(path)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, rlerrors.NewFieldAccessError(path)
	}
	return value, nil
}

// Optional never fails; ok is false when the path is absent or null.
func (d *Document) Optional(path string) (value any, ok bool) {
	value, err := d.Lookup(path)
	if err != nil || value == nil {
		return nil, false
	}
	return value, true
}

// Validate checks the fields translation cannot do without.
func (d *Document) Validate() error {
	for _, path := range requiredPaths {
		if _, err := d.Require(path); err != nil {
			return err
		}
	}

	if err := validate.Struct(&d.Container); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			return rlerrors.NewFieldAccessError(fieldPath(validationErrors[0]))
		}
		return rlerrors.NewParseError("Cannot validate inspection output", err.Error(), err)
	}

	return nil
}

// fieldPath turns "Container.Config.Image" into "Config.Image".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
