// Package bind decodes request bodies and validates inputs with
// go-playground/validator, mapping failures onto project error codes
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "marquee/internal/platform/errors"
	"marquee/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps a body when Options.MaxBytes is zero
const DefaultMaxBytes = 64 << 10

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

func setup() {
	once.Do(func() {
		loc := en.New()
		translator, _ = ut.New(loc, loc).GetTranslator("en")

		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		short(validate, "min", "{0} must be at least {1}")
		short(validate, "max", "{0} must be at most {1}")
		short(validate, "oneof", "{0} must be one of [{1}]")
		short(validate, "required_if", "{0} is required")
	})
}

// jsonName reports fields by their json name so messages match the wire
func jsonName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	if tag == "" || tag == "-" {
		return fld.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func short(v *validator.Validate, tag, text string) {
	_ = v.RegisterTranslation(tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Options tunes Decode
type Options struct {
	// MaxBytes caps the body, zero means DefaultMaxBytes
	MaxBytes int64
	// Optional accepts an empty body as the zero value
	Optional bool
}

// Decode reads one JSON object into T, rejecting unknown fields and trailing
// data, then validates it. Malformed bodies are ErrorCodeJSON, failed rules
// are ErrorCodeValidation
func Decode[T any](r *http.Request, opts ...Options) (T, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}

	var dst T
	if r.Body == nil || r.Body == http.NoBody {
		return emptyBody(dst, o)
	}
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(io.LimitReader(r.Body, o.MaxBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return emptyBody(dst, o)
		}
		return dst, perr.Wrap(err, perr.ErrorCodeJSON, "invalid json body")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return dst, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return dst, err
	}
	return dst, nil
}

func emptyBody[T any](zero T, o Options) (T, error) {
	if o.Optional {
		return zero, nil
	}
	return zero, perr.JSONErrf("empty body")
}

// Validate runs struct tag rules and maps the first failure to a Validation
// error carrying the field name
func Validate(v any) error {
	setup()
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Named("bind").Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		setup()
		return verrs[0].Field(), verrs[0].Translate(translator)
	}
	return "", err.Error()
}
