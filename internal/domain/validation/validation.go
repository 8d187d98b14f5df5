// Package validation validates entity forms with go-playground/validator and
// reports failures as Spanish field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"

	"github.com/kailas-cloud/wareflow/internal/domain"
)

// Custom validation tags.
const (
	TagCubanID         = "cu_id"
	TagCubanPhone      = "cu_phone"
	TagCubanPhoneLoose = "cu_phone_loose"
	TagEmail           = "basic_email"
	TagNotBlank        = "notblank"
)

var (
	cubanIDRe         = regexp.MustCompile(`^\d{11}$`)
	cubanPhoneRe      = regexp.MustCompile(`^\+53\s\d{4}-\d{4}$`)
	cubanPhoneLooseRe = regexp.MustCompile(`^\+53\s?\d{4}-?\d{4}$`)
	emailRe           = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// customTags lists each custom tag with its check and Spanish message.
var customTags = []struct {
	tag     string
	check   func(string) bool
	message string
}{
	{TagCubanID, cubanIDRe.MatchString, "La cédula debe tener 11 dígitos"},
	{TagCubanPhone, cubanPhoneRe.MatchString, "Formato: +53 XXXX-XXXX"},
	{TagCubanPhoneLoose, cubanPhoneLooseRe.MatchString, "Formato: +53 XXXX-XXXX"},
	{TagEmail, emailRe.MatchString, "Formato de email inválido"},
	{TagNotBlank, func(s string) bool { return strings.TrimSpace(s) != "" }, "{0} es requerido"},
}

// use a single instance, it caches struct info
var (
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator
	setupErr error
)

func setup() {
	locale := es.New()
	uni := ut.New(locale, locale)
	trans, _ = uni.GetTranslator("es")

	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		setupErr = fmt.Errorf("register translations: %w", err)
		return
	}

	for _, ct := range customTags {
		check := ct.check
		if err := validate.RegisterValidation(ct.tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			setupErr = fmt.Errorf("register %s: %w", ct.tag, err)
			return
		}
		message := ct.message
		if err := validate.RegisterTranslation(ct.tag, trans,
			func(t ut.Translator) error { return t.Add(ct.tag, message, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, err := t.T(fe.Tag(), fe.Field())
				if err != nil {
					return message
				}
				return msg
			},
		); err != nil {
			setupErr = fmt.Errorf("translate %s: %w", ct.tag, err)
			return
		}
	}
}

// Error carries per-field Spanish messages. It wraps domain.ErrValidationFailed.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", domain.ErrValidationFailed.Error(), strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error { return domain.ErrValidationFailed }

// Field builds a single-field validation error.
func Field(name, message string) error {
	return &Error{Fields: map[string]string{name: message}}
}

// Struct validates v by its `validate` tags. The first failure per field is reported.
func Struct(v any) error {
	once.Do(setup)
	if setupErr != nil {
		return setupErr
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &Error{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = fe.Translate(trans)
	}
	return out
}

// IsCubanID reports whether s is an 11-digit national identity number.
func IsCubanID(s string) bool { return cubanIDRe.MatchString(s) }

// IsCubanPhone reports whether s is in the strict +53 XXXX-XXXX form.
func IsCubanPhone(s string) bool { return cubanPhoneRe.MatchString(s) }
