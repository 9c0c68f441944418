package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/milan604/apinet/pkg/apperr"

	gvalidator "github.com/go-playground/validator/v10"
)

// FieldError represents a single field validation problem.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator is the wrapper around go-playground validator with extra features.
type Validator struct {
	v             *gvalidator.Validate
	tagMessages   map[string]func(gvalidator.FieldError) string
	fieldNameTags []string
}

// ValidatorEngine is the subset of Validator other packages depend on.
type ValidatorEngine interface {
	Struct(s any) error
	RegisterValidation(tag string, fn gvalidator.Func) error
	RegisterTagMessage(tag string, builder func(gvalidator.FieldError) string)
}

var _ ValidatorEngine = (*Validator)(nil)

// New creates a Validator that reports fields by their mapstructure,
// json, or Go name, in that order.
func New() *Validator {
	vi := &Validator{
		v:             gvalidator.New(gvalidator.WithRequiredStructEnabled()),
		tagMessages:   make(map[string]func(gvalidator.FieldError) string),
		fieldNameTags: []string{"mapstructure", "json"},
	}
	vi.v.RegisterTagNameFunc(vi.fieldName)
	return vi
}

func (vi *Validator) fieldName(f reflect.StructField) string {
	for _, tag := range vi.fieldNameTags {
		if name := getTagName(f, tag); name != "" {
			return name
		}
	}
	return f.Name
}

func getTagName(f reflect.StructField, tagName string) string {
	tagValue := f.Tag.Get(tagName)
	if tagValue == "-" {
		return ""
	}
	return strings.SplitN(tagValue, ",", 2)[0]
}

// RegisterValidation registers a custom validator (name) to the engine.
func (vi *Validator) RegisterValidation(tag string, fn gvalidator.Func) error {
	return vi.v.RegisterValidation(tag, fn)
}

// RegisterTagMessage overrides the message produced for a failed tag.
func (vi *Validator) RegisterTagMessage(tag string, builder func(gvalidator.FieldError) string) {
	vi.tagMessages[tag] = builder
}

// Struct validates s and returns nil or an *apperr.AppError with one
// suggestion per failing field.
func (vi *Validator) Struct(s any) error {
	if err := vi.v.Struct(s); err != nil {
		return vi.ParseError(err)
	}
	return nil
}

// ParseError converts a validator error into *apperr.AppError.
func (vi *Validator) ParseError(err error) *apperr.AppError {
	if err == nil {
		return nil
	}

	var verrs gvalidator.ValidationErrors
	if errors.As(err, &verrs) {
		appErr := apperr.New(apperr.ErrorCodeValidationFail)
		for _, fe := range verrs {
			appErr.AddSuggestion(fe.Field(), vi.buildMessageForField(fe))
		}
		return appErr
	}

	var invalid *gvalidator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperr.New(apperr.ErrorCodeInternal).Wrap(err)
	}

	return apperr.Newf(apperr.ErrorCodeInvalidInput, "Invalid input: %v", err)
}

// FieldErrors flattens the suggestions of a validation AppError.
func FieldErrors(err error) []FieldError {
	ae := apperr.FromError(err)
	if ae == nil {
		return nil
	}
	out := make([]FieldError, 0, len(ae.Suggestions))
	for _, s := range ae.Suggestions {
		out = append(out, FieldError{Field: s.Field, Message: s.Message})
	}
	return out
}

func (vi *Validator) buildMessageForField(fe gvalidator.FieldError) string {
	if b, ok := vi.tagMessages[fe.Tag()]; ok && b != nil {
		return b(fe)
	}
	if fe.Param() != "" {
		return fmt.Sprintf("field %s failed on '%s' validation (param=%s)", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("field %s failed on '%s' validation", fe.Field(), fe.Tag())
}
