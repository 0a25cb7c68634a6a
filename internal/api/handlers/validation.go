package handlers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	slugRegex       = regexp.MustCompile(`^[a-z0-9-]+$`)
	registerOnce    sync.Once
	errNotValidator = errors.New("binding validator is not go-playground/validator")
)

// RegisterValidators installs the custom rules used by request structs and
// reports fields by their JSON names. Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errNotValidator
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if err = v.RegisterValidation("slug", validateSlug); err != nil {
			return
		}
		err = v.RegisterValidation("youtube", validateYouTube)
	})
	return err
}

func jsonFieldName(fld reflect.StructField) string {
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

func validateSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

func validateYouTube(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return strings.Contains(v, "youtube.com") || strings.Contains(v, "youtu.be")
}

// fieldErrors maps each failing field to a short reason. Errors that are
// not validation errors (malformed JSON, wrong types) land under "body".
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = "malformed request body"
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email"
	case "url", "len=0|url":
		return "must be a valid URL"
	case "slug":
		return "must contain only lowercase letters, numbers and hyphens"
	case "youtube":
		return "must be a YouTube link"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
