package server

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var jobNameChars = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("jobname", func(fl validator.FieldLevel) bool {
		return jobNameChars.MatchString(fl.Field().String())
	})
	return v
}

// validationMessage turns validator errors into one readable line.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := []string{}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "jobname":
			msgs = append(msgs, fmt.Sprintf("%s may only contain letters, digits, '_', '-' and '.'", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
