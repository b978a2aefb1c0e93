package services

import (
	"clinic-chat/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateCommand runs the struct tags of a command and reports failures as invalid input.
func validateCommand(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	return nil
}
