package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidation = "COMMAND_VALIDATION_FAILED"
	codeCanceled   = "COMMAND_CANCELED"
	codeTimeout    = "COMMAND_TIMEOUT"
	codeExecute    = "COMMAND_EXECUTION_FAILED"
)

// tag wraps err unless it already carries a go-errors category, so service
// errors keep their own category and text code.
func tag(err error, category goerrors.Category, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return tag(err, goerrors.CategoryValidation, "command validation failed", codeValidation)
}

func wrapContextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return tag(err, goerrors.CategoryCommand, "command deadline exceeded", codeTimeout)
	}
	return tag(err, goerrors.CategoryCommand, "command canceled", codeCanceled)
}

func wrapExecuteError(err error) error {
	return tag(err, goerrors.CategoryCommand, "command execution failed", codeExecute)
}
