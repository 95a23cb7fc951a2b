package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeInvalid  = "LAYOUT_COMMAND_INVALID"
	codeCanceled = "LAYOUT_COMMAND_CANCELED"
	codeTimeout  = "LAYOUT_COMMAND_TIMEOUT"
	codeFailed   = "LAYOUT_COMMAND_FAILED"
)

// categorize wraps err with a go-errors category and text code. Errors already
// categorised further down keep their original category.
func categorize(err error, category goerrors.Category, message, code string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return categorize(err, goerrors.CategoryValidation, "command validation failed", codeInvalid)
}

func wrapContextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return categorize(err, goerrors.CategoryCommand, "command deadline exceeded", codeTimeout)
	}
	return categorize(err, goerrors.CategoryCommand, "command cancelled", codeCanceled)
}

func wrapExecuteError(err error) error {
	return categorize(err, goerrors.CategoryCommand, "command execution failed", codeFailed)
}
