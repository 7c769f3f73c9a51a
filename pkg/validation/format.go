// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/mortgage-payoff/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateMode checks if the calculator mode is one of the supported modes.
func ValidateMode(mode string) error {
	switch mode {
	case constants.ModeKnownTerm, constants.ModeUnknownTerm:
		return nil
	}
	return fmt.Errorf("%w: expected mode of %s or %s, got %q",
		ErrInvalidInput, constants.ModeKnownTerm, constants.ModeUnknownTerm, mode)
}
