// Package validation checks calculation inputs and files before they reach
// the engines. Problems are reported as warnings so a file can still run.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// OutputFormats lists the report renderers.
var OutputFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV}

// ValidateOutputFormat checks that format names one of OutputFormats exactly.
func ValidateOutputFormat(format string) error {
	if slices.Contains(OutputFormats, format) {
		return nil
	}
	return fmt.Errorf("expected output format of %s, got %q", strings.Join(OutputFormats, " or "), format)
}
