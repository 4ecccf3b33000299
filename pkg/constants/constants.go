// Package constants provides shared constants for the finance-calculators application.
package constants

// DateTimeLayout is the month-granular format expected in calculation files and
// is also the output date format for schedule rows.
const DateTimeLayout = "2006-01"

// DayLayout is accepted in calculation files when a full start date is given.
const DayLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// BalanceEpsilon is the tolerance below which a remaining balance is treated as paid off
	BalanceEpsilon = 1e-6

	// MaxTermMonths is the longest loan or horizon the validators accept without warning (50 years)
	MaxTermMonths = 600
)

// Mortgage insurance and fee defaults
const (
	// DefaultMortgageInsuranceCutoff is the LTV (percent) at which private mortgage insurance is removed
	DefaultMortgageInsuranceCutoff = 78.0

	// PMIRequiredAboveLTV is the LTV (percent) above which conventional loans carry PMI
	PMIRequiredAboveLTV = 80.0

	// DefaultFHAUpfrontMIPPercent is the FHA upfront mortgage insurance premium
	DefaultFHAUpfrontMIPPercent = 1.75

	// DefaultFHAAnnualMIPPercent is the FHA annual mortgage insurance premium
	DefaultFHAAnnualMIPPercent = 0.55

	// FHAMinimumDownPaymentPercent is the minimum FHA down payment
	FHAMinimumDownPaymentPercent = 3.5

	// ResidentialDepreciationYears is the US straight-line recovery period for residential rental property
	ResidentialDepreciationYears = 27.5
)

// Solver defaults
const (
	// DefaultSolverGuess is the initial periodic rate guess for Newton-Raphson
	DefaultSolverGuess = 0.10

	// DefaultSolverTolerance is the step size below which the solver has converged
	DefaultSolverTolerance = 1e-5

	// DefaultSolverMaxIterations bounds the Newton-Raphson iteration
	DefaultSolverMaxIterations = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default calculation file name
	DefaultConfigFile = "calculations.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024

	// DefaultServiceName identifies the service in traces
	DefaultServiceName = "finance-calculators"
)
