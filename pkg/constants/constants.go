// Package constants provides shared constants for the mortgage-payoff application.
package constants

// DateLayout is the format expected for scenario start dates in config files
// and API payloads, and is also the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of monthly periods in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyPlaces is the number of decimal places kept for currency output
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Amortization engine constants
const (
	// PayoffTolerance is the balance at or below which a loan counts as paid off
	PayoffTolerance = 0.01

	// SolverMaxPeriods bounds the linear search for a remaining term (about 83 years)
	SolverMaxPeriods = 1000

	// SolverMatchTolerance is how close (in currency units) a solved principal
	// must land to the target to accept the period count
	SolverMatchTolerance = 1.0

	// MaxTermYears is the longest loan term accepted, in whole years
	MaxTermYears = SolverMaxPeriods / MonthsPerYear

	// MaxSchedulePeriods is the longest schedule accepted, in months
	MaxSchedulePeriods = MaxTermYears * MonthsPerYear
)

// Calculator mode identifiers as they appear in config files and API payloads.
const (
	// ModeKnownTerm derives the balance from the original loan and remaining term
	ModeKnownTerm = "known-term"

	// ModeUnknownTerm solves the remaining term from the balance and payment
	ModeUnknownTerm = "unknown-term"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of config values
	EnvPrefix = "PAYOFF"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultCacheTTL is how long cached results live, in seconds
	DefaultCacheTTL = 3600

	// CacheKeyPrefix namespaces result cache keys
	CacheKeyPrefix = "payoff:result:"

	// DefaultMemoryCacheEntries bounds the in-process result cache
	DefaultMemoryCacheEntries = 512
)
