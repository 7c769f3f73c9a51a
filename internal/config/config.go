// Package config defines the data structures related to configuration and
// includes functions for loading the config and converting it into
// calculator input.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-payoff/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a mortgage-payoff calculation.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output  OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
	Loan    Loan          `yaml:"loan" mapstructure:"loan"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Values can be overridden from the environment with
// the PAYOFF_ prefix, e.g. PAYOFF_LOAN_ANNUALINTERESTRATE=5.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r,
// e.g. an uploaded file.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings that do not prevent a calculation.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	loan := c.Loan
	if loan.ExtraPayments != nil && !loan.ExtraPayments.Active() {
		warnings = append(warnings, "extraPayments is configured but every amount is zero; "+
			"the new plan will match the original")
	}

	switch strings.TrimSpace(loan.Mode) {
	case constants.ModeKnownTerm:
		if loan.UnpaidPrincipalBalance != 0 || loan.MonthlyPayment != 0 {
			warnings = append(warnings, "unpaidPrincipalBalance and monthlyPayment are ignored in known-term mode")
		}
	case constants.ModeUnknownTerm:
		if loan.OriginalLoanAmount != 0 || loan.OriginalLoanTermYears != 0 ||
			loan.RemainingTermYears != 0 || loan.RemainingTermMonths != 0 {
			warnings = append(warnings, "original loan and remaining term fields are ignored in unknown-term mode")
		}
	}

	return warnings
}
