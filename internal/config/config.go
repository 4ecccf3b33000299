// Package config defines the data structures of a calculation file and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/spf13/viper"
)

// Calculation types understood by the calculator.
const (
	TypeLoan       = "loan"
	TypeMortgage   = "mortgage"
	TypeFHA        = "fha"
	TypeVA         = "va"
	TypeRefinance  = "refinance"
	TypeAPR        = "apr"
	TypeInvestment = "investment"
	TypeGoal       = "goal"
	TypeCAGR       = "cagr"
	TypeIRR        = "irr"
	TypeNPV        = "npv"
	TypeRental     = "rental"
	TypeCompound   = "compound"
	TypeSimple     = "simple"
	TypeROI        = "roi"
	TypeCD         = "cd"
)

// KnownTypes lists every calculation type in file order.
var KnownTypes = []string{
	TypeLoan, TypeMortgage, TypeFHA, TypeVA, TypeRefinance, TypeAPR,
	TypeInvestment, TypeGoal, TypeCAGR, TypeIRR, TypeNPV, TypeRental,
	TypeCompound, TypeSimple, TypeROI, TypeCD,
}

// Configuration holds all calculations to run and how to report them.
type Configuration struct {
	Calculations []Calculation `yaml:"calculations" json:"calculations"`
	Logging      LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output       OutputConfig  `yaml:"output,omitempty" json:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty" json:"format,omitempty"` // pretty, csv
	Schedule bool   `yaml:"schedule,omitempty" json:"schedule,omitempty"`
}

// Calculation is one flat record of calculator inputs. Only the fields used
// by its Type are read. Rates are annual percentages.
type Calculation struct {
	Name      string `yaml:"name" json:"name"`
	Type      string `yaml:"type" json:"type"`
	Active    *bool  `yaml:"active,omitempty" json:"active,omitempty"`
	StartDate string `yaml:"startDate,omitempty" json:"startDate,omitempty"`

	// Loans and mortgages.
	Principal      float64 `yaml:"principal,omitempty" json:"principal,omitempty"`
	Rate           float64 `yaml:"rate,omitempty" json:"rate,omitempty"`
	TermMonths     int     `yaml:"termMonths,omitempty" json:"termMonths,omitempty"`
	TermYears      int     `yaml:"termYears,omitempty" json:"termYears,omitempty"`
	ExtraPrincipal float64 `yaml:"extraPrincipal,omitempty" json:"extraPrincipal,omitempty"`
	HomePrice      float64 `yaml:"homePrice,omitempty" json:"homePrice,omitempty"`
	DownPayment    float64 `yaml:"downPayment,omitempty" json:"downPayment,omitempty"`
	MonthlyTax     float64 `yaml:"monthlyTax,omitempty" json:"monthlyTax,omitempty"`
	Insurance      float64 `yaml:"insurance,omitempty" json:"insurance,omitempty"`
	HOA            float64 `yaml:"hoa,omitempty" json:"hoa,omitempty"`
	PMIRate        float64 `yaml:"pmiRate,omitempty" json:"pmiRate,omitempty"`
	PMICutoff      float64 `yaml:"pmiCutoff,omitempty" json:"pmiCutoff,omitempty"`
	UpfrontMIP     float64 `yaml:"upfrontMIP,omitempty" json:"upfrontMIP,omitempty"`
	AnnualMIP      float64 `yaml:"annualMIP,omitempty" json:"annualMIP,omitempty"`
	VAPurpose      string  `yaml:"vaPurpose,omitempty" json:"vaPurpose,omitempty"`
	FirstUse       *bool   `yaml:"firstUse,omitempty" json:"firstUse,omitempty"`
	Disabled       bool    `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	FinanceFee     bool    `yaml:"financeFee,omitempty" json:"financeFee,omitempty"`
	Fees           float64 `yaml:"fees,omitempty" json:"fees,omitempty"`

	// Refinance.
	CurrentBalance      float64 `yaml:"currentBalance,omitempty" json:"currentBalance,omitempty"`
	CurrentRate         float64 `yaml:"currentRate,omitempty" json:"currentRate,omitempty"`
	RemainingMonths     int     `yaml:"remainingMonths,omitempty" json:"remainingMonths,omitempty"`
	NewRate             float64 `yaml:"newRate,omitempty" json:"newRate,omitempty"`
	NewTermMonths       int     `yaml:"newTermMonths,omitempty" json:"newTermMonths,omitempty"`
	ClosingCosts        float64 `yaml:"closingCosts,omitempty" json:"closingCosts,omitempty"`
	FinanceClosingCosts bool    `yaml:"financeClosingCosts,omitempty" json:"financeClosingCosts,omitempty"`

	// Growth, goals and interest.
	Lumpsum             float64 `yaml:"lumpsum,omitempty" json:"lumpsum,omitempty"`
	MonthlyContribution float64 `yaml:"monthlyContribution,omitempty" json:"monthlyContribution,omitempty"`
	StepUp              float64 `yaml:"stepUp,omitempty" json:"stepUp,omitempty"`
	Years               float64 `yaml:"years,omitempty" json:"years,omitempty"`
	Inflation           float64 `yaml:"inflation,omitempty" json:"inflation,omitempty"`
	TaxRate             float64 `yaml:"taxRate,omitempty" json:"taxRate,omitempty"`
	Target              float64 `yaml:"target,omitempty" json:"target,omitempty"`
	CurrentSavings      float64 `yaml:"currentSavings,omitempty" json:"currentSavings,omitempty"`
	CompoundsPerYear    int     `yaml:"compoundsPerYear,omitempty" json:"compoundsPerYear,omitempty"`
	StartValue          float64 `yaml:"startValue,omitempty" json:"startValue,omitempty"`
	EndValue            float64 `yaml:"endValue,omitempty" json:"endValue,omitempty"`
	Invested            float64 `yaml:"invested,omitempty" json:"invested,omitempty"`
	Returned            float64 `yaml:"returned,omitempty" json:"returned,omitempty"`

	// Cash flow analysis.
	CashFlows    []float64 `yaml:"cashFlows,omitempty" json:"cashFlows,omitempty"`
	DiscountRate float64   `yaml:"discountRate,omitempty" json:"discountRate,omitempty"`
	Guess        float64   `yaml:"guess,omitempty" json:"guess,omitempty"`

	// Rental property.
	MonthlyRent        float64 `yaml:"monthlyRent,omitempty" json:"monthlyRent,omitempty"`
	OtherMonthlyIncome float64 `yaml:"otherMonthlyIncome,omitempty" json:"otherMonthlyIncome,omitempty"`
	Vacancy            float64 `yaml:"vacancy,omitempty" json:"vacancy,omitempty"`
	AnnualPropertyTax  float64 `yaml:"annualPropertyTax,omitempty" json:"annualPropertyTax,omitempty"`
	AnnualInsurance    float64 `yaml:"annualInsurance,omitempty" json:"annualInsurance,omitempty"`
	Maintenance        float64 `yaml:"maintenance,omitempty" json:"maintenance,omitempty"`
	Management         float64 `yaml:"management,omitempty" json:"management,omitempty"`
	RehabCosts         float64 `yaml:"rehabCosts,omitempty" json:"rehabCosts,omitempty"`
	LandValue          float64 `yaml:"landValue,omitempty" json:"landValue,omitempty"`
}

// IsActive reports whether the calculation should run. Calculations are
// active unless explicitly disabled.
func (c Calculation) IsActive() bool {
	return c.Active == nil || *c.Active
}

// IsFirstUse reports whether a VA loan is the borrower's first use of the
// benefit, which is the default.
func (c Calculation) IsFirstUse() bool {
	return c.FirstUse == nil || *c.FirstUse
}

// Term returns the term in months, preferring TermMonths over TermYears.
func (c Calculation) Term() int {
	if c.TermMonths > 0 {
		return c.TermMonths
	}
	return c.TermYears * constants.MonthsPerYear
}

// StartTime parses StartDate; an empty date is the first of the month of
// fixedTime.
func (c Calculation) StartTime(fixedTime time.Time) (time.Time, error) {
	t, err := datetime.ParseDate(c.StartDate, fixedTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("calculation %q: %w", c.Name, err)
	}
	return t, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("FINCALC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a configuration of the given type
// (yaml or json) from r. Each call uses its own viper instance so it is safe
// to call concurrently.
func LoadConfigurationFromReader(r io.Reader, configType string) (*Configuration, error) {
	configType = strings.ToLower(strings.TrimSpace(configType))
	switch configType {
	case "", "yml", "yaml":
		configType = "yml"
	case "json":
	default:
		return nil, fmt.Errorf("unsupported configuration type %q", configType)
	}

	v := viper.New()
	v.SetConfigType(configType)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading configuration, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if configuration.Output.Format == "" {
		configuration.Output.Format = constants.OutputFormatPretty
	}
	return &configuration, nil
}

// ActiveCalculations returns the calculations that should run.
func (c *Configuration) ActiveCalculations() []Calculation {
	active := make([]Calculation, 0, len(c.Calculations))
	for _, calc := range c.Calculations {
		if calc.IsActive() {
			active = append(active, calc)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{KnownTypes: KnownTypes}
	for _, calc := range c.Calculations {
		rate := calc.Rate
		if calc.Type == TypeRefinance {
			rate = calc.NewRate
		}
		term := calc.Term()
		if calc.Type == TypeRefinance {
			term = calc.NewTermMonths
		}
		validator.Calculations = append(validator.Calculations, validation.CalculationConfig{
			Name:        calc.Name,
			Type:        calc.Type,
			Active:      calc.IsActive(),
			TermMonths:  term,
			RatePercent: rate,
			HomePrice:   calc.HomePrice,
			DownPayment: calc.DownPayment,
			StartDate:   calc.StartDate,
		})
	}

	warnings := validator.ValidateAll()
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		warnings = append(warnings, err.Error())
	}
	return warnings
}
