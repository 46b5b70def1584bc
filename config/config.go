// Package config loads the run configuration from defaults, an optional JSON
// file and the environment, and validates it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/orayew2002/rast-words/logger"
	"github.com/orayew2002/rast-words/sink"
)

// Environment variables read by ApplyEnv.
const (
	EnvSpreadsheetID = "SPREADSHEET_ID"
	EnvCredentials   = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvS3AccessKey   = "S3_ACCESS_KEY"
	EnvS3SecretKey   = "S3_SECRET_KEY"
)

// Config describes one run: the numbers to convert and where to publish them.
//
// Start and End stay inside the band the converter spells out, and an
// ascending range holds no more numbers than a sheet has rows.
type Config struct {
	Start int    `json:"start" validate:"gte=-999999,lte=999999"`
	End   int    `json:"end" validate:"gte=-999999,lte=999999"`
	Sheet string `json:"sheet" validate:"required,max=100"`

	// Output is the local workbook. With Template set, it receives the
	// processed template instead of a plain two-column sheet.
	Output   string `json:"output" validate:"required_with=Template"`
	Template string `json:"template"`

	SpreadsheetID   string `json:"spreadsheet_id"`
	CredentialsFile string `json:"credentials_file" validate:"required_with=SpreadsheetID"`
	Clear           bool   `json:"clear"`

	ObjectStore ObjectStore `json:"object_store"`

	Random  int  `json:"random" validate:"gte=0,lte=10000"`
	Verbose bool `json:"verbose"`
}

// ObjectStore configures the optional S3-compatible upload.
type ObjectStore struct {
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key" validate:"required_with=Endpoint"`
	SecretKey string `json:"secret_key" validate:"required_with=Endpoint"`
	Bucket    string `json:"bucket" validate:"required_with=Endpoint"`
	Object    string `json:"object" validate:"required_with=Endpoint"`
	Secure    bool   `json:"secure"`
}

// Default converts 1 to 100 onto Sheet1.
func Default() Config {
	return Config{
		Start: 1,
		End:   100,
		Sheet: "Sheet1",
		ObjectStore: ObjectStore{
			Object: logger.AppName + ".xlsx",
			Secure: true,
		},
	}
}

// Load returns the defaults overlaid with the JSON file at path, if any.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides credentials and targets with values found through lookup
// (os.LookupEnv in production). Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set(&c.SpreadsheetID, EnvSpreadsheetID)
	set(&c.CredentialsFile, EnvCredentials)
	set(&c.ObjectStore.AccessKey, EnvS3AccessKey)
	set(&c.ObjectStore.SecretKey, EnvS3SecretKey)
}

// SheetsEnabled reports whether Google Sheets publishing is configured.
func (c Config) SheetsEnabled() bool {
	return c.SpreadsheetID != "" && c.CredentialsFile != ""
}

// ObjectStoreEnabled reports whether the object store upload is configured.
func (c Config) ObjectStoreEnabled() bool {
	return c.ObjectStore.Endpoint != ""
}

// FieldError reports one failed validation rule.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e FieldError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: failed %q", e.Field, e.Rule)
	}
	return fmt.Sprintf("%s: failed %q (%s)", e.Field, e.Rule, e.Param)
}

// RuleMaxRows is the rule reported when the range holds more numbers than a sheet has rows.
const RuleMaxRows = "max_rows"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateRange, Config{})
	return v
}

func validateRange(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	if c.Start > c.End {
		return
	}
	if c.End-c.Start+1 > sink.MaxRows {
		sl.ReportError(c.End, "End", "End", RuleMaxRows, strconv.Itoa(sink.MaxRows))
	}
}

// Validate checks the struct rules and returns the failures joined.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, FieldError{Field: fe.Namespace(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}
