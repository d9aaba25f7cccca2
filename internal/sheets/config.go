// Package sheets exports the monthly report to a Google Sheets spreadsheet.
package sheets

import (
	"fmt"
	"strings"
)

// Tab titles written by the exporter.
const (
	TabSummary    = "Summary"
	TabByCategory = "By Category"
	TabMovements  = "Movements"
)

// DefaultSpreadsheetName titles a spreadsheet created by the exporter.
const DefaultSpreadsheetName = "AhorraPE Report"

// Config holds the credentials and target of the export. Exactly one of
// service account or OAuth2 refresh token must be configured.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	Currency           string
	EnableFormatting   bool
}

// DefaultConfig returns a Config with the defaults for a Lima-based user.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		TimeZone:         "America/Lima",
		Currency:         "S/",
		EnableFormatting: true,
	}
}

// Validate checks that a single authentication method is configured.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("no authentication method configured")
	}
	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or service account")
	}
	if c.SpreadsheetID == "" && strings.TrimSpace(c.SpreadsheetName) == "" {
		return fmt.Errorf("spreadsheet id or name is required")
	}
	return nil
}
