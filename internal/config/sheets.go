package config

import (
	"os"

	"github.com/dmatrios/ahorrape-front/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads the Google Sheets export configuration.
// It follows this precedence:
// 1. Viper configuration (config file or AHORRA_SHEETS_* env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if s := v.GetString("sheets.service_account_path"); s != "" {
		config.ServiceAccountPath = ExpandPath(s)
	}
	config.ClientID = v.GetString("sheets.client_id")
	config.ClientSecret = v.GetString("sheets.client_secret")
	config.RefreshToken = v.GetString("sheets.refresh_token")
	config.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	if s := v.GetString("sheets.spreadsheet_name"); s != "" {
		config.SpreadsheetName = s
	}
	if s := v.GetString("sheets.timezone"); s != "" {
		config.TimeZone = s
	}
	if v.IsSet("sheets.formatting") {
		config.EnableFormatting = v.GetBool("sheets.formatting")
	}
	if s := v.GetString("display.currency"); s != "" {
		config.Currency = s
	}

	fallback := func(dst *string, env string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	if config.ServiceAccountPath == "" {
		if s := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); s != "" {
			config.ServiceAccountPath = ExpandPath(s)
		}
	}
	fallback(&config.ClientID, "GOOGLE_SHEETS_CLIENT_ID")
	fallback(&config.ClientSecret, "GOOGLE_SHEETS_CLIENT_SECRET")
	fallback(&config.RefreshToken, "GOOGLE_SHEETS_REFRESH_TOKEN")
	fallback(&config.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID")

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
