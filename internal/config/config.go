package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Sheets  SheetsConfig
	Columns ColumnsConfig
	Cache   CacheConfig
	Report  ReportConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// SheetsConfig identifies the spreadsheet-backed data source and the three
// named ranges the service reads from it.
type SheetsConfig struct {
	SpreadsheetID   string
	APIKey          string
	CredentialsJSON string
	FormRange       string
	ProcessingRange string
	SupplierRange   string
}

// ColumnsConfig names the reserved columns of the form-submission sheet.
type ColumnsConfig struct {
	Timestamp string
	Email     string
	Staff     string
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTLSeconds    int
}

// ReportConfig drives report composition and outbound messaging.
type ReportConfig struct {
	FallbackVendor  string
	WhatsAppTarget  string
	SummaryModel    string
	SummaryEndpoint string
	SummaryAPIKey   string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})

		viper.SetDefault("SHEET_ID", "")
		viper.SetDefault("SHEET_API_KEY", "")
		viper.SetDefault("SHEET_CREDENTIALS_JSON", "")
		viper.SetDefault("SHEET_FORM_RANGE", "Form responses 1!A:ZZ")
		viper.SetDefault("SHEET_PROCESSING_RANGE", "Processing!A:H")
		viper.SetDefault("SHEET_SUPPLIER_RANGE", "Suppliers!A:D")

		viper.SetDefault("COLUMN_TIMESTAMP", "Timestamp")
		viper.SetDefault("COLUMN_EMAIL", "Email address")
		viper.SetDefault("COLUMN_STAFF", "PNS yang mengisi:")

		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_TTL_SECONDS", 60)

		viper.SetDefault("REPORT_FALLBACK_VENDOR", "Tanpa Vendor")
		viper.SetDefault("REPORT_WHATSAPP_TARGET", "")
		viper.SetDefault("SUMMARY_MODEL", "gemini-2.5-flash")
		viper.SetDefault("SUMMARY_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta")
		viper.SetDefault("SUMMARY_API_KEY", "")

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Sheets: SheetsConfig{
				SpreadsheetID:   viper.GetString("SHEET_ID"),
				APIKey:          viper.GetString("SHEET_API_KEY"),
				CredentialsJSON: viper.GetString("SHEET_CREDENTIALS_JSON"),
				FormRange:       viper.GetString("SHEET_FORM_RANGE"),
				ProcessingRange: viper.GetString("SHEET_PROCESSING_RANGE"),
				SupplierRange:   viper.GetString("SHEET_SUPPLIER_RANGE"),
			},
			Columns: ColumnsConfig{
				Timestamp: viper.GetString("COLUMN_TIMESTAMP"),
				Email:     viper.GetString("COLUMN_EMAIL"),
				Staff:     viper.GetString("COLUMN_STAFF"),
			},
			Cache: CacheConfig{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
				TTLSeconds:    viper.GetInt("CACHE_TTL_SECONDS"),
			},
			Report: ReportConfig{
				FallbackVendor:  viper.GetString("REPORT_FALLBACK_VENDOR"),
				WhatsAppTarget:  viper.GetString("REPORT_WHATSAPP_TARGET"),
				SummaryModel:    viper.GetString("SUMMARY_MODEL"),
				SummaryEndpoint: viper.GetString("SUMMARY_ENDPOINT"),
				SummaryAPIKey:   viper.GetString("SUMMARY_API_KEY"),
			},
		}
	})

	return instance
}
