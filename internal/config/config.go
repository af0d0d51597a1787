package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	OrderAPI OrderAPIConfig
	Payment  PaymentConfig
	Cookie   CookieConfig
	Wizard   WizardConfig
}

// OrderAPIConfig holds the external order-management API configuration
type OrderAPIConfig struct {
	BaseURL string
}

// PaymentConfig holds the payment processor configuration
type PaymentConfig struct {
	BaseURL   string
	SecretKey string
}

// CookieConfig holds cookie configuration for the wizard session cookie
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// WizardConfig holds order-wizard session settings
type WizardConfig struct {
	SessionTTL time.Duration
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		OrderAPI: loadOrderAPIConfig(appMode),
		Payment:  loadPaymentConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Wizard:   loadWizardConfig(),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadOrderAPIConfig loads the order API config based on mode
func loadOrderAPIConfig(mode string) OrderAPIConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return OrderAPIConfig{
		BaseURL: getEnv(prefix+"ORDER_API_URL", "http://localhost:8000"),
	}
}

// loadPaymentConfig loads the payment processor config based on mode
func loadPaymentConfig(mode string) PaymentConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return PaymentConfig{
		BaseURL:   getEnv(prefix+"PAYMENT_API_URL", "https://api.stripe.com"),
		SecretKey: getEnv(prefix+"PAYMENT_SECRET_KEY", ""),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadWizardConfig loads the order-wizard session settings
func loadWizardConfig() WizardConfig {
	ttlMins, _ := strconv.Atoi(getEnv("WIZARD_SESSION_MINUTES", "120"))
	if ttlMins <= 0 {
		ttlMins = 120
	}
	return WizardConfig{
		SessionTTL: time.Duration(ttlMins) * time.Minute,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://www.freshfold.example"
	}
	return origins
}
