package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	RunMode string // Set via flag, not env

	// MongoDB
	MongoURI    string
	MongoDbName string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JwtSecret string
	JwtTTL    time.Duration

	// Server
	ApiPort string

	// PayFast
	PayFastMerchantID  string
	PayFastMerchantKey string
	PayFastPassphrase  string
	PayFastSandbox     bool

	// Billing
	InvoiceDueDays       int
	DefaultTaxRate       float64
	BillingInterval      time.Duration
	OverdueCheckInterval time.Duration
	RetentionInterval    time.Duration

	// Data retention (years)
	UserProfileRetentionYears   int
	InvoiceRetentionYears       int
	ContractRetentionYears      int
	SupportTicketRetentionYears int

	// Email
	SmtpFromAddress string

	// AWS S3
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsS3Bucket        string

	// App Defaults
	AppName string

	// Rate Limiting Defaults
	RateLimitBucketSize int
	RateLimitRefillRate int // tokens per second
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{
		RunMode: runMode, // Set from flag
	}

	var err error

	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg.MongoURI, err = getRequiredEnv("MONGO_URI")
	if err != nil {
		return nil, err
	}
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "cloudmzansi")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.ApiPort = getEnv("API_PORT", "3000")
	cfg.PayFastMerchantID = getEnv("PAYFAST_MERCHANT_ID", "")
	cfg.PayFastMerchantKey = getEnv("PAYFAST_MERCHANT_KEY", "")
	cfg.PayFastPassphrase = getEnv("PAYFAST_PASSPHRASE", "")
	cfg.SmtpFromAddress = getEnv("SMTP_FROM_ADDRESS", "noreply@cloudmzansi.co.za")
	cfg.AwsAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AwsSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.AwsRegion = getEnv("AWS_REGION", "af-south-1")
	cfg.AwsS3Bucket = getEnv("AWS_S3_BUCKET", "")
	cfg.AppName = getEnv("APP_NAME", "CloudMzansi")

	cfg.PayFastSandbox, err = strconv.ParseBool(getEnv("PAYFAST_SANDBOX", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYFAST_SANDBOX: %w", err)
	}

	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtTTLSeconds, err := strconv.ParseInt(getEnv("JWT_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_SECONDS: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLSeconds) * time.Second

	cfg.InvoiceDueDays, err = strconv.Atoi(getEnv("INVOICE_DUE_DAYS", "14"))
	if err != nil {
		return nil, fmt.Errorf("invalid INVOICE_DUE_DAYS: %w", err)
	}

	cfg.DefaultTaxRate, err = strconv.ParseFloat(getEnv("DEFAULT_TAX_RATE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TAX_RATE: %w", err)
	}

	billingIntervalMinutes, err := strconv.ParseInt(getEnv("BILLING_INTERVAL_MINUTES", "60"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BILLING_INTERVAL_MINUTES: %w", err)
	}
	cfg.BillingInterval = time.Duration(billingIntervalMinutes) * time.Minute

	overdueCheckHours, err := strconv.ParseInt(getEnv("OVERDUE_CHECK_INTERVAL_HOURS", "24"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OVERDUE_CHECK_INTERVAL_HOURS: %w", err)
	}
	cfg.OverdueCheckInterval = time.Duration(overdueCheckHours) * time.Hour

	retentionHours, err := strconv.ParseInt(getEnv("RETENTION_INTERVAL_HOURS", "24"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_INTERVAL_HOURS: %w", err)
	}
	cfg.RetentionInterval = time.Duration(retentionHours) * time.Hour

	cfg.UserProfileRetentionYears, err = strconv.Atoi(getEnv("USER_PROFILE_RETENTION_YEARS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid USER_PROFILE_RETENTION_YEARS: %w", err)
	}
	cfg.InvoiceRetentionYears, err = strconv.Atoi(getEnv("INVOICE_RETENTION_YEARS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid INVOICE_RETENTION_YEARS: %w", err)
	}
	cfg.ContractRetentionYears, err = strconv.Atoi(getEnv("CONTRACT_RETENTION_YEARS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONTRACT_RETENTION_YEARS: %w", err)
	}
	cfg.SupportTicketRetentionYears, err = strconv.Atoi(getEnv("SUPPORT_TICKET_RETENTION_YEARS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUPPORT_TICKET_RETENTION_YEARS: %w", err)
	}

	// Rate Limiting
	cfg.RateLimitBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_BUCKET_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_REFILL_RATE", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
