package main

import (
	"os"
	"strconv"
	"time"

	"quote-service/models"
)

// Config holds all configuration for the quote service.
type Config struct {
	Port             string
	RedisURL         string
	EasyShipAPIKey   string
	AWSRegion        string
	QuoteSNSTopicARN string

	MarkupPercent           float64
	PickupWeightThresholdKg float64
	DefaultFreightClass     int
	QuoteExpiryHours        int

	// Fallback warehouse used when no warehouse row matches the origin.
	WarehouseName       string
	WarehouseCompany    string
	WarehouseStreet1    string
	WarehouseCity       string
	WarehouseState      string
	WarehousePostalCode string
	WarehouseCountry    string
	WarehousePhone      string
	WarehouseEmail      string
}

// EngineConfig builds the pricing engine tunables from config values.
func (c *Config) EngineConfig() models.EngineConfig {
	return models.EngineConfig{
		MarkupPercent:           c.MarkupPercent,
		PickupWeightThresholdKg: c.PickupWeightThresholdKg,
		DefaultFreightClass:     c.DefaultFreightClass,
		QuoteTTL:                time.Duration(c.QuoteExpiryHours) * time.Hour,
		FallbackWarehouse: models.Address{
			Name:       c.WarehouseName,
			Company:    c.WarehouseCompany,
			Street1:    c.WarehouseStreet1,
			City:       c.WarehouseCity,
			State:      c.WarehouseState,
			PostalCode: c.WarehousePostalCode,
			Country:    c.WarehouseCountry,
			Phone:      c.WarehousePhone,
			Email:      c.WarehouseEmail,
		},
	}
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Port:             getEnv("PORT", "8093"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		EasyShipAPIKey:   os.Getenv("EASYSHIP_API_KEY"),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		QuoteSNSTopicARN: os.Getenv("QUOTE_SNS_TOPIC_ARN"),

		MarkupPercent:           getEnvFloat("SHIPPING_MARKUP_PERCENTAGE", 20),
		PickupWeightThresholdKg: getEnvFloat("SHIPPING_PICKUP_WEIGHT_THRESHOLD", 100),
		DefaultFreightClass:     getEnvInt("DEFAULT_FREIGHT_CLASS", 70),
		QuoteExpiryHours:        getEnvInt("QUOTE_REQUEST_EXPIRY_HOURS", 24),

		WarehouseName:       getEnv("WAREHOUSE_NAME", "Consolidation Warehouse"),
		WarehouseCompany:    getEnv("WAREHOUSE_COMPANY", "Brokerage Logistics"),
		WarehouseStreet1:    getEnv("WAREHOUSE_STREET1", "1234 Warehouse St"),
		WarehouseCity:       getEnv("WAREHOUSE_CITY", "Los Angeles"),
		WarehouseState:      getEnv("WAREHOUSE_STATE", "CA"),
		WarehousePostalCode: getEnv("WAREHOUSE_POSTAL_CODE", "90001"),
		WarehouseCountry:    getEnv("WAREHOUSE_COUNTRY", "US"),
		WarehousePhone:      getEnv("WAREHOUSE_PHONE", "+14155550100"),
		WarehouseEmail:      getEnv("WAREHOUSE_EMAIL", "warehouse@brokerage.example"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
