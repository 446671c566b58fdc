package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port string

	// Upstream core-banking API.
	MusoniBaseURL     string
	MusoniUser        string
	MusoniPassword    string
	MusoniTenantID    string
	MusoniAPIKey      string
	MusoniSearchParam string
	UseMockAPI        bool
	PaymentTypeID     int

	// The reversal command's transactionAmount requirement varies per
	// deployed upstream version: "zero" or "original".
	ReversalAmountMode  string
	SearchEnrichClients bool

	// Static correspondent-agent account.
	AdminUser         string
	AdminPassword     string
	AdminPasswordHash string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	// Branch/agency display metadata embedded in issued tokens.
	Agencia        string
	Sucursal       string
	CodigoAgencia  string
	CodigoSucursal string

	CORSOrigins []string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:                fallback(os.Getenv("PORT"), "3000"),
		MusoniBaseURL:       strings.TrimSpace(os.Getenv("MUSONI_BASE_URL")),
		MusoniUser:          strings.TrimSpace(os.Getenv("MUSONI_USER")),
		MusoniPassword:      os.Getenv("MUSONI_PASSWORD"),
		MusoniTenantID:      strings.TrimSpace(os.Getenv("MUSONI_TENANT_ID")),
		MusoniAPIKey:        strings.TrimSpace(os.Getenv("MUSONI_API_KEY")),
		MusoniSearchParam:   fallback(os.Getenv("MUSONI_SEARCH_PARAM"), "search"),
		UseMockAPI:          parseBool(os.Getenv("USE_MOCK_API")),
		ReversalAmountMode:  fallback(os.Getenv("REVERSAL_AMOUNT_MODE"), "zero"),
		SearchEnrichClients: parseBool(os.Getenv("SEARCH_ENRICH_CLIENTS")),
		AdminUser:           fallback(os.Getenv("ADMIN_USER"), "admin"),
		AdminPassword:       fallback(os.Getenv("ADMIN_PASSWORD"), "admin"),
		AdminPasswordHash:   strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		JWTSecret:           strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:           fallback(os.Getenv("JWT_ISSUER"), "corresponsal-backend"),
		Agencia:             fallback(os.Getenv("AGENCIA_NOMBRE"), "Agencia Principal"),
		Sucursal:            fallback(os.Getenv("SUCURSAL_NOMBRE"), "Sucursal Central"),
		CodigoAgencia:       fallback(os.Getenv("AGENCIA_CODIGO"), "AG001"),
		CodigoSucursal:      fallback(os.Getenv("SUCURSAL_CODIGO"), "SUC001"),
		CORSOrigins:         parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	hours := fallback(os.Getenv("JWT_TTL_HOURS"), "24")
	if ttlHours, err := strconv.Atoi(hours); err == nil && ttlHours > 0 {
		cfg.JWTTTL = time.Duration(ttlHours) * time.Hour
	} else {
		cfg.JWTTTL = 24 * time.Hour
	}

	paymentType := fallback(os.Getenv("PAYMENT_TYPE_ID"), "10")
	if id, err := strconv.Atoi(paymentType); err == nil && id > 0 {
		cfg.PaymentTypeID = id
	} else {
		cfg.PaymentTypeID = 10
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if !cfg.UseMockAPI && cfg.MusoniBaseURL == "" {
		return Config{}, errors.New("MUSONI_BASE_URL is required unless USE_MOCK_API=true")
	}
	if cfg.ReversalAmountMode != "zero" && cfg.ReversalAmountMode != "original" {
		return Config{}, fmt.Errorf("invalid REVERSAL_AMOUNT_MODE %q", cfg.ReversalAmountMode)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseBool(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
