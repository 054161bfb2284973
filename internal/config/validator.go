package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands.
const ExpectedEnvSchemaVersion = "1.1"

// Placeholder values shipped in .env.example
const (
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
	exampleDBPassword = "change_this_secure_password"
	exampleShopToken  = "shpat_replace_me"
)

var (
	ErrEnvSchemaMissing  = errors.New("ENV_SCHEMA_VERSION is not set")
	ErrEnvSchemaMismatch = errors.New("ENV_SCHEMA_VERSION mismatch")
	ErrEnvMissing        = errors.New("missing required environment variables")
)

// EnvReport lists what an environment is missing and what looks unsafe.
type EnvReport struct {
	Missing  []string
	Warnings []string
}

// Err folds the report into a single error, or nil when nothing required is
// missing.
func (r EnvReport) Err() error {
	if len(r.Missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrEnvMissing, strings.Join(r.Missing, ", "))
}

// requiredFor returns the variables a storage backend cannot start without.
func requiredFor(storage string) []string {
	switch storage {
	case StoragePostgres:
		return []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"}
	case StorageRedis:
		return []string{"REDIS_URL"}
	default:
		return nil
	}
}

// CheckEnv inspects the environment through lookup. Every store named in
// SHOPIFY_STORES must carry a domain and a token.
func CheckEnv(lookup func(string) (string, bool)) (EnvReport, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	switch v := get("ENV_SCHEMA_VERSION"); {
	case v == "":
		return EnvReport{}, fmt.Errorf("%w: update your .env file (expected %s)", ErrEnvSchemaMissing, ExpectedEnvSchemaVersion)
	case v != ExpectedEnvSchemaVersion:
		return EnvReport{}, fmt.Errorf("%w: expected %s, got %s", ErrEnvSchemaMismatch, ExpectedEnvSchemaVersion, v)
	}

	storage := strings.ToLower(get("CART_STORAGE"))
	if storage == "" {
		storage = StorageMemory
	}

	var rep EnvReport
	required := append([]string{"API_KEY", "SHOPIFY_STORES"}, requiredFor(storage)...)
	for _, id := range splitList(get("SHOPIFY_STORES")) {
		prefix := "SHOPIFY_" + envKey(id) + "_"
		required = append(required, prefix+"DOMAIN", prefix+"TOKEN")
		if get(prefix+"TOKEN") == exampleShopToken {
			rep.Warnings = append(rep.Warnings, prefix+"TOKEN still holds the example value")
		}
	}
	for _, key := range required {
		if get(key) == "" {
			rep.Missing = append(rep.Missing, key)
		}
	}

	if storage == StoragePostgres && get("DB_PASSWORD") == exampleDBPassword {
		rep.Warnings = append(rep.Warnings, "DB_PASSWORD still holds the example value, set a real password")
	}
	if get("API_KEY") == exampleAPIKey {
		rep.Warnings = append(rep.Warnings, "API_KEY still holds the example value, generate one with: openssl rand -hex 32")
	}
	if storage == StorageMemory {
		rep.Warnings = append(rep.Warnings, "CART_STORAGE is memory, carts are lost on restart")
	}
	if get("MAT_CATALOG_URL") == "" {
		rep.Warnings = append(rep.Warnings, "MAT_CATALOG_URL is not set, mat lookups will fail")
	}
	return rep, nil
}

// ValidateEnv checks the process environment and returns its warnings.
func ValidateEnv() ([]string, error) {
	rep, err := CheckEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return rep.Warnings, rep.Err()
}
