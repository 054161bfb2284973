package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(kv map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := kv[k]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"ENV_SCHEMA_VERSION":  ExpectedEnvSchemaVersion,
		"API_KEY":             "key",
		"SHOPIFY_STORES":      "acme",
		"SHOPIFY_ACME_DOMAIN": "acme.myshopify.com",
		"SHOPIFY_ACME_TOKEN":  "shpat_real",
		"CART_STORAGE":        "file",
		"MAT_CATALOG_URL":     "https://mats.example.com/catalog.json",
	}
}

func TestCheckEnv_SchemaVersion(t *testing.T) {
	env := baseEnv()
	delete(env, "ENV_SCHEMA_VERSION")
	_, err := CheckEnv(envMap(env))
	assert.ErrorIs(t, err, ErrEnvSchemaMissing)

	env["ENV_SCHEMA_VERSION"] = "0.9"
	_, err = CheckEnv(envMap(env))
	assert.ErrorIs(t, err, ErrEnvSchemaMismatch)
	assert.ErrorContains(t, err, "expected "+ExpectedEnvSchemaVersion+", got 0.9")
}

func TestCheckEnv_Clean(t *testing.T) {
	rep, err := CheckEnv(envMap(baseEnv()))
	require.NoError(t, err)
	assert.Empty(t, rep.Missing)
	assert.Empty(t, rep.Warnings)
	assert.NoError(t, rep.Err())
}

func TestCheckEnv_MissingByBackend(t *testing.T) {
	tests := []struct {
		storage string
		want    []string
	}{
		{"postgres", []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"}},
		{"redis", []string{"REDIS_URL"}},
		{"file", nil},
	}
	for _, tt := range tests {
		t.Run(tt.storage, func(t *testing.T) {
			env := baseEnv()
			env["CART_STORAGE"] = tt.storage
			rep, err := CheckEnv(envMap(env))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rep.Missing)
		})
	}
}

func TestCheckEnv_StoreCredentials(t *testing.T) {
	env := baseEnv()
	env["SHOPIFY_STORES"] = "acme, west-coast"
	env["SHOPIFY_WEST_COAST_DOMAIN"] = "west.myshopify.com"

	rep, err := CheckEnv(envMap(env))
	require.NoError(t, err)
	assert.Equal(t, []string{"SHOPIFY_WEST_COAST_TOKEN"}, rep.Missing)
	assert.ErrorIs(t, rep.Err(), ErrEnvMissing)
	assert.ErrorContains(t, rep.Err(), "SHOPIFY_WEST_COAST_TOKEN")
}

func TestCheckEnv_Warnings(t *testing.T) {
	env := baseEnv()
	env["API_KEY"] = exampleAPIKey
	env["CART_STORAGE"] = "postgres"
	env["DB_USER"], env["DB_HOST"], env["DB_PORT"], env["DB_NAME"] = "u", "localhost", "5432", "db"
	env["DB_PASSWORD"] = exampleDBPassword
	env["SHOPIFY_ACME_TOKEN"] = exampleShopToken
	delete(env, "MAT_CATALOG_URL")

	rep, err := CheckEnv(envMap(env))
	require.NoError(t, err, "warnings do not fail validation")
	require.Len(t, rep.Warnings, 4)
	assert.Contains(t, rep.Warnings[0], "SHOPIFY_ACME_TOKEN")
	assert.Contains(t, rep.Warnings[1], "DB_PASSWORD")
	assert.Contains(t, rep.Warnings[2], "API_KEY")
	assert.Contains(t, rep.Warnings[3], "MAT_CATALOG_URL")
}

func TestCheckEnv_MemoryStorageWarns(t *testing.T) {
	env := baseEnv()
	delete(env, "CART_STORAGE")

	rep, err := CheckEnv(envMap(env))
	require.NoError(t, err)
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "CART_STORAGE")
}

func TestValidateEnv_ProcessEnvironment(t *testing.T) {
	for k, v := range baseEnv() {
		t.Setenv(k, v)
	}
	t.Setenv("API_KEY", "")

	_, err := ValidateEnv()
	assert.ErrorIs(t, err, ErrEnvMissing)
}
