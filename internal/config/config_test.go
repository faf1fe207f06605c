package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ParsesTOML(t *testing.T) {
	data := []byte(`
listenaddress = ":9090"

[dialect]
shorttagsenabled = true

[db]
type = "sqlite"
datadir = "/var/lib/phpsyn"
`)

	cfg, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddress)
	assert.True(t, cfg.Dialect.ShortTagsEnabled)
	assert.Equal(t, DatabaseSQLite, cfg.DB.Type)
	assert.Equal(t, "/var/lib/phpsyn", cfg.DB.DataDir)
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	_, err := Load([]byte("this is not = = toml"))
	assert.Error(t, err)
}

func TestConfig_FillDefaults(t *testing.T) {
	cfg := Config{}.FillDefaults()

	assert.Equal(t, ":8080", cfg.ListenAddress)
	assert.NotEmpty(t, cfg.AuthSecret)
	assert.Equal(t, DatabaseInMemory, cfg.DB.Type)
}

func TestConfig_FillDefaultsDoesNotOverrideSetValues(t *testing.T) {
	cfg := Config{ListenAddress: ":1234"}.FillDefaults()
	assert.Equal(t, ":1234", cfg.ListenAddress)
}

func TestConfig_ValidateRejectsShortSecret(t *testing.T) {
	cfg := Config{AuthSecret: []byte("too short")}.FillDefaults()
	cfg.AuthSecret = []byte("short")

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth secret")
}

func TestConfig_ValidateRejectsLongSecret(t *testing.T) {
	cfg := Config{}.FillDefaults()
	cfg.AuthSecret = make([]byte, MaxSecretSize+1)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth secret")
}

func TestConfig_ValidateRejectsSQLiteWithoutDataDir(t *testing.T) {
	cfg := Config{DB: Database{Type: DatabaseSQLite}}.FillDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DataDir")
}

func TestConfig_ValidateAcceptsFilledDefaults(t *testing.T) {
	cfg := Config{}.FillDefaults()
	assert.NoError(t, cfg.Validate())
}

func TestParseDBType_RejectsUnknown(t *testing.T) {
	_, err := ParseDBType("postgres")
	assert.Error(t, err)
}
