package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:8081", cfg.HTTP.Addr())
}

func TestFromViper_LeeValoresComoString(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_AUTO_MIGRATE", "false")
	v.Set("JWT_EXPIRATION_MINUTES", "15")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 15, cfg.JWT.Expiration)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "s3")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_MinioSinEndpoint(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "minio")

	_, err := fromViper(v)
	assert.Error(t, err, "minio sin endpoint no debe aceptarse")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "portal", Password: "p@ss:word", DBName: "portal", SSLMode: "disable"}
	assert.Equal(t, "postgres://portal:p%40ss%3Aword@db:5432/portal?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestHTTPConfig_AllowedOrigins(t *testing.T) {
	c := HTTPConfig{CORSOrigins: " http://a:8080 , ,http://b "}
	assert.Equal(t, []string{"http://a:8080", "http://b"}, c.AllowedOrigins())
}
