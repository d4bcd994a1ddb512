// Package config carga la configuración: config.yaml opcional, variables de
// entorno encima y valores por defecto para todo.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/legacy"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Legacy    LegacyConfig    `mapstructure:"legacy"`
	Redirects RedirectsConfig `mapstructure:"redirects"`
	Images    ImagesConfig    `mapstructure:"images"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
	// SiteURL fija el host de las URLs canónicas; vacío usa el de la petición.
	SiteURL string `mapstructure:"site_url" validate:"omitempty,url"`
	// ReloadEvery relee catálogo y redirecciones cada tanto; 0 lo desactiva.
	ReloadEvery time.Duration `mapstructure:"reload_every" validate:"min=0"`
}

type CatalogConfig struct {
	Input    string `mapstructure:"input" validate:"required"`
	Products string `mapstructure:"products" validate:"required"`
	Report   string `mapstructure:"report" validate:"required"`
	Errors   string `mapstructure:"errors" validate:"required"`
	// DBDSN activa la copia del catálogo en Postgres; vacío la desactiva.
	DBDSN  string `mapstructure:"db_dsn"`
	Strict bool   `mapstructure:"strict"`
}

type LegacyConfig struct {
	NoRule    string                           `mapstructure:"no_rule" validate:"oneof=not_found slug_tokens"`
	ZeroMatch string                           `mapstructure:"zero_match" validate:"oneof=full_catalog empty"`
	Rules     map[string]domain.LegacyMenuRule `mapstructure:"rules" validate:"omitempty,dive"`
}

func (c LegacyConfig) Policy() legacy.Policy {
	return legacy.Policy{NoRule: legacy.NoRulePolicy(c.NoRule), ZeroMatch: legacy.ZeroMatchPolicy(c.ZeroMatch)}
}

type RedirectsConfig struct {
	Map    string `mapstructure:"map" validate:"required"`
	Sample string `mapstructure:"sample" validate:"required"`
	Out    string `mapstructure:"out" validate:"required"`
	Strict bool   `mapstructure:"strict"`
}

type ImagesConfig struct {
	OutDir       string        `mapstructure:"out_dir" validate:"required"`
	PublicPrefix string        `mapstructure:"public_prefix" validate:"required"`
	Map          string        `mapstructure:"map" validate:"required"`
	Workers      int           `mapstructure:"workers" validate:"min=1,max=64"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RPS          int           `mapstructure:"rps" validate:"min=0"`
	Strict       bool          `mapstructure:"strict"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}()

// Load lee path (o config.yaml del directorio actual si path está vacío).
// La falta del archivo no es un error; un archivo inválido sí.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// nombres que ya usaban los despliegues anteriores
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("catalog.db_dsn", "CATALOG_DB_DSN", "DB_DSN")
	_ = v.BindEnv("server.site_url", "SERVER_SITE_URL", "BASE_URL")
	_ = v.BindEnv("log.level", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("leyendo configuración: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decodificando configuración: %w", err)
	}
	if len(cfg.Legacy.Rules) == 0 {
		cfg.Legacy.Rules = legacy.DefaultRules()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: no cumple %s", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag()))
		}
		return fmt.Errorf("configuración inválida: %s", strings.Join(msgs, "; "))
	}
	return err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.site_url", "")
	v.SetDefault("server.reload_every", time.Duration(0))

	v.SetDefault("catalog.input", "data/exportProducts.csv")
	v.SetDefault("catalog.products", "lib/data/products.json")
	v.SetDefault("catalog.report", "out/import-report.json")
	v.SetDefault("catalog.errors", "out/import-errors.json")
	v.SetDefault("catalog.db_dsn", "")
	v.SetDefault("catalog.strict", false)

	v.SetDefault("legacy.no_rule", string(legacy.NoRuleNotFound))
	v.SetDefault("legacy.zero_match", string(legacy.ZeroMatchFullCatalog))

	v.SetDefault("redirects.map", "data/legacy-map.csv")
	v.SetDefault("redirects.sample", "data/legacy-map.sample.csv")
	v.SetDefault("redirects.out", "out/redirects.json")
	v.SetDefault("redirects.strict", false)

	v.SetDefault("images.out_dir", "public/media/products")
	v.SetDefault("images.public_prefix", "/media/products")
	v.SetDefault("images.map", "out/image-map.json")
	v.SetDefault("images.workers", 5)
	v.SetDefault("images.timeout", 10*time.Second)
	v.SetDefault("images.rps", 0)
	v.SetDefault("images.strict", false)

	v.SetDefault("log.level", "info")
}
