package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	Store StoreConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Cash  CashConfig
	Admin AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env              string // development, staging, production
	Name             string
	UIDir            string // carpeta con el build estático de la interfaz (vacío = sin UI)
	LogLevel         string
	PhoneRegion      string // región para validar teléfonos (vacío = sin validación)
	ExpiryWindowDays int
}

// StoreConfig selección del backend clave-valor.
type StoreConfig struct {
	Driver  string // memory | file | sqlite | postgres | redis
	DataDir string // file y sqlite (farmacia.db)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig configuración del backend Redis.
type RedisConfig struct {
	URL     string
	LockTTL time.Duration
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CashConfig parámetros de caja.
type CashConfig struct {
	DefaultOpening decimal.Decimal // saldo inicial cuando no hay caja guardada
	Currency       string          // código ISO 4217
	Timezone       string
}

// Location zona horaria de los días de caja. Si no se puede cargar se usa la hora local.
func (c CashConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// AdminConfig usuario administrador creado cuando no hay usuarios.
type AdminConfig struct {
	Username string
	Password string
	Name     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	opening, err := decimal.NewFromString(getString(v, "CASH_DEFAULT_OPENING", "1200.00"))
	if err != nil {
		return nil, fmt.Errorf("CASH_DEFAULT_OPENING inválido: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:              getString(v, "APP_ENV", "development"),
			Name:             getString(v, "APP_NAME", "farmacia-pos"),
			UIDir:            getString(v, "APP_UI_DIR", ""),
			LogLevel:         getString(v, "LOG_LEVEL", "info"),
			PhoneRegion:      getString(v, "PHONE_REGION", "NI"),
			ExpiryWindowDays: getInt(v, "EXPIRY_WINDOW_DAYS", 30),
		},
		Store: StoreConfig{
			Driver:  strings.ToLower(getString(v, "STORE_DRIVER", StoreFile)),
			DataDir: getString(v, "STORE_DATA_DIR", "./data"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "farmacia"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:     getString(v, "REDIS_URL", "redis://localhost:6379/0"),
			LockTTL: time.Duration(getInt(v, "REDIS_LOCK_TTL_SECONDS", 10)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "farmacia-pos"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Cash: CashConfig{
			DefaultOpening: opening,
			Currency:       strings.ToUpper(getString(v, "CASH_CURRENCY", "NIO")),
			Timezone:       getString(v, "CASH_TIMEZONE", "America/Managua"),
		},
		Admin: AdminConfig{
			Username: getString(v, "ADMIN_USERNAME", "admin"),
			Password: getString(v, "ADMIN_PASSWORD", "admin123"),
			Name:     getString(v, "ADMIN_NAME", "Administrador"),
		},
	}

	switch cfg.Store.Driver {
	case StoreMemory, StoreFile, StoreSQLite, StorePostgres, StoreRedis:
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
