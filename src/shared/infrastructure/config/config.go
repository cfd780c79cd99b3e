package config

import "os"

// Config agrupa la configuración del servicio leída de variables de entorno
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr string
	AMQPURL   string

	// Prefijo del código público de venta (ej: "V" → V0001)
	SalePrefix string

	PrometheusEnabled bool
}

// Load lee la configuración desde el entorno con valores por defecto
func Load() Config {
	return Config{
		Port:              getEnv("PORT", "8080"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "sales_db"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		AMQPURL:           getEnv("AMQP_URL", ""),
		SalePrefix:        getEnv("SALE_PUBLIC_ID_PREFIX", "V"),
		PrometheusEnabled: getEnv("PROMETHEUS_ENABLED", "true") == "true",
	}
}

// DSN arma el string de conexión de PostgreSQL
func (c Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=disable"
}

// getEnv obtiene una variable de entorno o devuelve un valor por defecto
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
