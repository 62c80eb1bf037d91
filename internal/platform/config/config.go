package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Pipeline tunables live on
// explicit config structs in their own packages; this only covers wiring:
// addresses, DSNs, and external endpoints.
type Server struct {
	Addr string

	// PostgresDSN enables the durable results and audit stores when set;
	// empty means in-memory stores.
	PostgresDSN string

	// RedisURL enables the identity-validity cache when set.
	RedisURL string

	// KafkaBrokers enables the Kafka audit publisher when non-empty.
	KafkaBrokers []string
	AuditTopic   string

	// IdentityCheckURL is the external SSN-validity capability endpoint.
	IdentityCheckURL     string
	IdentityCheckTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean.
func FromEnv() Server {
	cfg := Server{
		Addr:                 getenv("CLEANROOM_ADDR", ":8080"),
		PostgresDSN:          os.Getenv("CLEANROOM_POSTGRES_DSN"),
		RedisURL:             os.Getenv("CLEANROOM_REDIS_URL"),
		AuditTopic:           getenv("CLEANROOM_AUDIT_TOPIC", "cleanroom.audit"),
		IdentityCheckURL:     os.Getenv("CLEANROOM_IDENTITY_CHECK_URL"),
		IdentityCheckTimeout: 2 * time.Second,
	}
	if brokers := os.Getenv("CLEANROOM_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
