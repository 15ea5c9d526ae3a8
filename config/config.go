package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	PgURL     string `env:"PG_URL" required:"true"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	PaymentsBaseURL     string        `env:"PAYMENTS_BASE_URL" required:"true"`
	PaymentsTimeout     time.Duration `env:"PAYMENTS_TIMEOUT" envDefault:"20s"`
	FraudOracleBaseURL  string        `env:"FRAUD_ORACLE_BASE_URL" required:"true"`
	FraudOracleTimeout  time.Duration `env:"FRAUD_ORACLE_TIMEOUT" envDefault:"10s"`
	ReputationBaseURL   string        `env:"REPUTATION_BASE_URL" required:"true"`
	ReputationTimeout   time.Duration `env:"REPUTATION_TIMEOUT" envDefault:"5s"`

	// Deadlines for the escrow workflow. All enforced server-side by the
	// background sweep.
	TransferProofDeadline   time.Duration `env:"TRANSFER_PROOF_DEADLINE" envDefault:"24h"`
	BuyerResponseDeadline   time.Duration `env:"BUYER_RESPONSE_DEADLINE" envDefault:"24h"`
	DisputeResponseDeadline time.Duration `env:"DISPUTE_RESPONSE_DEADLINE" envDefault:"48h"`
	PendingOrderTTL         time.Duration `env:"PENDING_ORDER_TTL" envDefault:"30m"`
	SweepInterval           time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`

	// BuyerAutoConfirm controls whether buyer inaction past the response
	// deadline auto-confirms receipt in the seller's favor. Financially
	// significant; keep in sync with product policy.
	BuyerAutoConfirm bool `env:"BUYER_AUTO_CONFIRM" envDefault:"true"`

	RateLimitWindow         time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitWritePerWindow int64         `env:"RATE_LIMIT_WRITE_PER_WINDOW" envDefault:"30"`

	MaxActiveListingsPerSeller int `env:"MAX_ACTIVE_LISTINGS_PER_SELLER" envDefault:"20"`

	KafkaBrokers            []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaNotificationsTopic string   `env:"KAFKA_NOTIFICATIONS_TOPIC" envDefault:"escrow.notifications"`

	OpensearchUrls        []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexEvents string   `env:"OPENSEARCH_INDEX_EVENTS" envDefault:"escrow-events"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
