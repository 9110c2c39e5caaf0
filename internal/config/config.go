package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type CommissionConfig struct {
	Env           string `yaml:"env" env:"COMMISSION_ENV" env-default:"local"`
	HTTPServer    `yaml:"http_server"`
	GRPCServer    `yaml:"grpc_server"`
	CommissionDB  `yaml:"commission_db"`
	LogConfig     `yaml:"log_config"`
	KafkaService  `yaml:"kafka_service"`
	Redis         `yaml:"redis"`
	Notifications `yaml:"notifications"`
	Webhooks      `yaml:"webhooks"`
	Scheduler     `yaml:"scheduler"`
}

type HTTPServer struct {
	Host         string        `yaml:"host" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"30s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"50051"`
}

type CommissionDB struct {
	Dsn            string `yaml:"dsn" env:"COMMISSION_DB_DSN"`
	MaxOpenConns   int    `yaml:"max_open_conns" env-default:"20"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
}

type KafkaService struct {
	Host              string `yaml:"host"`
	Port              string `yaml:"port"`
	Username          string `yaml:"username" env:"KAFKA_USERNAME"`
	Password          string `yaml:"password" env:"KAFKA_PASSWORD"`
	Mechanism         string `yaml:"mechanism"`
	TLSEnabled        bool   `yaml:"tls_enabled"`
	SaleTopic         string `yaml:"sale_topic" env-default:"commission-sale-events"`
	PaymentTopic      string `yaml:"payment_topic" env-default:"commission-payment-events"`
	NotificationTopic string `yaml:"notification_topic" env-default:"notification-intents"`
	IntakeTopic       string `yaml:"intake_topic"`
	ConsumerGroup     string `yaml:"consumer_group" env-default:"commission-service"`
}

func (k KafkaService) Enabled() bool {
	return k.Host != "" && k.Port != ""
}

type Redis struct {
	Addr    string        `yaml:"addr" env:"REDIS_ADDR"`
	Enabled bool          `yaml:"enabled"`
	LockTTL time.Duration `yaml:"lock_ttl" env-default:"10m"`
}

type Notifications struct {
	Driver        string        `yaml:"driver" env-default:"log"`
	GatewayURL    string        `yaml:"gateway_url" env:"NOTIFICATION_GATEWAY_URL"`
	FallbackToken string        `yaml:"fallback_token" env:"NOTIFICATION_FALLBACK_TOKEN"`
	Timeout       time.Duration `yaml:"timeout" env-default:"5s"`
}

type Webhooks struct {
	GenericSecret string `yaml:"generic_secret" env:"WEBHOOK_GENERIC_SECRET"`
}

type Scheduler struct {
	PendingSweepInterval time.Duration `yaml:"pending_sweep_interval" env-default:"0s"`
}

func MustLoad() *CommissionConfig {

	// Processing env config variable and file
	configPath := os.Getenv("COMMISSION_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("COMMISSION_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	return cfg
}

func Load(configPath string) (*CommissionConfig, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, err
	}

	// YAML to struct object
	var cfg CommissionConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
