package main

import (
	"github.com/spf13/viper"
)

// Config is the CLI configuration, read from config.yaml and the environment.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	AppName  string `mapstructure:"app_name"`

	// Cluster is "dev" or "prod"
	Cluster string `mapstructure:"cluster"`

	// RpcEndpoint overrides the cluster's public RPC endpoint
	RpcEndpoint string `mapstructure:"rpc_endpoint"`

	// KeypairPath is a Solana CLI keypair file used as the connected wallet.
	// Read only commands work without one.
	KeypairPath string `mapstructure:"keypair_path"`

	// HistoryBackend is one of memory, file, sqlite, postgres or redis
	HistoryBackend string `mapstructure:"history_backend"`
	HistoryPath    string `mapstructure:"history_path"`

	PostgresHost     string `mapstructure:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"`
	PostgresDbName   string `mapstructure:"postgres_db_name"`

	RedisAddress  string `mapstructure:"redis_address"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDb       int    `mapstructure:"redis_db"`
	RedisKey      string `mapstructure:"redis_key"`

	// WatchSchedule is the cron schedule of the watch command
	WatchSchedule string `mapstructure:"watch_schedule"`

	NewRelicLicenseKey string `mapstructure:"new_relic_license_key"`
}

var defaultConfig = Config{
	LogLevel: "info",
	AppName:  "madraffle",

	Cluster: "dev",

	HistoryBackend: "file",
	HistoryPath:    "madraffle.json",

	PostgresPort: 5432,

	RedisAddress: "localhost:6379",

	WatchSchedule: "@every 1m",
}

func init() {
	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("app_name", "APP_NAME")

	_ = viper.BindEnv("cluster", "RAFFLE_CLUSTER")
	_ = viper.BindEnv("rpc_endpoint", "RAFFLE_RPC_ENDPOINT")
	_ = viper.BindEnv("keypair_path", "RAFFLE_KEYPAIR_PATH")

	_ = viper.BindEnv("history_backend", "RAFFLE_HISTORY_BACKEND")
	_ = viper.BindEnv("history_path", "RAFFLE_HISTORY_PATH")

	_ = viper.BindEnv("postgres_host", "POSTGRES_HOST")
	_ = viper.BindEnv("postgres_port", "POSTGRES_PORT")
	_ = viper.BindEnv("postgres_user", "POSTGRES_USER")
	_ = viper.BindEnv("postgres_password", "POSTGRES_PASSWORD")
	_ = viper.BindEnv("postgres_db_name", "POSTGRES_DB_NAME")

	_ = viper.BindEnv("redis_address", "REDIS_ADDRESS")
	_ = viper.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis_db", "REDIS_DB")
	_ = viper.BindEnv("redis_key", "REDIS_KEY")

	_ = viper.BindEnv("watch_schedule", "RAFFLE_WATCH_SCHEDULE")

	_ = viper.BindEnv("new_relic_license_key", "NEW_RELIC_LICENSE_KEY")
}
