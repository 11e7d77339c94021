package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/code-payments/mad-raffle/pkg/apierror"
	"github.com/code-payments/mad-raffle/pkg/metrics"
	"github.com/code-payments/mad-raffle/pkg/raffle"
	"github.com/code-payments/mad-raffle/pkg/solana"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "configuration file path",
		Value: "config.yaml",
	}
	envFlag = cli.StringFlag{
		Name:  "env",
		Usage: "dotenv file path",
		Value: ".env",
	}
)

// appSettings are the global flags shared by every command
type appSettings struct {
	configPath string
	envPath    string
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.StandardLogger().WithError(err).Error("madraffle failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "madraffle"
	app.Usage = "query and play the Mad Raffle on Solana"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		configFlag,
		envFlag,
	}
	app.Commands = appCommands()
	app.CommandNotFound = func(c *cli.Context, command string) {
		logrus.StandardLogger().WithField("command", command).Error("unknown command")
		_ = cli.ShowAppHelp(c)
		cli.OsExiter(2)
	}
	return app
}

// execute runs a single command against a freshly built runtime and writes its
// response to stdout, returning the process exit code.
func execute(name string, settings *appSettings, fn commandFunc, args []string) int {
	logger := logrus.StandardLogger().WithFields(logrus.Fields{
		"type":   "cmd/madraffle",
		"run_id": uuid.New().String(),
	})

	// Values already in the environment win over the dotenv file
	if err := godotenv.Load(settings.envPath); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).Error("failed to load dotenv file")
		return 1
	}

	config, err := loadConfig(settings.configPath)
	if err != nil {
		logger.WithError(err).Error("failed to load config")
		return 1
	}

	var metricsProvider *newrelic.Application
	if len(config.NewRelicLicenseKey) > 0 {
		metricsProvider, err = newrelic.NewApplication(
			newrelic.ConfigFromEnvironment(),
			newrelic.ConfigAppName(config.AppName),
			newrelic.ConfigLicense(config.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.WithError(err).Error("error connecting to new relic")
			return 1
		}
		defer metricsProvider.Shutdown(5 * time.Second)
	}

	configureLogger(config, metricsProvider)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if metricsProvider != nil {
		ctx = metrics.NewContext(ctx, metricsProvider)
	}

	client, closeStore, err := newRaffleClient(config)
	if err != nil {
		logger.WithError(err).Error("failed to create raffle client")
		return 1
	}
	defer closeStore()

	r := &runtime{
		log:    logger.WithField("command", name),
		config: config,
		client: client,
	}

	result, err := fn(ctx, r, args)
	if err != nil {
		apierror.Notify(r.log, err)
	}
	if writeErr := writeResponse(os.Stdout, result, err); writeErr != nil {
		logger.WithError(writeErr).Error("failed to write response")
		return 1
	}
	if err != nil {
		return 1
	}
	return 0
}

func loadConfig(configPath string) (Config, error) {
	// viper.ReadInConfig only returns ConfigFileNotFoundError when searching
	// for a default file, so a missing explicit file is checked here.
	if _, err := os.Stat(configPath); err == nil {
		viper.SetConfigFile(configPath)
	} else if !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "failed to check if config exists")
	}

	err := viper.ReadInConfig()
	_, isConfigNotFound := err.(viper.ConfigFileNotFoundError)
	if err != nil && !isConfigNotFound {
		return Config{}, errors.Wrap(err, "failed to read config")
	}

	config := defaultConfig
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	return config, nil
}

func newRaffleClient(config Config) (*raffle.Client, func(), error) {
	cluster, err := raffle.ClusterFromName(config.Cluster)
	if err != nil {
		return nil, nil, err
	}

	endpoint := cluster.Environment
	if len(config.RpcEndpoint) > 0 {
		endpoint = solana.ResolveEnvironment(config.RpcEndpoint)
	}

	store, closeStore, err := newHistoryStore(config)
	if err != nil {
		return nil, nil, err
	}

	opts := []raffle.Option{
		raffle.WithSolanaClient(solana.New(string(endpoint))),
		raffle.WithHistoryStore(store),
	}
	if len(config.KeypairPath) > 0 {
		wallet, err := raffle.LoadKeypairWallet(config.KeypairPath)
		if err != nil {
			closeStore()
			return nil, nil, err
		}
		opts = append(opts, raffle.WithWallet(wallet))
	}

	client, err := raffle.NewClient(cluster, opts...)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return client, closeStore, nil
}

// configureLogger writes logs to stderr, leaving stdout to command output
func configureLogger(config Config, metricsProvider *newrelic.Application) {
	if metricsProvider != nil {
		logrus.SetFormatter(metrics.NewLogFormatter(metricsProvider, &logrus.JSONFormatter{}))
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		logrus.StandardLogger().WithField("log_level", config.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	logrus.SetOutput(os.Stderr)
}
