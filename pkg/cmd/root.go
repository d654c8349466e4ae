package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/c9s/bitflyer/pkg/cmd/cmdutil"
	"github.com/c9s/bitflyer/pkg/config"
	"github.com/c9s/bitflyer/pkg/types"
)

var userConfig *config.Config

var RootCmd = &cobra.Command{
	Use:   "bitflyer",
	Short: "bitflyer lightning api client",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dotenvFile := viper.GetString("dotenv")
		if _, err := os.Stat(dotenvFile); err == nil {
			if err := godotenv.Load(dotenvFile); err != nil {
				return errors.Wrapf(err, "error loading dotenv file %s", dotenvFile)
			}
		}

		c, err := loadConfig(viper.GetString("config"))
		if err != nil {
			return err
		}

		userConfig = c
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	cmdutil.PersistentFlags(RootCmd.PersistentFlags())
}

func loadConfig(configFile string) (*config.Config, error) {
	if len(configFile) > 0 {
		return config.Load(configFile)
	}

	c := config.Default()
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// productCode returns the --product flag, or the first configured product code.
func productCode() types.ProductCode {
	if p := viper.GetString("product"); len(p) > 0 {
		return types.ProductCode(p)
	}

	return userConfig.Bitflyer.GetProductCodes()[0]
}

func setupLogging() {
	log.SetFormatter(&prefixed.TextFormatter{})

	logger := log.StandardLogger()
	if viper.GetBool("debug") {
		logger.SetLevel(log.DebugLevel)
	}

	if logFile := viper.GetString("log-file"); len(logFile) > 0 {
		writer := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 7,
			MaxAge:     30, // days
		}

		logger.AddHook(
			lfshook.NewHook(
				lfshook.WriterMap{
					log.DebugLevel: writer,
					log.InfoLevel:  writer,
					log.WarnLevel:  writer,
					log.ErrorLevel: writer,
					log.FatalLevel: writer,
				},
				&log.JSONFormatter{},
			),
		)
	}
}

func Execute() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	if err := viper.BindPFlags(RootCmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}

	cobra.OnInitialize(setupLogging)

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
