package main

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/klog/v2"
	"sigs.k8s.io/controller-runtime/pkg/log"
	ctlrZap "sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/nginxinc/ingress-nginx-errors/internal/mode/serve"
	"github.com/nginxinc/ingress-nginx-errors/internal/mode/serve/config"
	"github.com/nginxinc/ingress-nginx-errors/internal/templates"
)

const (
	// envPrefix is the prefix of the environment variables that set flags, for example
	// INGRESS_NGINX_ERRORS_TEMPLATES_DIR for --templates-dir.
	envPrefix = "INGRESS_NGINX_ERRORS"

	templatesDirFlag  = "templates-dir"
	templatesDirUsage = "The directory with the error pages. A page is a file named CODE.EXTENSION, " +
		"for example 404.html or 503.json."
)

func createRootCommand() *cobra.Command {
	// flag names
	const (
		listenAddressFlag    = "listen-address"
		metricsDisableFlag   = "metrics-disable"
		metricsPortFlag      = "metrics-port"
		metricsWebConfigFlag = "metrics-web-config"
		healthDisableFlag    = "health-disable"
		healthPortFlag       = "health-port"
		watchTemplatesFlag   = "watch-templates"
		resyncPeriodFlag     = "resync-period"
		cacheSizeFlag        = "cache-size"
		preserveStatusFlag   = "preserve-status"
		shutdownTimeoutFlag  = "shutdown-timeout"
		logLevelFlag         = "log-level"
	)

	// flag values
	var (
		listenAddress = stringValidatingValue{
			validator: validateListenAddress,
			value:     "0.0.0.0:3000",
		}
		templatesDir = stringValidatingValue{
			validator: validateTemplatesDir,
		}

		disableMetrics    bool
		metricsListenPort = intValidatingValue{
			validator: validatePort,
			value:     9113,
		}
		metricsWebConfig = stringValidatingValue{
			validator: validateWebConfigFile,
		}

		disableHealth    bool
		healthListenPort = intValidatingValue{
			validator: validatePort,
			value:     8081,
		}

		watchTemplates bool
		resyncPeriod   = durationValidatingValue{
			validator: validateResyncPeriod,
			value:     5 * time.Minute,
		}
		cacheSize = intValidatingValue{
			validator: validateCacheSize,
			value:     256,
		}

		preserveStatus  bool
		shutdownTimeout = durationValidatingValue{
			validator: validateShutdownTimeout,
			value:     10 * time.Second,
		}

		logLevel = stringValidatingValue{
			validator: validateLogLevel,
			value:     "info",
		}
	)

	cmd := &cobra.Command{
		Use:           "ingress-nginx-errors",
		Short:         "Serve custom error pages for the ingress-nginx controller",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setFlagsFromEnv(cmd.Flags())
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			atom := zap.NewAtomicLevel()

			logger := ctlrZap.New(ctlrZap.Level(atom))
			klog.SetLogger(logger)

			commit, date, dirty := getBuildInfo()
			logger.Info(
				"Starting ingress-nginx-errors",
				"version", version,
				"commit", commit,
				"date", date,
				"dirty", dirty,
			)
			log.SetLogger(logger)

			port, err := listenPort(listenAddress.value)
			if err != nil {
				return fmt.Errorf("error parsing listen address: %w", err)
			}

			ports := []int{port}
			if !disableMetrics {
				ports = append(ports, metricsListenPort.value)
			}
			if !disableHealth {
				ports = append(ports, healthListenPort.value)
			}

			if err := ensureNoPortCollisions(ports...); err != nil {
				return fmt.Errorf("error validating ports: %w", err)
			}

			conf := config.Config{
				Version:         version,
				AtomicLevel:     atom,
				Logger:          logger,
				ListenAddress:   listenAddress.value,
				TemplatesDir:    templatesDir.value,
				LogLevel:        logLevel.value,
				ResyncPeriod:    resyncPeriod.value,
				ShutdownTimeout: shutdownTimeout.value,
				CacheSize:       cacheSize.value,
				WatchTemplates:  watchTemplates,
				PreserveStatus:  preserveStatus,
				MetricsConfig: config.MetricsConfig{
					Enabled:       !disableMetrics,
					Port:          metricsListenPort.value,
					WebConfigFile: metricsWebConfig.value,
				},
				HealthConfig: config.HealthConfig{
					Enabled: !disableHealth,
					Port:    healthListenPort.value,
				},
			}

			if err := serve.StartServer(conf); err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().VarP(
		&listenAddress,
		listenAddressFlag,
		"l",
		"The address the error page server listens on. Format: HOST:PORT",
	)

	cmd.Flags().VarP(
		&templatesDir,
		templatesDirFlag,
		"p",
		templatesDirUsage,
	)
	utilruntime.Must(cmd.MarkFlagRequired(templatesDirFlag))

	cmd.Flags().BoolVar(
		&disableMetrics,
		metricsDisableFlag,
		false,
		"Disable exposing metrics in the Prometheus format.",
	)

	cmd.Flags().Var(
		&metricsListenPort,
		metricsPortFlag,
		"Set the port where the metrics are exposed. Format: [1024 - 65535]",
	)

	cmd.Flags().Var(
		&metricsWebConfig,
		metricsWebConfigFlag,
		"Path to a Prometheus exporter-toolkit web configuration file that enables TLS or authentication "+
			"for the metrics endpoint.",
	)

	cmd.Flags().BoolVar(
		&disableHealth,
		healthDisableFlag,
		false,
		"Disable running the health probe server.",
	)

	cmd.Flags().Var(
		&healthListenPort,
		healthPortFlag,
		"Set the port where the health probe server is exposed. Format: [1024 - 65535]",
	)

	cmd.Flags().BoolVar(
		&watchTemplates,
		watchTemplatesFlag,
		true,
		"Watch the templates directory and keep an index and a cache of the error pages. "+
			"If disabled, every request reads the templates directory.",
	)

	cmd.Flags().Var(
		&resyncPeriod,
		resyncPeriodFlag,
		"The period at which the templates directory is rescanned when it is watched. 0 disables the rescan.",
	)

	cmd.Flags().Var(
		&cacheSize,
		cacheSizeFlag,
		fmt.Sprintf("The maximum number of error pages kept in memory when the templates directory is watched. "+
			"0 disables the cache. Format: [0 - %d]", maxCacheSize),
	)

	cmd.Flags().BoolVar(
		&preserveStatus,
		preserveStatusFlag,
		false,
		"Respond with the requested code instead of 200 when it is an HTTP error status (400-599).",
	)

	cmd.Flags().Var(
		&shutdownTimeout,
		shutdownTimeoutFlag,
		"The time given to in-flight requests to finish on shutdown.",
	)

	cmd.Flags().Var(
		&logLevel,
		logLevelFlag,
		fmt.Sprintf("The logging level. One of: %s", strings.Join(serve.SupportedLogLevels, ", ")),
	)

	return cmd
}

func createCheckCommand() *cobra.Command {
	// flag values
	templatesDir := stringValidatingValue{
		validator: validateTemplatesDir,
	}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the templates directory and list its error pages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := templates.ValidateDir(afero.NewOsFs(), templatesDir.value); err != nil {
				return err
			}

			store, err := templates.NewStore(templates.StoreConfig{
				Fs:     afero.NewBasePathFs(afero.NewOsFs(), templatesDir.value),
				Logger: ctlrZap.New(),
			})
			if err != nil {
				return err
			}

			if _, err := store.Reload(); err != nil {
				return fmt.Errorf("error reading templates directory: %w", err)
			}

			for _, page := range store.Pages() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d %s %d\n", page.Code, page.Extension, page.Size); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().VarP(
		&templatesDir,
		templatesDirFlag,
		"p",
		templatesDirUsage,
	)
	utilruntime.Must(cmd.MarkFlagRequired(templatesDirFlag))

	return cmd
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			commit, date, dirty := getBuildInfo()

			_, err := fmt.Fprintf(
				cmd.OutOrStdout(),
				"version=%s commit=%s date=%s dirty=%s\n",
				version,
				commit,
				date,
				dirty,
			)

			return err
		},
	}
}

// setFlagsFromEnv sets every flag that was not passed on the command line from its environment variable, if set.
// The values go through the same validation as the command line.
func setFlagsFromEnv(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var errs []error

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Changed || flag.Name == "help" || !v.IsSet(flag.Name) {
			return
		}

		if err := flags.Set(flag.Name, v.GetString(flag.Name)); err != nil {
			errs = append(errs, fmt.Errorf("invalid value for environment variable %s: %w", envName(flag.Name), err))
		}
	})

	return errors.Join(errs...)
}

// envName returns the name of the environment variable for the flag.
func envName(flagName string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func getBuildInfo() (commitHash string, commitTime string, dirtyBuild string) {
	commitHash = "unknown"
	commitTime = "unknown"
	dirtyBuild = "unknown"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			commitHash = kv.Value
		case "vcs.time":
			commitTime = kv.Value
		case "vcs.modified":
			dirtyBuild = kv.Value
		}
	}

	return
}
