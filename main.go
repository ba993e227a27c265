package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"restrict_ip/internal/config"
	"restrict_ip/internal/dataType"
	"restrict_ip/internal/engine"
	"restrict_ip/internal/metrics"
	"restrict_ip/internal/server"
	"restrict_ip/internal/utils"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	sessionGCInterval = time.Minute
	shutdownTimeout   = 10 * time.Second
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var basePath string

	rootCmd := &cobra.Command{
		Use:           "restrict_ip",
		Short:         "IP based access gate for nginx auth_request",
		Version:       dataType.RestrictIPVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(basePath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&basePath, "prefix", "", "Config file base path")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the auth daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(basePath)
		},
	})
	rootCmd.AddCommand(newCheckCmd(&basePath))
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the daemon config and the policy files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadMainConfig(basePath)
			if err != nil {
				return fmt.Errorf("configuration invalid: %w", err)
			}
			policy, err := config.LoadPolicy(cfg.RulePath)
			if err != nil {
				return fmt.Errorf("policy invalid: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid (mode %s, %d address entries)\n",
				policy.ListMode, len(policy.MergedAddresses()))
			return nil
		},
	})

	return rootCmd
}

func newCheckCmd(basePath *string) *cobra.Command {
	var (
		ip       string
		path     string
		rulePath string
		bypass   bool
		cli      bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate one request against the policy and print the decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rulePath == "" {
				cfg, err := config.LoadMainConfig(*basePath)
				if err != nil {
					return err
				}
				rulePath = cfg.RulePath
			}
			policy, err := config.LoadPolicy(rulePath)
			if err != nil {
				return err
			}

			req := dataType.RequestContext{
				ClientIP:            ip,
				Path:                utils.NormalizePath(path),
				HasBypassCapability: bypass,
				IsCLI:               cli,
			}
			decision := engine.New(nil, nil).Evaluate(policy, req, nil)
			fmt.Fprintf(cmd.OutOrStdout(), "%s reason=%s\n", decision.Result(), decision.Reason)
			return nil
		},
	}

	cmd.Flags().StringVar(&ip, "ip", "", "Client IP address")
	cmd.Flags().StringVar(&path, "path", "/", "Requested path")
	cmd.Flags().StringVar(&rulePath, "rules", "", "Rule directory, overrides rule_path from the config")
	cmd.Flags().BoolVar(&bypass, "bypass", false, "Caller holds the bypass permission")
	cmd.Flags().BoolVar(&cli, "cli", false, "Evaluate as a command line invocation")
	_ = cmd.MarkFlagRequired("ip")

	return cmd
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Print the address tokens of an address list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			for _, token := range utils.ParseAddressList(string(data)) {
				fmt.Fprintln(cmd.OutOrStdout(), token)
			}
			return nil
		},
	}
}

func runServe(basePath string) error {
	// Load MainConfig
	cfg, err := config.LoadMainConfig(basePath)
	if err != nil {
		return fmt.Errorf("load config failed: %w", err)
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	logger := utils.NewLogger(cfg.LogPath, level)
	defer func() { _ = logger.Sync() }()

	m := metrics.New()

	// Load policy
	policies, err := config.NewPolicyStore(cfg.RulePath)
	if err != nil {
		logger.Error("Load policy failed", zap.Error(err))
		return fmt.Errorf("load policy failed: %w", err)
	}
	m.RecordReload(nil, len(policies.Load().MergedAddresses()))
	policies.OnReload(func(err error, policy *dataType.PolicyConfig) {
		if err != nil {
			logger.Error("Policy reload failed, keeping previous policy", zap.Error(err))
			m.RecordReload(err, 0)
			return
		}
		logger.Info("Policy reloaded",
			zap.Bool("enabled", policy.Enabled),
			zap.Stringer("mode", policy.ListMode),
			zap.Int("addresses", len(policy.MergedAddresses())))
		m.RecordReload(nil, len(policy.MergedAddresses()))
	})

	srv := server.NewServer(cfg, policies, logger.Named("server"), m)

	stopGC := make(chan struct{})
	defer close(stopGC)
	go dataType.StartSessionGC(srv.Sessions(), sessionGCInterval, stopGC)

	logger.Info("Ready to start server", zap.String("port", cfg.Port), zap.String("rule_path", cfg.RulePath))

	// Start server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	for {
		select {
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				_ = policies.Reload()
				continue
			}
			logger.Info("Stopping server...", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			err := srv.Shutdown(ctx)
			cancel()
			if err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			logger.Info("Server stopped")
			return nil
		case err := <-serverErr:
			if err != nil {
				logger.Error("Failed to start server", zap.Error(err))
				return err
			}
			return nil
		}
	}
}
