// Command shopctl drives the shop API from a terminal with the same views the
// console serves over HTTP. The bearer token is kept in a file scoped to the
// API origin, so a login survives across invocations.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bingo/shop-console/internal/core/service"
	"github.com/bingo/shop-console/internal/infrastructure/apiclient"
	"github.com/bingo/shop-console/internal/infrastructure/tokenstore"
	"github.com/bingo/shop-console/internal/pkg/config"
	"github.com/bingo/shop-console/pkg/logger"
)

const cliSessionID = "shopctl"

var (
	// Global flags; empty values fall back to the SHOPCTL_ environment.
	apiURL    string
	tokenFile string
	logLevel  string
	timeout   time.Duration

	log = zerolog.Nop()
)

var errNotLoggedIn = errors.New("not logged in: run `shopctl login` first")

var rootCmd = &cobra.Command{
	Use:           "shopctl",
	Short:         "Administer shops and commissions through the shop API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings(cmd.Context())
		if err != nil {
			return err
		}
		log = logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  true,
			Output:  os.Stderr,
			Service: "shopctl",
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "shop API base URL (env SHOPCTL_API_URL)")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "token file (env SHOPCTL_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (env SHOPCTL_LOG_LEVEL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-request timeout, 0 for none (env SHOPCTL_TIMEOUT)")

	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd, shopsCmd, commissionsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// settings merges the environment configuration with the global flags.
func settings(ctx context.Context) (*config.CLIConfig, error) {
	cfg, err := config.LoadCLI(orBackground(ctx))
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if tokenFile != "" {
		cfg.TokenFile = tokenFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	if cfg.TokenFile == "" {
		if cfg.TokenFile, err = tokenstore.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// openWorkspace builds the single-operator workspace every command runs in.
func openWorkspace(ctx context.Context) (*service.Workspace, *config.CLIConfig, error) {
	cfg, err := settings(ctx)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := tokenstore.NewFile(cfg.TokenFile, cfg.APIURL)
	if err != nil {
		return nil, nil, err
	}
	client := apiclient.New(apiclient.Config{
		BaseURL:    cfg.APIURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}, tokens, log)

	ws := service.NewWorkspace(orBackground(ctx), service.WorkspaceDeps{
		SessionID:      cliSessionID,
		Tokens:         tokens,
		API:            apiclient.NewGateway(client),
		CurrencyPrefix: cfg.CurrencyPrefix,
		Log:            log,
	})
	return ws, cfg, nil
}

// openProtected is openWorkspace behind the route guard: commands that need
// a token fail before any request is sent.
func openProtected(ctx context.Context) (*service.Workspace, error) {
	ws, _, err := openWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	if ws.Controller.Resolve(service.RouteShops) != service.RouteShops {
		return nil, errNotLoggedIn
	}
	return ws, nil
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// prompt prints label and reads one line from in.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimSpace(line), nil
}
