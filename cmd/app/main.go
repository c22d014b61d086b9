package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starred-catalog/internal/adapter/catalog"
	"starred-catalog/internal/adapter/classifier"
	"starred-catalog/internal/adapter/github"
	"starred-catalog/internal/common"
	"starred-catalog/internal/config"
	"starred-catalog/internal/logger"
	"starred-catalog/internal/service"

	"github.com/spf13/cobra"
)

type runOptions struct {
	output    string
	rulesPath string
	envFile   string
	pageDelay time.Duration
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "starred-catalog",
		Short: "Build a classified JSON catalog of your GitHub stars",
		Long: `Fetches every repository starred by the token owner (or GITHUB_USERNAME),
enriches it with license, languages and topics, assigns subjects by keyword
and writes the result, newest star first, to a JSON file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), opts, cmd.OutOrStdout())
			if err != nil {
				logger.WithError(err).Error("catalog run failed")
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", catalog.DefaultPath, "destination JSON file")
	flags.StringVar(&opts.rulesPath, "rules", "", "YAML file replacing the built-in subject rules")
	flags.StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
	flags.DurationVar(&opts.pageDelay, "page-delay", common.DefaultPageDelay, "pause after each starred page")

	return cmd
}

func run(ctx context.Context, opts runOptions, out io.Writer) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel)

	rules := classifier.DefaultRules()
	if opts.rulesPath != "" {
		if rules, err = classifier.LoadRules(opts.rulesPath); err != nil {
			return err
		}
	}

	fetcher := github.NewFetcher(cfg.GitHub.Token,
		github.WithUsername(cfg.GitHub.Username),
		github.WithPacer(common.NewFixedPacer(opts.pageDelay)),
	)
	if cfg.GitHub.APIURL != "" {
		if err := fetcher.SetBaseURL(cfg.GitHub.APIURL); err != nil {
			return err
		}
	}

	store := catalog.NewJSONStore(opts.output)
	svc := service.NewCatalogService(fetcher, fetcher, fetcher, classifier.New(rules), store)

	n, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "OK -> %d repos a %s\n", n, store.Path())
	return nil
}
