package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prodradar",
		Short:         "Score dropshipping product candidates and generate ad creatives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(collectCmd())
	root.AddCommand(scoreCmd())
	root.AddCommand(productsCmd())
	root.AddCommand(creativesCmd())
	root.AddCommand(tiersCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(runCmd())

	return root
}

func collectCmd() *cobra.Command {
	var sources []string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect product candidates from configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(sources)
		},
	}

	cmd.Flags().StringSliceVar(&sources, "source", nil, "specific sources to collect (e.g., file,feed)")
	return cmd
}

func scoreCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score every active product and regenerate creatives",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func productsCmd() *cobra.Command {
	var opts productsOpts

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List scored products as a subscription tier sees them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProducts(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "output as JSON")
	cmd.Flags().StringVar(&opts.tier, "tier", "AGENCY", "subscription tier to view as")
	cmd.Flags().StringVar(&opts.category, "category", "", "only this category")
	cmd.Flags().IntVar(&opts.minScore, "min-score", 0, "minimum overall score")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "max products to show")
	return cmd
}

func creativesCmd() *cobra.Command {
	var (
		jsonOutput bool
		tierName   string
	)

	cmd := &cobra.Command{
		Use:   "creatives <product-id>",
		Short: "Show generated creatives for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreatives(args[0], tierName, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().StringVar(&tierName, "tier", "AGENCY", "subscription tier to view as")
	return cmd
}

func tiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Show subscription tier limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTiers()
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}

func runCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start daemon with scheduler and HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}
