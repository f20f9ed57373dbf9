package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/adrianliechti/docsmith/config"
	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/dispatch"
	"github.com/adrianliechti/docsmith/server"

	"github.com/spf13/cobra"
)

var configFlag string

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docsmith",
		Short: "Convert documents to Markdown through interchangeable backends",

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "config file")

	cmd.AddCommand(parseCmd())
	cmd.AddCommand(backendsCmd())
	cmd.AddCommand(serveCmd())

	return cmd
}

func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		return config.Parse(configFlag)
	}

	return config.FromEnvironment()
}

func parseCmd() *cobra.Command {
	var backendFlag string
	var modelFlag string
	var outputFlag string
	var languagesFlag []string
	var timeoutFlag time.Duration

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Convert a document to Markdown",

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()

			if err != nil {
				return err
			}

			engine := dispatch.New(cfg.Registry,
				dispatch.WithAttempts(cfg.Attempts),
				dispatch.WithDelay(cfg.Delay),
				dispatch.WithTimeout(cfg.Timeout),
			)

			document, err := engine.Parse(cmd.Context(), dispatch.Request{
				Path: args[0],

				Backend: backendFlag,

				Options: &backend.ConvertOptions{
					Model:     modelFlag,
					Languages: languagesFlag,
				},

				Timeout: timeoutFlag,
			})

			if err != nil {
				return err
			}

			output := os.Stdout

			if outputFlag != "" {
				f, err := os.Create(outputFlag)

				if err != nil {
					return err
				}

				defer f.Close()

				output = f
			}

			fmt.Fprintln(output, document.Text)

			fmt.Fprintf(os.Stderr, "parsed %d pages via %s\n", document.PageCount, document.Backend)

			for _, warning := range document.Warnings {
				fmt.Fprintln(os.Stderr, "warning:", warning)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&backendFlag, "backend", "b", "", "backend name (default auto-select)")
	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "model override for LLM backends")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringSliceVarP(&languagesFlag, "lang", "l", nil, "language hints")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "per-attempt timeout")

	return cmd
}

func backendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List backends and their availability",

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()

			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "NAME\tCATEGORY\tCOST/PAGE\tSTATUS\tDESCRIPTION")

			for _, report := range cfg.Registry.Inspect(cmd.Context()) {
				d := report.Descriptor

				cost := "free"

				if d.CostPerPage > 0 {
					cost = fmt.Sprintf("$%.4f", d.CostPerPage)
				}

				status := "available"

				if !report.Available {
					status = "unavailable: " + report.Reason
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.Name, d.Category, cost, status, d.Description)
			}

			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addressFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()

			if err != nil {
				return err
			}

			if addressFlag != "" {
				cfg.Address = addressFlag
			}

			s, err := server.New(cfg)

			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stderr, "listening on", cfg.Address)

			return s.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&addressFlag, "address", "a", "", "listen address")

	return cmd
}
