package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gpd-sourcing/supplier-screen/internal/config"
	"github.com/gpd-sourcing/supplier-screen/internal/domain"
	"github.com/gpd-sourcing/supplier-screen/internal/engine"
	"github.com/gpd-sourcing/supplier-screen/internal/intake"
	"github.com/gpd-sourcing/supplier-screen/internal/logging"
	"github.com/gpd-sourcing/supplier-screen/internal/pipeline"
	"github.com/gpd-sourcing/supplier-screen/internal/store"
	"github.com/gpd-sourcing/supplier-screen/internal/web"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "screener",
		Short: "Supplier screening against the exclusion list",
		Long:  `Screens harvested supplier contacts against the canonical exclusion list: queue intake, fuzzy flagging, and queue-to-exclusion migration.`,
	}

	rootCmd.AddCommand(createInitCmd())
	rootCmd.AddCommand(createIntakeCmd())
	rootCmd.AddCommand(createFlagCmd())
	rootCmd.AddCommand(createMigrateCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, builds the logger and opens the store.
func setup() (*config.Config, zerolog.Logger, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	st, err := store.New(cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, log, st, nil
}

// buildMatcher assembles the matcher from configured thresholds and the
// provider lists (built-in or from the optional YAML override).
func buildMatcher(cfg *config.Config) (*engine.Matcher, error) {
	classifier := domain.DefaultClassifier()
	if cfg.ProviderListPath != "" {
		var err error
		classifier, err = domain.LoadClassifier(cfg.ProviderListPath)
		if err != nil {
			return nil, err
		}
	}
	return engine.NewMatcher(cfg.Thresholds(), classifier), nil
}

func createInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the screening tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.EnsureSchema(); err != nil {
				return err
			}
			log.Info().Msg("schema ready")
			return nil
		},
	}
}

func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := st.LoadStats()
			if err != nil {
				return err
			}
			fmt.Println("Database connection successful!")
			fmt.Printf("Queue entries:     %d (%d flagged)\n", stats.QueueTotal, stats.FlaggedTotal)
			fmt.Printf("Exclusion entries: %d\n", stats.ExclusionTotal)
			return nil
		},
	}
}

func createIntakeCmd() *cobra.Command {
	var (
		input      string
		country    string
		nameCol    int
		websiteCol int
		emailCol   int
		headerRows int
	)

	intakeCmd := &cobra.Command{
		Use:   "intake",
		Short: "Queue supplier rows from a harvested CSV export",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			source, err := readSourceCSV(input, country, nameCol, websiteCol, emailCol, headerRows)
			if err != nil {
				return err
			}

			p := pipeline.New(st, nil, log)
			added, err := p.RunIntake(source)
			if err != nil {
				return err
			}
			fmt.Printf("Added %d new entries to the queue\n", added)
			return nil
		},
	}

	intakeCmd.Flags().StringVar(&input, "input", "", "Path to the source CSV file")
	intakeCmd.Flags().StringVar(&country, "country", "", "Country code for the queued rows (e.g. AR)")
	intakeCmd.Flags().IntVar(&nameCol, "name-col", 7, "0-based column of the supplier name")
	intakeCmd.Flags().IntVar(&websiteCol, "website-col", 8, "0-based column of the website")
	intakeCmd.Flags().IntVar(&emailCol, "email-col", 11, "0-based column of the contact email")
	intakeCmd.Flags().IntVar(&headerRows, "header-rows", 1, "Number of header rows to skip")
	intakeCmd.MarkFlagRequired("input")
	intakeCmd.MarkFlagRequired("country")

	return intakeCmd
}

func createFlagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flag",
		Short: "Flag queue rows that match the exclusion list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			matcher, err := buildMatcher(cfg)
			if err != nil {
				return err
			}

			summary, err := pipeline.New(st, matcher, log).RunFlagPass()
			if err != nil {
				return err
			}
			fmt.Println(summary.Describe())
			return nil
		},
	}
}

func createMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Move unique queue entries to the exclusion list",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			summary, err := pipeline.New(st, nil, log).RunMigratePass()
			if err != nil {
				return err
			}
			fmt.Printf("Migrated %d entries, removed %d queue rows\n", summary.Migrated, summary.Removed)
			return nil
		},
	}
}

func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the review API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, st, err := setup()
			if err != nil {
				return err
			}
			defer st.Close()

			return web.NewServer(st, cfg.HTTPHost, cfg.HTTPPort, log).Start()
		},
	}
}

// readSourceCSV reads a harvested export with fixed column positions, the
// same layout the sourcing sheets use.
func readSourceCSV(path, country string, nameCol, websiteCol, emailCol, headerRows int) ([]intake.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // harvested exports have ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var rows []intake.Row
	for i, record := range records {
		if i < headerRows {
			continue
		}
		if len(record) <= nameCol {
			continue
		}

		row := intake.Row{Country: country}
		row.Record.Name = record[nameCol]
		if websiteCol < len(record) {
			row.Record.Website = record[websiteCol]
		}
		if emailCol < len(record) {
			row.Record.Email = record[emailCol]
		}
		rows = append(rows, row)
	}

	return rows, nil
}
