// Package main provides the CLI entry point for dtcbrief.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/ukaji3/dtcbrief-go/internal/config"
	"github.com/ukaji3/dtcbrief-go/internal/logging"
)

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dtcbrief",
		Short: "Convert DTC calendar workbooks into ClickUp tasks",
		Long: `dtcbrief reads the weekly email brief sheets (Wk6, Wk7, ...) of a DTC
calendar workbook and turns every brief into a ClickUp task, written as a
ClickUp import CSV or pushed straight to a ClickUp list.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ./dtcbrief.yaml)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("brand", "PB", "Brand code: PB or TGW")
	flags.StringSlice("weeks", nil, "Only convert these weekly sheets (e.g. Wk6,Wk7)")
	flags.Bool("launches", false, "Also convert the Product Launch Calendar sheet")
	flags.Bool("links", true, "Use hyperlink targets for URL cells")
	flags.String("assignee", "", "Assignee copied onto every task")
	flags.Int("reference-year", 0, "Year for header due dates without a year (default: current year)")
	bindFlags(v, flags, map[string]string{
		"log.level":      "log-level",
		"brand":          "brand",
		"weeks":          "weeks",
		"launches":       "launches",
		"links":          "links",
		"assignee":       "assignee",
		"reference_year": "reference-year",
	})

	rootCmd.AddCommand(newConvertCmd(), newWeeksCmd(), newPushCmd(), newServeCmd())
	return rootCmd
}

// setup loads .env and config, then configures logging.
func setup(cmd *cobra.Command, args []string) error {
	dotenv := config.LoadDotEnv()

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	logging.Setup(os.Stderr, cfg.Env, cfg.Log.Level)
	// Reported only now so the message goes through the configured logger.
	if dotenv {
		log.Debug().Msg("Loaded environment variables from .env file.")
	}
	return nil
}

// bindFlags binds viper keys to flag names.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := flags.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}
