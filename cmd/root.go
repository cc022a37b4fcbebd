// Package cmd provides the root command and CLI setup for spore.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mouse-blink/spore/internal/adapter"
	"github.com/mouse-blink/spore/internal/controller"
	"github.com/mouse-blink/spore/internal/domain"
)

var fsAdapter adapter.CorpusFS
var manifestStore adapter.ManifestStore
var streamer domain.SeedStreamer

// seeder can be swapped in tests; when nil, commands construct the real
// seeder with a UI matched to the terminal.
var seeder domain.Seeder

// excludePatterns is a root-level flag that filters seed files for
// applicable commands.
var excludePatterns []string

// plainFlag forces non-interactive output even on a terminal.
var plainFlag bool

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalCorpusFS()
	manifestStore = adapter.NewManifestStore()
	streamer = domain.NewSeedStreamer(fsAdapter)
}

const rootLongDescription = `Spore prepares seed inputs for a fuzzing corpus. It scans a directory
tree for JSON files, derives samples from each one by inserting a single
byte at a random offset, and stores every unique sample in the corpus
directory under the SHA-256 address of its content.

Re-running is always safe: identical samples collapse to the same
content-addressed entry.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spore",
		Short: "Fuzz corpus seeding tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude seed files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVar(&plainFlag, plainFlagName, false, "plain text output (no interactive progress view)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// activeSeeder returns the injected seeder when tests have set one, or a
// real seeder wired to the appropriate UI.
func activeSeeder(cmd *cobra.Command) domain.Seeder {
	if seeder != nil {
		return seeder
	}

	interactive := !plainFlag && controller.IsTTY(os.Stdout)
	ui := controller.NewUI(cmd, interactive)

	return domain.NewSeeder(fsAdapter, manifestStore, ui, streamer)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
