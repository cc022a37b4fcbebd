package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mouse-blink/spore/internal/domain"
	m "github.com/mouse-blink/spore/internal/model"
)

var targetDirFlag string
var trialsFlag int
var insertByteFlag uint8
var seedParallelFlag int
var randSeedFlag int64
var manifestFlag bool

const seedLongDescription = `Seed the fuzzing corpus from every *.json file found recursively under
the source root (default: current directory).

Each seed file produces a fixed number of mutation trials. A trial
inserts one byte at a random offset, addresses the result by its SHA-256
digest and writes it into the corpus directory. Byte-identical samples
deduplicate naturally through their content address.`

// seedCmd represents the seed command.
var seedCmd = newSeedCmd()

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [source-root]",
		Short: "Generate corpus entries from JSON seed files",
		Long:  seedLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceRoot := m.Path(".")
			if len(args) == 1 {
				sourceRoot = m.Path(args[0])
			}

			insertByte := viper.GetUint(insertByteConfigKey)
			if insertByte > 0xFF {
				return fmt.Errorf("%s must be in range 0-255, got %d", insertByteFlagName, insertByte)
			}

			runArgs := domain.RunArgs{
				SourceRoot:    sourceRoot,
				TargetDir:     m.Path(viper.GetString(targetConfigKey)),
				Trials:        viper.GetInt(trialsConfigKey),
				InsertByte:    byte(insertByte),
				Exclude:       viper.GetStringSlice(excludeConfigKey),
				Parallel:      viper.GetInt(parallelConfigKey),
				RandSeed:      viper.GetInt64(randSeedConfigKey),
				WriteManifest: viper.GetBool(manifestConfigKey),
			}

			_, err := activeSeeder(cmd).Run(context.Background(), runArgs)

			return err
		},
	}

	configureSeedFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func configureSeedFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&targetDirFlag, targetFlagName, "t", viper.GetString(targetConfigKey), "corpus output directory")
	bindFlagToConfig(cmd.Flags().Lookup(targetFlagName), targetConfigKey)

	cmd.Flags().IntVarP(&trialsFlag, trialsFlagName, "n", viper.GetInt(trialsConfigKey), "mutation trials per seed file")
	bindFlagToConfig(cmd.Flags().Lookup(trialsFlagName), trialsConfigKey)

	cmd.Flags().Uint8Var(&insertByteFlag, insertByteFlagName, uint8(viper.GetUint(insertByteConfigKey)), "byte value inserted by each mutation")
	bindFlagToConfig(cmd.Flags().Lookup(insertByteFlagName), insertByteConfigKey)

	cmd.Flags().IntVarP(&seedParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel workers over seed files")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().Int64Var(&randSeedFlag, randSeedFlagName, viper.GetInt64(randSeedConfigKey), "base random seed for reproducible runs (0 = time-based)")
	bindFlagToConfig(cmd.Flags().Lookup(randSeedFlagName), randSeedConfigKey)

	cmd.Flags().BoolVar(&manifestFlag, manifestFlagName, viper.GetBool(manifestConfigKey), "write a manifest.yaml next to the corpus directory")
	bindFlagToConfig(cmd.Flags().Lookup(manifestFlagName), manifestConfigKey)
}
