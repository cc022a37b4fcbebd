package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mouse-blink/spore/internal/domain"
	m "github.com/mouse-blink/spore/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [source-root]",
		Short: "List seed files and projected corpus entries",
		Long: `List every *.json seed file under the source root (default: current
directory) together with the number of corpus entries a seeding run
would project for it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceRoot := m.Path(".")
			if len(args) == 1 {
				sourceRoot = m.Path(args[0])
			}

			return activeSeeder(cmd).List(context.Background(), domain.ListArgs{
				SourceRoot: sourceRoot,
				Exclude:    viper.GetStringSlice(excludeConfigKey),
				Trials:     viper.GetInt(trialsConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
