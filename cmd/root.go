package cmd

import (
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/retailops/backoffice/internal/config"
)

// envPrefix namespaces the environment variables the commands read, e.g.
// BACKOFFICE_SERVER_HTTP_PORT.
const envPrefix = "BACKOFFICE"

func NewRootCommand(cfg *config.Configuration) *cobra.Command {
	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Retail back-office server and tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := NewRunCommand(cfg)
	createUserCmd := NewCreateUserCommand(cfg)
	root.AddCommand(runCmd, createUserCmd)

	cobra.OnInitialize(func() {
		viper.AutomaticEnv()
		viper.SetEnvPrefix(envPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		seen := make(map[*pflag.Flag]bool)
		cobraflags.PresetRequiredFlags(envPrefix, seen, runCmd)
		cobraflags.PresetRequiredFlags(envPrefix, seen, createUserCmd)
	})

	return root
}
