package cli

import (
	"fmt"
	"os"

	"github.com/babylonlabs-io/staking-reward-ledger/pkg"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:          "staking-reward-ledger",
		SilenceUsage: true,
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := pkg.ConfigPath(homePath)

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(InitContractCmd())
	rootCmd.AddCommand(MigrateContractCmd())
	rootCmd.AddCommand(QueryStakerCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func GetConfigPath() string {
	return cfgPath
}
