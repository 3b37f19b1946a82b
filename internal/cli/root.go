package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	apiURL  string
	account string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "faucetctl",
	Short: "Operate a running faucet claim ledger over its HTTP API",
	Long: `faucetctl talks to the faucet API: inspect ledger status and claim flags,
submit claims, and run the owner-gated administrative operations (reset,
pause, asset and amount updates, withdrawals).

The acting account is sent as the X-Account-Address header; owner-gated
commands fail with 403 unless it matches the ledger owner.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "base URL of the faucet API")
	rootCmd.PersistentFlags().StringVar(&account, "account", "", "acting account address (X-Account-Address)")

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("account", rootCmd.PersistentFlags().Lookup("account"))

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(claimStatusCmd)
	rootCmd.AddCommand(fundCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(unpauseCmd)
	rootCmd.AddCommand(setAssetCmd)
	rootCmd.AddCommand(setAmountCmd)
	rootCmd.AddCommand(withdrawCmd)
}

// initConfig reads in environment variables that match FAUCET_*
func initConfig() {
	viper.SetEnvPrefix("FAUCET")
	viper.AutomaticEnv()
}
