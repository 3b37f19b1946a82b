package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ledger configuration and held balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().call(cmd.Context(), "GET", "/v1/faucet/status", nil)
		if err != nil {
			return err
		}
		return printYAML(cmd, resp)
	},
}

var claimCmd = &cobra.Command{
	Use:       "claim {token|currency}",
	Short:     "Claim the configured disbursement for the acting account",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"token", "currency"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if kind != "token" && kind != "currency" {
			return fmt.Errorf("claim kind must be token or currency, got %q", kind)
		}
		resp, err := newClient().call(cmd.Context(), "POST", "/v1/faucet/claims/"+kind, nil)
		if err != nil {
			return err
		}
		return printYAML(cmd, resp)
	},
}

var claimStatusCmd = &cobra.Command{
	Use:   "claim-status <account>",
	Short: "Report whether an account has claimed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().call(cmd.Context(), "GET", "/v1/faucet/claims/"+url.PathEscape(args[0]), nil)
		if err != nil {
			return err
		}
		return printYAML(cmd, resp)
	},
}

var fundCmd = &cobra.Command{
	Use:   "fund <amount>",
	Short: "Deposit native currency into the ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		resp, err := newClient().call(cmd.Context(), "POST", "/v1/faucet/fund", map[string]any{"amount": amount})
		if err != nil {
			return err
		}
		return printYAML(cmd, resp)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <account>",
	Short: "Clear an account's claimed flag (owner only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/v1/faucet/admin/claims/" + url.PathEscape(args[0]) + "/reset"
		resp, err := newClient().call(cmd.Context(), "POST", path, nil)
		if err != nil {
			return err
		}
		return printYAML(cmd, resp)
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause claim operations (owner only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().call(cmd.Context(), "POST", "/v1/faucet/admin/pause", nil)
		if err != nil {
			return err
		}
		return printYAML(cmd, resp)
	},
}

var unpauseCmd = &cobra.Command{
	Use:   "unpause",
	Short: "Resume claim operations (owner only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().call(cmd.Context(), "POST", "/v1/faucet/admin/unpause", nil)
		if err != nil {
			return err
		}
		return printYAML(cmd, resp)
	},
}

var setAssetCmd = &cobra.Command{
	Use:   "set-asset <asset>",
	Short: "Replace the distributed asset (owner only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().call(cmd.Context(), "PUT", "/v1/faucet/admin/asset", map[string]any{"asset": args[0]})
		if err != nil {
			return err
		}
		return printYAML(cmd, resp)
	},
}

var setAmountCmd = &cobra.Command{
	Use:   "set-amount <amount>",
	Short: "Replace the per-claim disbursement amount (owner only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		resp, err := newClient().call(cmd.Context(), "PUT", "/v1/faucet/admin/amount", map[string]any{"amount": amount})
		if err != nil {
			return err
		}
		return printYAML(cmd, resp)
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw {token|currency} <to> <amount>",
	Short: "Withdraw held funds to a recipient (owner only)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, to := args[0], args[1]
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}

		switch kind {
		case "token":
			asset, err := cmd.Flags().GetString("asset")
			if err != nil {
				return err
			}
			if asset == "" {
				return fmt.Errorf("--asset is required for token withdrawals")
			}
			resp, err := newClient().call(cmd.Context(), "POST", "/v1/faucet/admin/withdrawals/asset", map[string]any{
				"asset":  asset,
				"to":     to,
				"amount": amount,
			})
			if err != nil {
				return err
			}
			return printYAML(cmd, resp)
		case "currency":
			resp, err := newClient().call(cmd.Context(), "POST", "/v1/faucet/admin/withdrawals/currency", map[string]any{
				"to":     to,
				"amount": amount,
			})
			if err != nil {
				return err
			}
			return printYAML(cmd, resp)
		default:
			return fmt.Errorf("withdraw kind must be token or currency, got %q", kind)
		}
	},
}

func init() {
	withdrawCmd.Flags().String("asset", "", "asset address for token withdrawals")
}

func parseAmount(raw string) (uint64, error) {
	amount, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount must be a non-negative integer, got %q", raw)
	}
	return amount, nil
}

func printYAML(cmd *cobra.Command, payload map[string]any) error {
	rendered, err := renderYAML(payload)
	if err != nil {
		return err
	}
	cmd.Print(rendered)
	return nil
}
