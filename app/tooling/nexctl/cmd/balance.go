package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var accounts string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print account balances.",
	Run: func(cmd *cobra.Command, args []string) {
		path := "/v1/accounts/balance"
		if accounts != "" {
			path += "?accounts=" + accounts
		}

		var resp []map[string]any
		doRequest(http.MethodGet, path, nil, &resp)
		printJSON(resp)
	},
}

var wealthCmd = &cobra.Command{
	Use:   "wealth",
	Short: "Print every account ordered by balance. Admin only.",
	Run: func(cmd *cobra.Command, args []string) {
		var resp []map[string]any
		doRequest(http.MethodGet, "/v1/accounts/wealth", nil, &resp)
		printJSON(resp)
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(wealthCmd)
	balanceCmd.Flags().StringVarP(&accounts, "accounts", "b", "", "Comma separated accounts to inspect. Admin only.")
}
