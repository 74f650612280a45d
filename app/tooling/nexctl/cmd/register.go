package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register [username]",
	Short: "Register a new account.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body := struct {
			Username string `json:"username"`
		}{
			Username: args[0],
		}

		var resp map[string]any
		doRequest(http.MethodPost, "/v1/accounts", body, &resp)
		printJSON(resp)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
