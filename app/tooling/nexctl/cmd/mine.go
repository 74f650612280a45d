package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Settle the pending transaction pool into a new block.",
	Run: func(cmd *cobra.Command, args []string) {
		var resp map[string]any
		doRequest(http.MethodPost, "/v1/mine", nil, &resp)
		printJSON(resp)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a summary of the running system.",
	Run: func(cmd *cobra.Command, args []string) {
		var resp map[string]any
		doRequest(http.MethodGet, "/v1/stats", nil, &resp)
		printJSON(resp)
	},
}

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the blocks visible to the caller.",
	Run: func(cmd *cobra.Command, args []string) {
		var resp []map[string]any
		doRequest(http.MethodGet, "/v1/blocks", nil, &resp)
		printJSON(resp)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(blocksCmd)
}
