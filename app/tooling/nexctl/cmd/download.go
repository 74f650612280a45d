package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download [file id]",
	Short: "Pay for a download of a catalogue file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var resp map[string]any
		doRequest(http.MethodPost, "/v1/catalogue/download/"+args[0], nil, &resp)
		printJSON(resp)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the active catalogue.",
	Run: func(cmd *cobra.Command, args []string) {
		path := "/v1/catalogue/search"
		if keyword != "" {
			path += "?keyword=" + keyword
		}

		var resp []map[string]any
		doRequest(http.MethodGet, path, nil, &resp)
		printJSON(resp)
	},
}

var keyword string

func init() {
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&keyword, "keyword", "k", "", "Keyword to match in name or description.")
}
