package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var (
	fileName    string
	fileSizeGB  string
	fileHash    string
	description string
	category    string
)

var declareCmd = &cobra.Command{
	Use:   "declare",
	Short: "Declare a new shared file.",
	Run: func(cmd *cobra.Command, args []string) {
		body := struct {
			Name        string `json:"name"`
			SizeGB      string `json:"size_gb"`
			Description string `json:"description"`
			Category    string `json:"category"`
			FileHash    string `json:"file_hash"`
		}{
			Name:        fileName,
			SizeGB:      fileSizeGB,
			Description: description,
			Category:    category,
			FileHash:    fileHash,
		}

		var resp map[string]any
		doRequest(http.MethodPost, "/v1/catalogue/declare", body, &resp)
		printJSON(resp)
	},
}

func init() {
	rootCmd.AddCommand(declareCmd)
	declareCmd.Flags().StringVarP(&fileName, "name", "n", "", "Name of the file.")
	declareCmd.Flags().StringVarP(&fileSizeGB, "size", "s", "", "Size of the file in GB.")
	declareCmd.Flags().StringVarP(&fileHash, "hash", "x", "", "Content hash of the file.")
	declareCmd.Flags().StringVarP(&description, "description", "d", "", "Description of the file.")
	declareCmd.Flags().StringVarP(&category, "category", "c", "", "Category of the file.")
}
