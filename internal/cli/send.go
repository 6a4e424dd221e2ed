package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marco-gallegos/careless-whisper-client/internal/output"
)

func NewSendCmd(deps *Dependencies) *cobra.Command {
	var filePath string
	var apiURL, apiToken string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an existing file to the configured API",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)

			sender := deps.App.Sender(apiURL, apiToken)
			body, err := sender.Execute(filePath)
			if err != nil {
				return fmt.Errorf("sending file: %w", err)
			}
			f.Success("File sent.")
			if len(body) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), string(body))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to the file to send")
	cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "API URL to POST the file (or set RECORD_SEND_API_URL)")
	cmd.Flags().StringVar(&apiToken, "api-token", "", "Bearer token for the API")

	return cmd
}
