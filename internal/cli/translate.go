package cli

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/marco-gallegos/careless-whisper-client/internal/domain/recording"
	"github.com/marco-gallegos/careless-whisper-client/internal/output"
)

func NewTranslateCmd(deps *Dependencies) *cobra.Command {
	var filePath string
	var apiURL, apiToken string
	var copyText, storeResult bool
	var dbPath string

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Transcribe an audio file via the API",
		Long:  "Send an audio file to the transcription API, show the result, copy it to the clipboard, and store it in the local database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			errf := output.NewFormatter(os.Stderr)

			sender := deps.App.Sender(apiURL, apiToken)
			f.Sending(filePath)
			body, err := sender.Execute(filePath)
			if err != nil {
				return fmt.Errorf("sending to API: %w", err)
			}

			result, err := recording.ParseTranscription(body)
			if err != nil {
				return err
			}

			f.Transcription(result.Language, result.Text)
			f.TranscriptionStats(result.ProcessingTime, result.ModelUsed, len(result.Segments))

			if copyText {
				if err := clipboard.WriteAll(result.Text); err != nil {
					errf.Warning(fmt.Sprintf("Could not copy to clipboard: %v", err))
				} else {
					f.Copied()
				}
			}

			if storeResult {
				// A storage failure is reported but does not fail the
				// command; the transcription itself is already shown.
				st, err := deps.App.OpenStore(dbPath)
				if err != nil {
					errf.Warning(fmt.Sprintf("Could not save to database: %v", err))
					return nil
				}
				defer st.Close()
				id, err := st.Save(result, filePath)
				if err != nil {
					errf.Warning(fmt.Sprintf("Could not save to database: %v", err))
					return nil
				}
				f.Stored(id, deps.App.StorePath(dbPath))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to the audio file to transcribe")
	cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "API URL for transcription (or set RECORD_SEND_API_URL)")
	cmd.Flags().StringVar(&apiToken, "api-token", "", "Bearer token for the API")
	cmd.Flags().BoolVar(&copyText, "copy", true, "Copy the transcription to the clipboard (--copy=false to disable)")
	cmd.Flags().BoolVar(&storeResult, "store", true, "Store the transcription in the local database (--store=false to disable)")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to the SQLite database")

	return cmd
}
