package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marco-gallegos/careless-whisper-client/internal/domain/recording/usecases"
	"github.com/marco-gallegos/careless-whisper-client/internal/output"
)

func NewRecordCmd(deps *Dependencies) *cobra.Command {
	var doSend bool
	var timeoutSeconds int
	var apiURL, apiToken string
	var stopFromCLI bool

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Start an OBS recording and wait until it stops",
		Long:  "Start recording in OBS, wait until you stop it from OBS (or press Enter in the CLI), then show the recorded file path.\nUse --send to also POST the file to the configured API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)

			client := deps.App.OBSClient()
			f.Connecting(deps.Config.OBSHost, deps.Config.OBSPort)
			if err := client.Connect(); err != nil {
				return err
			}
			defer client.Disconnect()

			var manualStop chan struct{}
			if stopFromCLI {
				manualStop = make(chan struct{})
				// Abandoned if the wait ends first; the read may block
				// until the process exits.
				go func() {
					reader := bufio.NewReader(os.Stdin)
					_, _ = reader.ReadString('\n')
					close(manualStop)
				}()
			}

			rec := &usecases.Record{
				Client:     client,
				Timeout:    time.Duration(timeoutSeconds) * time.Second,
				ManualStop: manualStop,
				OnStarted:  func() { f.RecordingStarted(stopFromCLI) },
			}

			sess, err := rec.Execute()
			if err != nil {
				if errors.Is(err, usecases.ErrTimedOut) {
					return fmt.Errorf("no recorded file path obtained: %w", err)
				}
				return err
			}
			f.RecordedFile(sess.OutputPath)

			if !doSend {
				return nil
			}

			sender := deps.App.Sender(apiURL, apiToken)
			body, err := sender.Execute(sess.OutputPath)
			if err != nil {
				return fmt.Errorf("sending to API: %w", err)
			}
			f.Success("File sent to the API.")
			if len(body) > 0 {
				preview := string(body)
				if len(preview) > 1000 {
					preview = preview[:1000]
				}
				fmt.Fprintln(cmd.OutOrStdout(), preview)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&doSend, "send", false, "After recording, send the file to the configured API")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", int(usecases.DefaultTimeout.Seconds()), "Max seconds to wait for the recording to stop")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "API URL to POST the file (overrides RECORD_SEND_API_URL)")
	cmd.Flags().StringVar(&apiToken, "api-token", "", "Bearer token for the API (overrides RECORD_SEND_API_TOKEN)")
	cmd.Flags().BoolVar(&stopFromCLI, "stop-from-cli", true, "Allow stopping the recording from the CLI with Enter (--stop-from-cli=false to disable)")

	return cmd
}
