package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/marco-gallegos/careless-whisper-client/internal/obs"
	"github.com/marco-gallegos/careless-whisper-client/internal/output"
)

func NewEventsCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print OBS record-state events until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)

			client := deps.App.OBSClient()
			f.Connecting(deps.Config.OBSHost, deps.Config.OBSPort)
			if err := client.Connect(); err != nil {
				return err
			}
			defer client.Disconnect()

			sub := client.OnRecordStateChanged(func(ev obs.RecordStateChanged) {
				detail := fmt.Sprintf("state=%s", ev.OutputState)
				if ev.OutputPath != "" {
					detail += fmt.Sprintf(" path=%s", ev.OutputPath)
				}
				f.Event(time.Now(), obs.EventRecordStateChanged, detail)
			})
			defer sub.Cancel()

			f.Info("Listening for OBS events. Press Ctrl+C to stop.")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			<-ctx.Done()

			f.Info("Stopped listening.")
			return nil
		},
	}
}
