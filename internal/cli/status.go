package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marco-gallegos/careless-whisper-client/internal/output"
)

func NewStatusCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show OBS version and recording state",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)

			client := deps.App.OBSClient()
			f.Connecting(deps.Config.OBSHost, deps.Config.OBSPort)
			if err := client.Connect(); err != nil {
				return err
			}
			defer client.Disconnect()

			version, err := client.GetVersion()
			if err != nil {
				return err
			}
			status, err := client.GetRecordStatus()
			if err != nil {
				return err
			}

			f.OBSVersion(version.OBSVersion, version.OBSWebSocketVersion)
			f.RecordStatus(status.OutputActive, status.OutputTimecode)
			return nil
		},
	}
}
