package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marco-gallegos/careless-whisper-client/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			addr := fmt.Sprintf("%s:%d", deps.Config.OBSHost, deps.Config.OBSPort)
			client := deps.App.OBSClient()
			if err := client.Connect(); err != nil {
				f.SetupCheck("OBS websocket", false, fmt.Sprintf("cannot connect to %s: %v", addr, err))
				ok = false
			} else {
				client.Disconnect()
				f.SetupCheck("OBS websocket", true, "reachable at "+addr)
			}

			if deps.Config.APIURL != "" {
				f.SetupCheck("API URL", true, deps.Config.APIURL)
			} else {
				f.SetupCheck("API URL", false, "not set. Set RECORD_SEND_API_URL or add api_url to config")
				ok = false
			}

			if deps.Config.APIToken != "" {
				f.SetupCheck("API token", true, "configured")
			} else {
				f.SetupCheck("API token", true, "not set (fine if the API is open)")
			}

			dbPath := deps.App.StorePath("")
			if st, err := deps.App.OpenStore(""); err != nil {
				f.SetupCheck("Database", false, fmt.Sprintf("cannot open %s: %v", dbPath, err))
				ok = false
			} else {
				st.Close()
				f.SetupCheck("Database", true, dbPath)
			}

			if ok {
				f.Success("\nAll prerequisites met. Ready to record!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
