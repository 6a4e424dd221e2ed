package cli

import (
	"github.com/spf13/cobra"

	"github.com/marco-gallegos/careless-whisper-client/config"
	"github.com/marco-gallegos/careless-whisper-client/internal/app"
	"github.com/marco-gallegos/careless-whisper-client/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cwhisper",
		Short: "Record with OBS and send the file to a transcription API",
		Long:  "A CLI tool that starts and stops OBS recordings over its websocket, sends the recorded file to a Whisper transcription API, and keeps the transcriptions in a local database.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	// Flag defaults come from the loaded config, so a set flag overrides
	// env and file values and an unset flag keeps them.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&deps.Config.OBSHost, "host", deps.Config.OBSHost, "OBS websocket host")
	pf.IntVar(&deps.Config.OBSPort, "port", deps.Config.OBSPort, "OBS websocket port")
	pf.StringVar(&deps.Config.OBSPassword, "password", deps.Config.OBSPassword, "OBS websocket password")

	rootCmd.AddCommand(NewRecordCmd(deps))
	rootCmd.AddCommand(NewSendCmd(deps))
	rootCmd.AddCommand(NewTranslateCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewGetCmd(deps))
	rootCmd.AddCommand(NewStatusCmd(deps))
	rootCmd.AddCommand(NewEventsCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
