package cli

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/marco-gallegos/careless-whisper-client/internal/output"
)

func NewGetCmd(deps *Dependencies) *cobra.Command {
	var transcriptionID int64
	var dbPath string
	var copyText bool

	cmd := &cobra.Command{
		Use:   "get-transcription",
		Short: "Show one stored transcription by ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			errf := output.NewFormatter(os.Stderr)

			path := deps.App.StorePath(dbPath)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return fmt.Errorf("no database at %s", path)
			}

			st, err := deps.App.OpenStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			t, segments, err := st.Get(transcriptionID)
			if err != nil {
				return err
			}
			if t == nil {
				return fmt.Errorf("no transcription with ID %d", transcriptionID)
			}

			f.RecordHeader(t.ID, t.CreatedAt)
			f.RecordMeta(t.Language, t.ProcessingTime, t.ModelUsed)
			if t.SourceFile != "" {
				f.RecordSource(t.SourceFile)
			}
			f.RecordText(t.Text)

			if len(segments) > 0 {
				f.SegmentsHeader()
				for _, seg := range segments {
					f.SegmentLine(seg.StartTime, seg.EndTime, seg.Text)
				}
			}

			if copyText {
				if err := clipboard.WriteAll(t.Text); err != nil {
					errf.Warning(fmt.Sprintf("Could not copy to clipboard: %v", err))
				} else {
					f.Copied()
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&transcriptionID, "id", 0, "Transcription ID to retrieve")
	cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to the SQLite database")
	cmd.Flags().BoolVar(&copyText, "copy", false, "Copy the transcription to the clipboard")

	return cmd
}
