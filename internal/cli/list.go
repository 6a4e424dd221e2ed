package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marco-gallegos/careless-whisper-client/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	var dbPath string
	var limit int
	var showSegments bool

	cmd := &cobra.Command{
		Use:   "list-transcriptions",
		Short: "List stored transcriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)

			path := deps.App.StorePath(dbPath)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				f.Info("No database yet. No transcriptions have been stored.")
				return nil
			}

			st, err := deps.App.OpenStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			transcriptions, err := st.List(limit)
			if err != nil {
				return fmt.Errorf("listing transcriptions: %w", err)
			}
			if len(transcriptions) == 0 {
				f.Info("No transcriptions stored.")
				return nil
			}

			f.ListHeader(len(transcriptions))
			for _, t := range transcriptions {
				f.RecordHeader(t.ID, t.CreatedAt)
				f.RecordMeta(t.Language, t.ProcessingTime, t.ModelUsed)
				if t.SourceFile != "" {
					f.RecordSource(t.SourceFile)
				}
				f.RecordPreview(t.Text)

				if showSegments {
					_, segments, err := st.Get(t.ID)
					if err != nil {
						return fmt.Errorf("loading segments for %d: %w", t.ID, err)
					}
					if len(segments) > 0 {
						f.SegmentsHeader()
						for _, seg := range segments {
							f.SegmentLine(seg.StartTime, seg.EndTime, seg.Text)
						}
					}
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to the SQLite database")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of transcriptions to show")
	cmd.Flags().BoolVar(&showSegments, "show-segments", false, "Show segments for each transcription")

	return cmd
}
