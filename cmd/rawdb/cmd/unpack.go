package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pprehq/rawdb/pkg/codec"
	"github.com/pprehq/rawdb/pkg/recordio"
)

var unpackOutput string

// unpackCmd represents the unpack command
var unpackCmd = &cobra.Command{
	Use:   "unpack <layout> <file>",
	Short: "Unpack a binary record file into JSON lines",
	Long: `Unpack a file of back-to-back fixed-size records into one JSON
object per line.

Example:
  rawdb -l layouts/item.yaml unpack item items.bin > items.jsonl`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := lookupLayout(args[0])
		if err != nil {
			return err
		}

		reader, err := recordio.OpenRecordReader(
			recordio.ReaderConfig{FilePath: args[1]},
			codec.NewRecordCodec(layout),
		)
		if err != nil {
			return err
		}
		defer reader.Close()

		out := os.Stdout
		if unpackOutput != "" {
			out, err = os.Create(unpackOutput)
			if err != nil {
				return err
			}
			defer out.Close()
		}

		enc := json.NewEncoder(out)
		count := 0
		it := reader.Iterate()
		for it.Next() {
			obj, err := recordio.RecordToJSON(layout, it.Record())
			if err != nil {
				return err
			}
			if err := enc.Encode(obj); err != nil {
				return err
			}
			count++
		}
		if err := it.Err(); err != nil {
			return err
		}

		logger.Info().Int("records", count).Str("layout", layout.Name()).Msg("unpacked")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unpackCmd)
	unpackCmd.Flags().StringVarP(&unpackOutput, "output", "o", "", "Output file (default stdout)")
}
