package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pprehq/rawdb/pkg/codec"
	"github.com/pprehq/rawdb/pkg/recordio"
)

var packInput string

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <layout> <file>",
	Short: "Pack JSON lines into a binary record file",
	Long: `Pack one JSON object per line into a file of back-to-back
fixed-size records.

Example:
  rawdb -l layouts/item.yaml pack item items.bin < items.jsonl`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := lookupLayout(args[0])
		if err != nil {
			return err
		}

		in := os.Stdin
		if packInput != "" {
			in, err = os.Open(packInput)
			if err != nil {
				return err
			}
			defer in.Close()
		}

		writer, err := recordio.OpenRecordWriter(
			recordio.WriterConfig{FilePath: args[1]},
			codec.NewRecordCodec(layout),
		)
		if err != nil {
			return err
		}

		dec := json.NewDecoder(in)
		dec.UseNumber()
		count := 0
		for {
			var obj map[string]any
			if err := dec.Decode(&obj); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				writer.Close()
				return err
			}
			rec, err := recordio.RecordFromJSON(layout, obj)
			if err != nil {
				writer.Close()
				return err
			}
			if _, err := writer.Write(rec); err != nil {
				writer.Close()
				return err
			}
			count++
		}
		if err := writer.Close(); err != nil {
			return err
		}

		logger.Info().Int("records", count).Str("layout", layout.Name()).Msg("packed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.Flags().StringVarP(&packInput, "input", "i", "", "Input file (default stdin)")
}
