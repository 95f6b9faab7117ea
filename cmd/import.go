package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wellswap/valuation-engine/internal/model"
)

var importFilePath string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import valuation records from a JSON file into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.store == nil {
			return eris.New("import: no store driver configured")
		}

		records, err := loadRecords(importFilePath)
		if err != nil {
			return err
		}

		imported, err := env.store.ImportValuations(ctx, records)
		if err != nil {
			return eris.Wrap(err, "import valuations")
		}

		zap.L().Info("import complete",
			zap.Int64("imported", imported),
			zap.String("file", importFilePath),
		)
		return nil
	},
}

// loadRecords reads a JSON array of valuation records from disk.
func loadRecords(path string) ([]model.ValuationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read records file %s", path)
	}
	var records []model.ValuationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrapf(err, "parse records file %s", path)
	}
	return records, nil
}

func init() {
	importCmd.Flags().StringVar(&importFilePath, "file", "", "path to JSON records file (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
