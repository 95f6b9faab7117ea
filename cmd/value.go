package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wellswap/valuation-engine/internal/model"
)

var (
	valueInputFile string
	valueSave      bool

	valuePolicy model.PolicyFacts
)

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Value a single policy",
	Long:  "Runs one valuation from a JSON request file or from policy flags and prints the result as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initApp(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		req, err := loadRequest()
		if err != nil {
			return err
		}

		result, err := env.engine.Valuate(cmd.Context(), req)
		if err != nil {
			return err
		}

		if valueSave {
			if env.store == nil {
				return eris.New("value: --save requires a configured store driver")
			}
			record, err := env.store.SaveValuation(cmd.Context(), req, *result)
			if err != nil {
				return err
			}
			zap.L().Info("valuation saved", zap.String("id", record.ID))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(result), "value: encode result")
	},
}

// loadRequest builds the valuation request from --input when given, otherwise
// from the policy flags.
func loadRequest() (model.ValuationRequest, error) {
	if valueInputFile == "" {
		return model.ValuationRequest{Policy: valuePolicy}, nil
	}

	data, err := os.ReadFile(valueInputFile)
	if err != nil {
		return model.ValuationRequest{}, eris.Wrapf(err, "value: read %s", valueInputFile)
	}
	var req model.ValuationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return model.ValuationRequest{}, eris.Wrapf(err, "value: parse %s", valueInputFile)
	}
	return req, nil
}

func init() {
	valueCmd.Flags().StringVar(&valueInputFile, "input", "", "JSON file with the full valuation request")
	valueCmd.Flags().BoolVar(&valueSave, "save", false, "persist the valuation to the configured store")

	valueCmd.Flags().StringVar(&valuePolicy.Company, "company", "", "issuing company")
	valueCmd.Flags().StringVar(&valuePolicy.ProductType, "product", "", "product type")
	valueCmd.Flags().IntVar(&valuePolicy.ContractPeriodYears, "period", 0, "contract period in years")
	valueCmd.Flags().IntVar(&valuePolicy.PaidYears, "paid", 0, "years already paid")
	valueCmd.Flags().Float64Var(&valuePolicy.AnnualPremium, "annual-premium", 0, "annual premium")
	valueCmd.Flags().Float64Var(&valuePolicy.TotalPremium, "total-premium", 0, "total premium (defaults to annual x period)")
	valueCmd.Flags().Float64Var(&valuePolicy.SurrenderValue, "surrender", 0, "declared surrender value")
	valueCmd.Flags().StringVar(&valuePolicy.Currency, "currency", "", "policy currency (defaults to USD)")
	valueCmd.Flags().StringVar(&valuePolicy.Location, "location", "", "policy location (defaults from config)")

	rootCmd.AddCommand(valueCmd)
}
