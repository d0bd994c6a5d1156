package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hepworks/nllfit"
	"github.com/hepworks/nllfit/internal/config"
	"github.com/hepworks/nllfit/internal/presentation/tui"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Run the scenario's fits",
	Long: `Generates the scenario dataset once and runs every configured fit pass
against it. Each pass starts from the scenario's initial parameter values, so
the passes differ only in how evaluation errors are handled.`,
	Run: func(cmd *cobra.Command, args []string) {
		scn, err := loadScenario(cmd)
		if err != nil {
			fmt.Printf("Error loading scenario: %v\n", err)
			os.Exit(1)
		}
		logger := newLogger(cmd)

		model, err := scn.Model()
		if err != nil {
			fmt.Printf("Error building model: %v\n", err)
			os.Exit(1)
		}
		data, err := model.Generate(scn.Events)
		if err != nil {
			fmt.Printf("Error generating events: %v\n", err)
			os.Exit(1)
		}
		baseline := model.Snapshot()

		for _, fc := range scn.Fits {
			for _, p := range model.Parameters() {
				p.SetValue(baseline[p.Name()])
			}
			pol, err := config.BuildPolicy(fc.Policy, fc.Options)
			if err != nil {
				fmt.Printf("Error in fit %q: %v\n", fc.Name, err)
				os.Exit(1)
			}
			fitter, err := nllfit.New(model, data,
				nllfit.WithPolicy(pol),
				nllfit.WithLogger(logger),
			)
			if err != nil {
				fmt.Printf("Error in fit %q: %v\n", fc.Name, err)
				os.Exit(1)
			}
			res, err := fitter.Fit(cmd.Context())
			if err != nil {
				fmt.Printf("Fit %q failed: %v\n", fc.Name, err)
				os.Exit(1)
			}
			title := fc.Name
			if title == "" {
				title = fc.Policy
			}
			fmt.Print(tui.Render(tui.FitReport(title, res)))
		}
	},
}

func init() {
	rootCmd.AddCommand(fitCmd)
}
