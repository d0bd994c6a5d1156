package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hepworks/nllfit"
	"github.com/hepworks/nllfit/internal/config"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the likelihood across one parameter",
	Long: `Generates the scenario dataset, then evaluates the likelihood on a uniform
grid over the configured parameter and writes the curve as CSV.`,
	Run: func(cmd *cobra.Command, args []string) {
		scn, err := loadScenario(cmd)
		if err != nil {
			fmt.Printf("Error loading scenario: %v\n", err)
			os.Exit(1)
		}
		if scn.Scan == nil {
			fmt.Println("Error: the scenario has no scan section")
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

		sc := scn.Scan
		pol, err := config.BuildPolicy(sc.Policy, sc.Options)
		if err != nil {
			fmt.Printf("Error building scan policy: %v\n", err)
			os.Exit(1)
		}
		fitter, err := nllfit.New(model, data,
			nllfit.WithPolicy(pol),
			nllfit.WithLogger(logger),
		)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		var opts []nllfit.ScanOption
		if sc.Shift {
			opts = append(opts, nllfit.ShiftToZero())
		}
		if sc.ErrorValue != nil {
			opts = append(opts, nllfit.EvalErrorValue(*sc.ErrorValue))
		}
		curve, err := fitter.Scan(sc.Parameter, sc.Lo, sc.Hi, sc.Points, opts...)
		if err != nil {
			fmt.Printf("Scan failed: %v\n", err)
			os.Exit(1)
		}

		out, _ := cmd.Flags().GetString("output")
		w := os.Stdout
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				fmt.Printf("Error creating %s: %v\n", out, err)
				os.Exit(1)
			}
			defer f.Close()
			w = f
		}
		fmt.Fprintf(w, "%s,nll\n", sc.Parameter)
		for _, p := range curve {
			fmt.Fprintf(w, "%.9g,%.9g\n", p.X, p.Y)
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}
