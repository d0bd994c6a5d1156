package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Sample events from the scenario's model",
	Long:  `Draws events from the configured density and writes them as CSV, one observable value per line.`,
	Run: func(cmd *cobra.Command, args []string) {
		scn, err := loadScenario(cmd)
		if err != nil {
			fmt.Printf("Error loading scenario: %v\n", err)
			os.Exit(1)
		}
		events, _ := cmd.Flags().GetInt("events")
		if events <= 0 {
			events = scn.Events
		}
		out, _ := cmd.Flags().GetString("output")

		model, err := scn.Model()
		if err != nil {
			fmt.Printf("Error building model: %v\n", err)
			os.Exit(1)
		}
		data, err := model.Generate(events)
		if err != nil {
			fmt.Printf("Error generating events: %v\n", err)
			os.Exit(1)
		}

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
		fmt.Fprintf(w, "%s\n", model.Observable().Name)
		for i := 0; i < data.Len(); i++ {
			fmt.Fprintf(w, "%.9g\n", data.Value(i))
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("events", "n", 0, "Number of events (default: scenario setting)")
	generateCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}
