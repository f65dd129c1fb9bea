package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arjunks/enercast/internal/billing"
	"github.com/arjunks/enercast/internal/inference"
	"github.com/arjunks/enercast/internal/pipeline"
	"github.com/arjunks/enercast/internal/recommend"
	"github.com/arjunks/enercast/internal/simulate"
	"github.com/arjunks/enercast/internal/weather"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "enercast",
		Short: "Enercast - Predict household energy consumption and bills",
		Long: `Enercast predicts household energy consumption from your appliance
inventory and historical weather, then estimates the resulting utility bill.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enercast/config.yaml)")

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(predictCmd())
	rootCmd.AddCommand(weatherCmd())
	rootCmd.AddCommand(billCmd())
	rootCmd.AddCommand(initCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".enercast")
		os.MkdirAll(configDir, 0755)

		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("enercast")
	viper.AutomaticEnv()
	viper.SetDefault("model_url", "http://localhost:8501")
	viper.ReadInConfig()
}

func loadSchedule() (*billing.Schedule, error) {
	if path := viper.GetString("tariff_file"); path != "" {
		return billing.LoadSchedule(path)
	}
	return billing.DefaultSchedule(), nil
}

// requestFile is the on-disk shape of a prediction request.
type requestFile struct {
	Location   string `json:"location"`
	Appliances map[string]struct {
		Power     float64  `json:"power"`
		Count     int      `json:"count"`
		UsageTime string   `json:"usageTime"`
		Days      []string `json:"days"`
		Times     []string `json:"times"`
	} `json:"appliances"`
	Dates []string `json:"dates"`
	Phase string   `json:"phase"`
}

func predictCmd() *cobra.Command {
	var requestPath string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run the prediction pipeline for a request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			raw, err := os.ReadFile(requestPath)
			if err != nil {
				return err
			}
			var rf requestFile
			if err := json.Unmarshal(raw, &rf); err != nil {
				return fmt.Errorf("parsing request file: %w", err)
			}

			appliances := make(map[string]simulate.Config, len(rf.Appliances))
			for name, a := range rf.Appliances {
				count := a.Count
				if count < 1 {
					count = 1
				}
				appliances[name] = simulate.Config{
					PowerKW:   a.Power,
					Count:     count,
					UsageTime: a.UsageTime,
					Days:      a.Days,
					Times:     a.Times,
				}
			}

			schedule, err := loadSchedule()
			if err != nil {
				return err
			}

			runner := &pipeline.Runner{
				Weather:  weather.NewAggregator(weather.NewHistoryClient()),
				Model:    inference.NewClient(viper.GetString("model_url")),
				Schedule: schedule,
			}
			if url := viper.GetString("genai_url"); url != "" {
				runner.Recommender = recommend.NewTextClient(url, viper.GetString("genai_key"))
			}

			result, err := runner.Run(ctx, pipeline.Request{
				Location:   rf.Location,
				Appliances: appliances,
				Dates:      rf.Dates,
				Phase:      billing.Phase(rf.Phase),
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "Path to a JSON request file (required)")
	cmd.MarkFlagRequired("request")

	return cmd
}

func weatherCmd() *cobra.Command {
	var location string
	var start, end string

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Fetch averaged daily weather for a location and window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid start date (use YYYY-MM-DD): %w", err)
			}
			endDate, err := time.Parse("2006-01-02", end)
			if err != nil {
				return fmt.Errorf("invalid end date (use YYYY-MM-DD): %w", err)
			}

			agg := weather.NewAggregator(weather.NewHistoryClient())
			table, err := agg.DailyAverages(ctx, location, startDate, endDate)
			if err != nil {
				return err
			}

			type dayOut struct {
				Month int `json:"month"`
				Day   int `json:"day"`
				weather.Daily
			}
			out := make([]dayOut, 0, len(table))
			for key, day := range table {
				out = append(out, dayOut{Month: int(key.Month), Day: key.Day, Daily: day})
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", `Location as "lat:<float>, lon:<float>" (required)`)
	cmd.Flags().StringVar(&start, "start", "", "Window start date (required)")
	cmd.Flags().StringVar(&end, "end", "", "Window end date (required)")
	cmd.MarkFlagRequired("location")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

func billCmd() *cobra.Command {
	var units float64
	var phase string

	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Compute the bill for a consumption figure",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := loadSchedule()
			if err != nil {
				return err
			}

			amount := schedule.Amount(units, billing.Phase(phase)).Round(2)
			fmt.Printf("%.2f kWh (%s phase): %s\n", units, phase, amount.String())
			return nil
		},
	}

	cmd.Flags().Float64VarP(&units, "units", "u", 0, "Consumption in kWh (required)")
	cmd.Flags().StringVarP(&phase, "phase", "p", "single", "Supply phase: single or three")
	cmd.MarkFlagRequired("units")

	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config and tariff schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			configDir := filepath.Join(home, ".enercast")
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return err
			}

			configPath := filepath.Join(configDir, "config.yaml")
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				defaults := "model_url: http://localhost:8501\ntariff_file: " +
					filepath.Join(configDir, "tariff.yaml") + "\n"
				if err := os.WriteFile(configPath, []byte(defaults), 0644); err != nil {
					return err
				}
			}

			tariffPath := filepath.Join(configDir, "tariff.yaml")
			if _, err := os.Stat(tariffPath); os.IsNotExist(err) {
				if err := writeDefaultTariff(tariffPath); err != nil {
					return err
				}
			}

			fmt.Println("Initialized config in", configDir)
			fmt.Println("\nNext steps:")
			fmt.Println("  1. Point model_url at your model server")
			fmt.Println("  2. Run a prediction: enercast predict -r request.json")

			return nil
		},
	}
}

func writeDefaultTariff(path string) error {
	tariff := `slabs:
  - { limit: 50, rate: 3.25 }
  - { limit: 50, rate: 4.05 }
  - { limit: 50, rate: 5.10 }
  - { limit: 50, rate: 6.95 }
  - { limit: 50, rate: 8.20 }
  - { limit: 50, rate: 9.60 }
  - { limit: 0, rate: 11.40 }
fixed_charge: 45
duty_percent: 10
surcharge: 10
subsidy_single_phase: 40
subsidy_three_phase: 20
`
	return os.WriteFile(path, []byte(tariff), 0644)
}
