package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arjunks/enercast/internal/api"
	"github.com/arjunks/enercast/internal/billing"
	"github.com/arjunks/enercast/internal/inference"
	"github.com/arjunks/enercast/internal/pipeline"
	"github.com/arjunks/enercast/internal/recommend"
	"github.com/arjunks/enercast/internal/store"
	"github.com/arjunks/enercast/internal/weather"
)

func main() {
	var port int
	var dbPath string
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "enercastd",
		Short: "Enercast HTTP prediction server",
		RunE: func(cmd *cobra.Command, args []string) error {
			initConfig(cfgFile)

			if dbPath == "" {
				dbPath = viper.GetString("db")
			}
			if dbPath == "" {
				home, _ := os.UserHomeDir()
				dbPath = filepath.Join(home, ".enercast", "enercast.db")
				os.MkdirAll(filepath.Dir(dbPath), 0755)
			}

			st, err := store.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			runner, err := buildRunner(st)
			if err != nil {
				return err
			}

			srv := api.NewServer(runner)

			addr := fmt.Sprintf(":%d", port)
			log.Printf("Enercast server starting on port %d", port)
			log.Printf("Database: %s", dbPath)
			log.Printf("Model endpoint: %s", viper.GetString("model_url"))

			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	rootCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP port")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Database path")
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enercast/config.yaml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			configDir := filepath.Join(home, ".enercast")
			os.MkdirAll(configDir, 0755)
			viper.AddConfigPath(configDir)
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("enercast")
	viper.AutomaticEnv()
	viper.SetDefault("model_url", "http://localhost:8501")
	viper.ReadInConfig()
}

// buildRunner assembles the pipeline from configuration. The model client
// is constructed once here and shared read-only by every request.
func buildRunner(st *store.Store) (*pipeline.Runner, error) {
	schedule := billing.DefaultSchedule()
	if path := viper.GetString("tariff_file"); path != "" {
		loaded, err := billing.LoadSchedule(path)
		if err != nil {
			return nil, fmt.Errorf("loading tariff schedule: %w", err)
		}
		schedule = loaded
	}

	runner := &pipeline.Runner{
		Weather:  weather.NewAggregator(weather.NewHistoryClient()),
		Model:    inference.NewClient(viper.GetString("model_url")),
		Schedule: schedule,
		Audit:    st,
	}

	if url := viper.GetString("tariff_url"); url != "" {
		runner.Tariff = billing.NewTariffClient(url,
			viper.GetString("tariff_purpose"), viper.GetString("tariff_frequency"))
	}
	if url := viper.GetString("genai_url"); url != "" {
		runner.Recommender = recommend.NewTextClient(url, viper.GetString("genai_key"))
	}

	return runner, nil
}
