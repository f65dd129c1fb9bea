package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/arjunks/enercast/internal/simulate"
	"github.com/arjunks/enercast/internal/weather"
)

// Store persists request audit records using SQLite. Every table here is a
// write-mostly log; the prediction pipeline never reads them back.
type Store struct {
	db *sql.DB
}

// NewStore creates a store and initializes the database schema.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		location_name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS appliances (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL,
		name TEXT NOT NULL,
		power_rating REAL NOT NULL,
		count INTEGER NOT NULL,
		usage_hours REAL NOT NULL,
		usage_days TEXT,
		time_of_usage TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (location_id) REFERENCES locations(id)
	);

	CREATE TABLE IF NOT EXISTS weather_data (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL,
		month INTEGER NOT NULL,
		day INTEGER NOT NULL,
		temperature REAL,
		humidity REAL,
		wind_speed REAL,
		visibility REAL,
		pressure REAL,
		cloud_cover REAL,
		wind_bearing REAL,
		precip_intensity REAL,
		precip_probability REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (location_id) REFERENCES locations(id)
	);

	CREATE TABLE IF NOT EXISTS predictions (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL,
		total_use REAL NOT NULL,
		daily_series TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (location_id) REFERENCES locations(id)
	);

	CREATE TABLE IF NOT EXISTS bills (
		id TEXT PRIMARY KEY,
		prediction_id TEXT NOT NULL,
		bill_amount REAL NOT NULL,
		tariff_source TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (prediction_id) REFERENCES predictions(id)
	);

	CREATE TABLE IF NOT EXISTS recommendations (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL,
		recommendation_text TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (location_id) REFERENCES locations(id)
	);

	CREATE INDEX IF NOT EXISTS idx_appliances_location ON appliances(location_id);
	CREATE INDEX IF NOT EXISTS idx_weather_location ON weather_data(location_id);
	CREATE INDEX IF NOT EXISTS idx_predictions_location ON predictions(location_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveLocation records a requested location and returns its audit ID.
func (s *Store) SaveLocation(name string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO locations (id, location_name, created_at) VALUES (?, ?, ?)`,
		id, name, time.Now())
	if err != nil {
		return "", err
	}
	return id, nil
}

// SaveAppliances records the declared appliance set for a location.
func (s *Store) SaveAppliances(locationID string, appliances map[string]simulate.Config) error {
	for name, cfg := range appliances {
		daysJSON, _ := json.Marshal(cfg.Days)
		timesJSON, _ := json.Marshal(cfg.Times)

		_, err := s.db.Exec(
			`INSERT INTO appliances (id, location_id, name, power_rating, count, usage_hours, usage_days, time_of_usage, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), locationID, name, cfg.PowerKW, cfg.Count,
			cfg.UsageHours(), string(daysJSON), string(timesJSON), time.Now())
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveWeather records the averaged daily weather table used for a request.
func (s *Store) SaveWeather(locationID string, table weather.Table) error {
	for key, day := range table {
		_, err := s.db.Exec(
			`INSERT INTO weather_data (id, location_id, month, day, temperature, humidity, wind_speed,
			 visibility, pressure, cloud_cover, wind_bearing, precip_intensity, precip_probability, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), locationID, int(key.Month), key.Day,
			day.Temperature, day.Humidity, day.WindSpeed, day.Visibility,
			day.Pressure, day.CloudCover, day.WindBearing,
			day.PrecipIntensity, day.PrecipProbability, time.Now())
		if err != nil {
			return err
		}
	}
	return nil
}

// SavePrediction records a completed prediction and returns its audit ID.
// The dense daily series is stored as JSON.
func (s *Store) SavePrediction(locationID string, totalUse float64, daily any) (string, error) {
	dailyJSON, _ := json.Marshal(daily)

	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO predictions (id, location_id, total_use, daily_series, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, locationID, totalUse, string(dailyJSON), time.Now())
	if err != nil {
		return "", err
	}
	return id, nil
}

// SaveBill records the bill derived from a prediction.
func (s *Store) SaveBill(predictionID string, amount float64, tariffSource string) error {
	_, err := s.db.Exec(
		`INSERT INTO bills (id, prediction_id, bill_amount, tariff_source, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), predictionID, amount, tariffSource, time.Now())
	return err
}

// SaveRecommendations records the advice returned with a prediction.
func (s *Store) SaveRecommendations(locationID string, lines []string) error {
	linesJSON, _ := json.Marshal(lines)
	_, err := s.db.Exec(
		`INSERT INTO recommendations (id, location_id, recommendation_text, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), locationID, string(linesJSON), time.Now())
	return err
}
