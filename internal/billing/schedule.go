package billing

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Phase is the electrical supply phase of the household connection.
type Phase string

const (
	PhaseSingle Phase = "single"
	PhaseThree  Phase = "three"
)

// Slab is one consumption tier: up to Limit units charged at Rate per unit.
// A Limit of 0 marks the final, unbounded tier.
type Slab struct {
	Limit float64 `yaml:"limit"`
	Rate  float64 `yaml:"rate"`
}

// Schedule is a tiered rate table plus the fixed components of a bill.
// Tier boundaries and rates are configuration, not logic.
type Schedule struct {
	Slabs              []Slab  `yaml:"slabs"`
	FixedCharge        float64 `yaml:"fixed_charge"`
	DutyPercent        float64 `yaml:"duty_percent"`
	Surcharge          float64 `yaml:"surcharge"`
	SubsidySinglePhase float64 `yaml:"subsidy_single_phase"`
	SubsidyThreePhase  float64 `yaml:"subsidy_three_phase"`
}

// DefaultSchedule returns the built-in domestic tariff, used when no
// schedule file is configured.
func DefaultSchedule() *Schedule {
	return &Schedule{
		Slabs: []Slab{
			{Limit: 50, Rate: 3.25},
			{Limit: 50, Rate: 4.05},
			{Limit: 50, Rate: 5.10},
			{Limit: 50, Rate: 6.95},
			{Limit: 50, Rate: 8.20},
			{Limit: 50, Rate: 9.60},
			{Limit: 0, Rate: 11.40},
		},
		FixedCharge:        45,
		DutyPercent:        10,
		Surcharge:          10,
		SubsidySinglePhase: 40,
		SubsidyThreePhase:  20,
	}
}

// LoadSchedule reads a tariff schedule from a YAML file.
func LoadSchedule(path string) (*Schedule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Schedule
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing tariff schedule: %w", err)
	}
	if len(s.Slabs) == 0 {
		return nil, fmt.Errorf("tariff schedule %s defines no slabs", path)
	}
	return &s, nil
}

// EnergyCharge applies the slab waterfall: consumption is allocated to
// tiers in ascending order, lowest tier first, stopping once the full
// amount is consumed. A unit is never charged in two tiers.
func (s *Schedule) EnergyCharge(units float64) decimal.Decimal {
	remaining := decimal.NewFromFloat(units)
	charge := decimal.Zero

	for _, slab := range s.Slabs {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		take := remaining
		if slab.Limit > 0 {
			limit := decimal.NewFromFloat(slab.Limit)
			if take.GreaterThan(limit) {
				take = limit
			}
		}
		charge = charge.Add(take.Mul(decimal.NewFromFloat(slab.Rate)))
		remaining = remaining.Sub(take)
	}

	return charge
}

// Amount computes the full bill for a consumption figure: slab energy
// charge, fixed charge, electricity duty on the energy charge, flat
// surcharge, minus the phase subsidy. Bills never go negative.
func (s *Schedule) Amount(units float64, phase Phase) decimal.Decimal {
	energy := s.EnergyCharge(units)

	duty := energy.Mul(decimal.NewFromFloat(s.DutyPercent)).Div(decimal.NewFromInt(100))
	total := energy.
		Add(decimal.NewFromFloat(s.FixedCharge)).
		Add(duty).
		Add(decimal.NewFromFloat(s.Surcharge)).
		Sub(decimal.NewFromFloat(s.subsidy(phase)))

	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

func (s *Schedule) subsidy(phase Phase) float64 {
	switch phase {
	case PhaseThree:
		return s.SubsidyThreePhase
	default:
		return s.SubsidySinglePhase
	}
}
