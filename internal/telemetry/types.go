// Package telemetry provides the environmental, operational and compliance
// readings shown in the dashboard's data panel, and the AUV fleet list.
package telemetry

import (
	"context"
	"time"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/timeline"
)

// Reading status values.
const (
	StatusNormal    = "normal"
	StatusWarning   = "warning"
	StatusCompliant = "compliant"
	StatusActive    = "active"
)

// AUV is a monitored autonomous underwater vehicle.
type AUV struct {
	ID           string
	Name         string
	Lat, Lng     float64
	Depth        int // metres
	Status       string
	BatteryLevel int // percent
}

// Plume is a sediment plume around the collection site.
type Plume struct {
	ID        string
	Lat, Lng  float64
	Radius    int     // metres
	Intensity float64 // 0-1
}

// Reading is a single measured value with its unit and status.
type Reading struct {
	Value  float64
	Unit   string
	Status string
}

// Compliant reports whether the reading is within its normal band.
func (r Reading) Compliant() bool {
	return r.Status == StatusNormal || r.Status == StatusCompliant
}

type SedimentDisturbance struct {
	Current   float64
	Threshold float64
	Unit      string
	History   []float64
}

// PercentOfThreshold returns Current as a percentage of Threshold.
func (s SedimentDisturbance) PercentOfThreshold() float64 {
	if s.Threshold == 0 {
		return 0
	}
	return s.Current / s.Threshold * 100
}

type WaterQuality struct {
	Turbidity       Reading
	PH              Reading
	Temperature     Reading
	DissolvedOxygen Reading
}

type SpeciesSighting struct {
	Species   string
	Distance  int // metres
	Timestamp time.Time
	Status    string
}

type Environmental struct {
	Sediment         SedimentDisturbance
	WaterQuality     WaterQuality
	SpeciesProximity []SpeciesSighting
}

type Position struct {
	Lat, Lng float64
	Depth    int
	Heading  int
	Speed    float64 // knots
}

type Mission struct {
	ID             string
	Status         string
	StartTime      time.Time
	Duration       time.Duration
	CompletionRate int
}

type Efficiency struct {
	NodulesCollected int
	Rate             float64
	Unit             string
}

type Battery struct {
	Level              int
	EstimatedRemaining time.Duration
	Status             string
}

type Operational struct {
	Position   Position
	Mission    Mission
	Efficiency Efficiency
	Battery    Battery
}

// ISAStandard is one International Seabed Authority rule and its current
// measured value.
type ISAStandard struct {
	ID          string
	Description string
	Status      string
	Value       string
	Threshold   string
}

type ZoneTime struct {
	Value  time.Duration
	Limit  time.Duration
	Status string
}

type Reporting struct {
	LastReport    time.Time
	NextScheduled time.Time
	UpToDate      bool
}

type Compliance struct {
	Standards  []ISAStandard
	Sensitive  ZoneTime
	Restricted ZoneTime
	Reporting  Reporting
}

// Snapshot is everything the data panel renders for one AUV and frame.
type Snapshot struct {
	AUVID         string
	Frame         timeline.Frame
	Environmental Environmental
	Operational   Operational
	Compliance    Compliance
}

// Provider loads a snapshot. Implementations must honour ctx cancellation.
type Provider interface {
	Fetch(ctx context.Context, auvID string, frame timeline.Frame) (Snapshot, error)
	Fleet() []AUV
	Plumes() []Plume
}
