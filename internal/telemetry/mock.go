package telemetry

import (
	"context"
	"time"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/timeline"
)

// DefaultFetchDelay mimics the latency of the real telemetry API.
const DefaultFetchDelay = 500 * time.Millisecond

// warningAUV is the collector whose battery is running low in the demo data.
const warningAUV = "AUV-003"

// missionBase anchors mission and reporting times so snapshots are
// reproducible.
var missionBase = time.Date(2025, 5, 25, 5, 30, 0, 0, time.UTC)

// MockFleet returns the demo fleet operating in the Clarion-Clipperton Zone.
func MockFleet() []AUV {
	return []AUV{
		{ID: "AUV-001", Name: "Explorer-1", Lat: -14.652, Lng: -125.423, Depth: 3240, Status: StatusActive, BatteryLevel: 78},
		{ID: "AUV-002", Name: "Surveyor-1", Lat: -14.658, Lng: -125.427, Depth: 3180, Status: StatusActive, BatteryLevel: 65},
		{ID: "AUV-003", Name: "Collector-1", Lat: -14.662, Lng: -125.419, Depth: 3210, Status: StatusWarning, BatteryLevel: 32},
	}
}

// MockPlumes returns the demo sediment plumes.
func MockPlumes() []Plume {
	return []Plume{
		{ID: "plume-001", Lat: -14.657, Lng: -125.425, Radius: 500, Intensity: 0.7},
	}
}

// MockProvider serves canned snapshots after a simulated network delay.
type MockProvider struct {
	delay  time.Duration
	fleet  []AUV
	plumes []Plume
}

// MockOption configures a MockProvider.
type MockOption func(*MockProvider)

// WithDelay overrides the simulated fetch latency. Zero disables it.
func WithDelay(d time.Duration) MockOption {
	return func(p *MockProvider) {
		if d >= 0 {
			p.delay = d
		}
	}
}

// NewMockProvider creates a provider over MockFleet.
func NewMockProvider(opts ...MockOption) *MockProvider {
	p := &MockProvider{
		delay:  DefaultFetchDelay,
		fleet:  MockFleet(),
		plumes: MockPlumes(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fleet returns a copy of the fleet list.
func (p *MockProvider) Fleet() []AUV {
	out := make([]AUV, len(p.fleet))
	copy(out, p.fleet)
	return out
}

// Plumes returns a copy of the sediment plume list.
func (p *MockProvider) Plumes() []Plume {
	out := make([]Plume, len(p.plumes))
	copy(out, p.plumes)
	return out
}

// Fetch waits for the simulated delay and returns the snapshot for auvID.
// An empty auvID is overview mode.
func (p *MockProvider) Fetch(ctx context.Context, auvID string, frame timeline.Frame) (Snapshot, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	return MockSnapshot(auvID, frame), nil
}

// MockSnapshot builds the canned snapshot without any delay.
func MockSnapshot(auvID string, frame timeline.Frame) Snapshot {
	battery := Battery{Level: 78, EstimatedRemaining: 4*time.Hour + 20*time.Minute, Status: StatusNormal}
	if auvID == warningAUV {
		battery = Battery{Level: 32, EstimatedRemaining: time.Hour + 15*time.Minute, Status: StatusWarning}
	}

	return Snapshot{
		AUVID: auvID,
		Frame: frame,
		Environmental: Environmental{
			Sediment: SedimentDisturbance{
				Current:   12.3,
				Threshold: 25,
				Unit:      "mg/L",
				History:   []float64{10.2, 11.5, 12.3, 11.8, 12.3},
			},
			WaterQuality: WaterQuality{
				Turbidity:       Reading{Value: 8.7, Unit: "NTU", Status: StatusNormal},
				PH:              Reading{Value: 7.2, Unit: "pH", Status: StatusNormal},
				Temperature:     Reading{Value: 4.3, Unit: "°C", Status: StatusNormal},
				DissolvedOxygen: Reading{Value: 6.8, Unit: "mg/L", Status: StatusWarning},
			},
			SpeciesProximity: []SpeciesSighting{
				{Species: "Benthic Octopod", Distance: 120, Timestamp: missionBase.Add(2*time.Hour + 12*time.Minute + 18*time.Second), Status: StatusWarning},
			},
		},
		Operational: Operational{
			Position: Position{Lat: -14.657, Lng: -125.425, Depth: 3210, Heading: 278, Speed: 1.2},
			Mission: Mission{
				ID:             "MSN-2025-05-25-003",
				Status:         "in-progress",
				StartTime:      missionBase,
				Duration:       2*time.Hour + 40*time.Minute,
				CompletionRate: 68,
			},
			Efficiency: Efficiency{NodulesCollected: 42, Rate: 15.8, Unit: "nodules/hour"},
			Battery:    battery,
		},
		Compliance: Compliance{
			Standards: []ISAStandard{
				{ID: "ISA-ENV-1", Description: "Sediment discharge limit", Status: StatusCompliant, Value: "12.3 mg/L", Threshold: "25 mg/L"},
				{ID: "ISA-ENV-2", Description: "Protected species distance", Status: StatusWarning, Value: "120m", Threshold: "150m"},
				{ID: "ISA-OPS-1", Description: "Collection rate reporting", Status: StatusCompliant, Value: "Reported", Threshold: "Required"},
			},
			Sensitive:  ZoneTime{Value: 15 * time.Minute, Limit: time.Hour, Status: StatusCompliant},
			Restricted: ZoneTime{Status: StatusCompliant},
			Reporting: Reporting{
				LastReport:    missionBase.Add(90 * time.Minute),
				NextScheduled: missionBase.Add(150 * time.Minute),
				UpToDate:      true,
			},
		},
	}
}
