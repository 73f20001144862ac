// Package source produces the alert records fed to the dashboard: the built-in
// demo alerts or a YAML fixture file.
package source

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/alerts"
)

// MockAlerts returns the three demo alerts, timestamped relative to now.
func MockAlerts(now time.Time) []alerts.Alert {
	now = now.UTC()
	return []alerts.Alert{
		{
			ID:        "alert-001",
			Title:     "Proximity Warning",
			Message:   "Benthic Octopod detected within 120m of AUV-003",
			Severity:  alerts.SeverityHigh,
			Category:  "environmental",
			Timestamp: now.Add(-2 * time.Minute),
		},
		{
			ID:        "alert-002",
			Title:     "Battery Warning",
			Message:   "AUV-003 battery level at 32%",
			Severity:  alerts.SeverityMedium,
			Category:  "operational",
			Timestamp: now.Add(-15 * time.Minute),
		},
		{
			ID:        "alert-003",
			Title:     "Dissolved Oxygen",
			Message:   "Levels below optimal range at collection site",
			Severity:  alerts.SeverityLow,
			Category:  "environmental",
			Timestamp: now.Add(-28 * time.Minute),
		},
	}
}

type fixtureFile struct {
	Alerts []fixtureAlert `yaml:"alerts"`
}

type fixtureAlert struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Message   string    `yaml:"message"`
	Severity  string    `yaml:"severity"`
	Category  string    `yaml:"category"`
	Type      string    `yaml:"type"` // accepted as an alias for category
	Timestamp time.Time `yaml:"timestamp"`
	Age       string    `yaml:"age"` // e.g. "15m", relative to load time
}

// LoadAlertsFile reads a YAML fixture of alerts. Records without an id get a
// generated one; records without timestamp or age are stamped with now.
func LoadAlertsFile(path string, now time.Time) ([]alerts.Alert, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alerts fixture: %w", err)
	}
	out, err := ParseAlerts(data, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// ParseAlerts decodes a YAML alerts fixture.
func ParseAlerts(data []byte, now time.Time) ([]alerts.Alert, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing alerts fixture: %w", err)
	}

	out := make([]alerts.Alert, 0, len(f.Alerts))
	for i, fa := range f.Alerts {
		a, err := fa.toAlert(now)
		if err != nil {
			return nil, fmt.Errorf("alert #%d: %w", i+1, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (fa fixtureAlert) toAlert(now time.Time) (alerts.Alert, error) {
	sev := alerts.Severity(strings.ToLower(strings.TrimSpace(fa.Severity)))
	if !sev.IsValid() {
		return alerts.Alert{}, fmt.Errorf("severity %q: %w", fa.Severity, alerts.ErrInvalidSeverity)
	}

	ts := fa.Timestamp
	if ts.IsZero() {
		ts = now
		if fa.Age != "" {
			age, err := time.ParseDuration(fa.Age)
			if err != nil {
				return alerts.Alert{}, fmt.Errorf("age %q: %w", fa.Age, err)
			}
			ts = now.Add(-age)
		}
	}

	id := strings.TrimSpace(fa.ID)
	if id == "" {
		id = uuid.NewString()
	}

	category := fa.Category
	if category == "" {
		category = fa.Type
	}

	return alerts.Alert{
		ID:        id,
		Title:     fa.Title,
		Message:   fa.Message,
		Severity:  sev,
		Category:  category,
		Timestamp: ts.UTC(),
	}, nil
}
