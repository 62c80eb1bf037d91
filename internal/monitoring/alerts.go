package monitoring

// AlertLevel grades how urgently an operator should look.
type AlertLevel string

const (
	AlertHigh   AlertLevel = "HIGH"
	AlertMedium AlertLevel = "MEDIUM"
)

// Alert is one threshold breach on a batch's metrics.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

// AlertThresholds bound the acceptable action rates.
type AlertThresholds struct {
	MaxQuarantineRate  float64
	MaxStandardizeRate float64
	MinAcceptRate      float64
}

// DefaultAlertThresholds returns the production alerting bounds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		MaxQuarantineRate:  0.20,
		MaxStandardizeRate: 0.30,
		MinAcceptRate:      0.60,
	}
}

// EvaluateAlerts checks batch metrics against thresholds. Several alerts can
// fire for one batch; evaluation order is fixed so output is deterministic.
func EvaluateAlerts(m BatchMetrics, t AlertThresholds) []Alert {
	var alerts []Alert

	if m.QuarantineRate > t.MaxQuarantineRate {
		alerts = append(alerts, Alert{
			Level:   AlertHigh,
			Message: "Quarantine rate exceeded 20%",
		})
	}
	if m.StandardizeRate > t.MaxStandardizeRate {
		alerts = append(alerts, Alert{
			Level:   AlertMedium,
			Message: "High standardization rate indicates upstream issues",
		})
	}
	if m.AcceptRate < t.MinAcceptRate {
		alerts = append(alerts, Alert{
			Level:   AlertHigh,
			Message: "Low accept rate - data quality degrading",
		})
	}
	return alerts
}
