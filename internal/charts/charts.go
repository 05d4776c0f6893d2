// Package charts holds the chart definitions rendered by the admin screens.
//
// Definitions live in a Registry that the host builds once at startup and
// injects wherever chart data is assembled; nothing is registered at import time.
package charts

import (
	"errors"
	"fmt"
	"sync"
)

// Kind is the chart type understood by the front end
type Kind string

const (
	KindBar Kind = "bar"
	KindPie Kind = "pie"
)

// Chart names used by the loan monitor
const (
	LoanStatus        = "loan_status"
	LoanPaymentStatus = "loan_payment_status"
	UserDistribution  = "user_distribution"
)

var (
	ErrUnknownChart   = errors.New("chart not registered")
	ErrDuplicateChart = errors.New("chart already registered")
)

// Spec describes a chart: its labels, the dataset label and one colour per label.
type Spec struct {
	Kind         Kind
	DatasetLabel string
	Labels       []string
	Colors       []string
	HoverOffset  int
}

// Dataset is one series of a chart
type Dataset struct {
	Label           string   `json:"label"`
	Data            []int64  `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	HoverOffset     int      `json:"hoverOffset,omitempty"`
}

// Chart is the JSON payload handed to the front-end chart component
type Chart struct {
	Name     string    `json:"name"`
	Kind     Kind      `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Registry maps chart names to their specs
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds a chart definition. Labels and colours must line up.
func (r *Registry) Register(name string, spec Spec) error {
	if len(spec.Labels) == 0 {
		return fmt.Errorf("chart %q: at least one label is required", name)
	}
	if len(spec.Colors) != len(spec.Labels) {
		return fmt.Errorf("chart %q: %d labels but %d colors", name, len(spec.Labels), len(spec.Colors))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateChart, name)
	}
	r.specs[name] = spec
	return nil
}

// Spec returns the definition registered under name
func (r *Registry) Spec(name string) (Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
	return spec, nil
}

// Build fills the named chart with one value per label
func (r *Registry) Build(name string, data ...int64) (Chart, error) {
	spec, err := r.Spec(name)
	if err != nil {
		return Chart{}, err
	}
	if len(data) != len(spec.Labels) {
		return Chart{}, fmt.Errorf("chart %q: expected %d values, got %d", name, len(spec.Labels), len(data))
	}

	return Chart{
		Name:   name,
		Kind:   spec.Kind,
		Labels: append([]string(nil), spec.Labels...),
		Datasets: []Dataset{{
			Label:           spec.DatasetLabel,
			Data:            append([]int64(nil), data...),
			BackgroundColor: append([]string(nil), spec.Colors...),
			HoverOffset:     spec.HoverOffset,
		}},
	}, nil
}

// RegisterLoanMonitor registers the charts shown on the loan monitor.
// Hosts call it once after NewRegistry.
func RegisterLoanMonitor(r *Registry) error {
	defs := map[string]Spec{
		LoanStatus: {
			Kind:         KindBar,
			DatasetLabel: "Loan Status",
			Labels:       []string{"Approved", "Active", "Rejected", "Paid", "Unpaid"},
			Colors:       []string{"#16a34a", "#3b82f6", "#dc2626", "#2563eb", "#eab308"},
		},
		LoanPaymentStatus: {
			Kind:         KindPie,
			DatasetLabel: "Loan Payment Status",
			Labels:       []string{"Paid Off Loans", "Other Loans"},
			Colors:       []string{"#4ade80", "#a5b4fc"},
			HoverOffset:  4,
		},
		UserDistribution: {
			Kind:         KindPie,
			DatasetLabel: "User Distribution",
			Labels:       []string{"Active Users", "Other Users"},
			Colors:       []string{"#4ade80", "#a5b4fc"},
			HoverOffset:  4,
		},
	}
	for name, spec := range defs {
		if err := r.Register(name, spec); err != nil {
			return err
		}
	}
	return nil
}
