package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// Every exported metric must carry a help description for the scrape endpoint.
func TestAllMetricsHaveHelpText(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, nil)

	// Touch labeled vectors so they show up in the gather output.
	m.IncrementStageMove("contacted")
	m.IncrementActivityLogged("call")
	m.RecordHTTPRequest("GET", "/leads", 200, 0)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("Expected at least one metric family to be registered")
	}

	for _, family := range families {
		if family.GetHelp() == "" {
			t.Errorf("Metric %s has no help text", family.GetName())
		}
	}
}

func TestMetricsUseNamespace(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, nil)

	m.IncrementLeadCreated()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	prefix := namespace + "_"
	for _, family := range families {
		name := family.GetName()
		if len(name) < len(prefix) || name[:len(prefix)] != prefix {
			t.Errorf("Metric %s is missing the %q namespace prefix", name, namespace)
		}
	}
}
