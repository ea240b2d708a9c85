package capture

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testParam struct {
	name, desc string
}

func (p testParam) Name() string        { return p.name }
func (p testParam) Description() string { return p.desc }

func TestAddParameters(t *testing.T) {
	ps := newParameterSet()

	if err := ps.add(testParam{name: "integration_time"}, testParam{name: "modulation_freq"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if diff := cmp.Diff([]string{"integration_time", "modulation_freq"}, ps.names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	p, ok := ps.get("integration_time")
	if !ok || p.Name() != "integration_time" {
		t.Errorf("get(integration_time) = %v, %v", p, ok)
	}
}

func TestAddParametersRejectsWholeBatchOnCollision(t *testing.T) {
	ps := newParameterSet()
	if err := ps.add(testParam{name: "integration_time"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := ps.add(testParam{name: "frame_rate"}, testParam{name: "integration_time"})
	if !errors.Is(err, ErrDuplicateParameter) {
		t.Fatalf("add with collision: %v, want ErrDuplicateParameter", err)
	}

	// No partial insert: frame_rate must not have slipped in.
	if diff := cmp.Diff([]string{"integration_time"}, ps.names()); diff != "" {
		t.Errorf("parameter set changed (-want +got):\n%s", diff)
	}
}

func TestAddParametersRejectsInBatchDuplicate(t *testing.T) {
	ps := newParameterSet()

	err := ps.add(testParam{name: "frame_rate"}, testParam{name: "frame_rate"})
	if !errors.Is(err, ErrDuplicateParameter) {
		t.Fatalf("add with in-batch duplicate: %v, want ErrDuplicateParameter", err)
	}
	if len(ps.names()) != 0 {
		t.Errorf("parameter set = %v, want empty", ps.names())
	}
}

func TestParameterSetClear(t *testing.T) {
	ps := newParameterSet()
	ps.add(testParam{name: "a"}, testParam{name: "b"})
	ps.clear()
	if len(ps.names()) != 0 {
		t.Errorf("clear left %v", ps.names())
	}
	if err := ps.add(testParam{name: "a"}); err != nil {
		t.Errorf("re-add after clear: %v", err)
	}
}
