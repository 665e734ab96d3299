package resource

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type vendor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestEnvelope_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantItems int
		wantPages int
		wantTotal int
		pagesSet  bool
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2, 0, 0, false},
		{"object", `{"data":[{"id":1}],"totalPages":3,"totalItems":25}`, 1, 3, 25, true},
		{"total alias", `{"data":[],"totalPages":1,"total":4}`, 0, 1, 4, true},
		{"null data", `{"data":null,"totalPages":0}`, 0, 0, 0, true},
		{"no totals", `{"data":[{"id":1}]}`, 1, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env Envelope[vendor]
			if err := json.Unmarshal([]byte(tt.input), &env); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if len(env.Items) != tt.wantItems {
				t.Errorf("items = %d, want %d", len(env.Items), tt.wantItems)
			}
			if env.Pages() != tt.wantPages || env.Total() != tt.wantTotal {
				t.Errorf("pages/total = %d/%d", env.Pages(), env.Total())
			}
			if (env.TotalPages != nil) != tt.pagesSet {
				t.Errorf("TotalPages set = %v", env.TotalPages != nil)
			}
		})
	}
}

func TestEnvelope_UnmarshalRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		shape bool
	}{
		{"missing data", `{"items":[]}`, true},
		{"scalar", `42`, true},
		{"data not array", `{"data":{"id":1}}`, true},
		{"negative pages", `{"data":[],"totalPages":-1}`, false},
		{"negative items", `{"data":[],"totalItems":-3}`, false},
		{"bad item", `[{"id":"x"}]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env Envelope[vendor]
			err := json.Unmarshal([]byte(tt.input), &env)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.shape && !errors.Is(err, ErrEnvelopeShape) {
				t.Errorf("err = %v, want ErrEnvelopeShape", err)
			}
		})
	}
}

func TestEnvelope_Marshal(t *testing.T) {
	b, err := json.Marshal(NewEnvelope([]vendor{{ID: 1, Name: "Acme"}}, 2, 11))
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)
	for _, want := range []string{`"data":[{"id":1,"name":"Acme"}]`, `"totalPages":2`, `"totalItems":11`} {
		if !strings.Contains(got, want) {
			t.Errorf("%s missing %s", got, want)
		}
	}

	b, _ = json.Marshal(Envelope[vendor]{})
	if string(b) != `{"data":[]}` {
		t.Errorf("empty envelope = %s", b)
	}
}
