package main

import (
	"encoding/json"
	"testing"
)

func TestDemoCommand(t *testing.T) {
	tests := []struct {
		name        string
		nodes       int
		strategy    string
		backing     string
		limit       int
		wantErr     bool
		wantContain []string
		wantJSON    bool
	}{
		{
			name:        "default list",
			nodes:       100,
			strategy:    "sequential",
			backing:     "heap",
			wantContain: []string{"Linked 101 nodes across 2 pools", "Leaked regions:  0"},
		},
		{
			name:        "heuristic search",
			nodes:       100,
			strategy:    "heuristic",
			backing:     "heap",
			wantContain: []string{"Strategy:        heuristic", "Pools:           2"},
		},
		{
			name:        "mmap backing",
			nodes:       1000,
			strategy:    "sequential",
			backing:     "mmap",
			wantContain: []string{"Linked 1,001 nodes across 2 pools"},
		},
		{
			name:        "single node pools",
			nodes:       1,
			strategy:    "sequential",
			backing:     "heap",
			wantContain: []string{"Linked 2 nodes across 2 pools"},
		},
		{
			name:     "json report",
			nodes:    50,
			strategy: "sequential",
			backing:  "heap",
			wantJSON: true,
		},
		{
			name:     "limit too small to grow",
			nodes:    10,
			strategy: "sequential",
			backing:  "heap",
			limit:    330,
			wantErr:  true,
		},
		{
			name:     "bad strategy",
			nodes:    10,
			strategy: "fastest",
			backing:  "heap",
			wantErr:  true,
		},
		{
			name:     "bad node count",
			nodes:    0,
			strategy: "sequential",
			backing:  "heap",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.wantJSON
			strategyArg = tt.strategy
			backingArg = tt.backing
			limitBytes = tt.limit
			demoNodes = tt.nodes

			output, err := captureOutput(t, runDemo)

			if (err != nil) != tt.wantErr {
				t.Errorf("runDemo() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
				return
			}
			if tt.wantErr {
				return
			}

			if tt.wantJSON {
				assertJSON(t, output)
				var report DemoReport
				if err := json.Unmarshal([]byte(output), &report); err != nil {
					t.Fatalf("decode report: %v", err)
				}
				if report.Nodes != tt.nodes+1 || report.Leaked != 0 || !report.ReleasedOnce {
					t.Errorf("unexpected report: %+v", report)
				}
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}
