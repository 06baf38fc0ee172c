package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunFit(t *testing.T) {
	type tc struct {
		args        []string
		wantSummary string
		wantHidden  []string
	}

	tests := map[string]tc{
		"numbers overflow": {
			args:        []string{"-width", "200", "-reserve", "50", "80", "80", "80", "80"},
			wantSummary: "3 of 4 hidden (+3)",
		},
		"everything fits": {
			args:        []string{"-width", "400", "80", "80"},
			wantSummary: "all 2 items fit",
		},
		"cell widths with spacing": {
			args:        []string{"-width", "20", "-reserve", "4", "-measure", "cells", "Inbox", "Drafts", "Sent", "Archive"},
			wantSummary: "2 of 4 hidden (+2)",
			wantHidden:  []string{"Sent", "Archive"},
		},
		"evict largest": {
			args:        []string{"-width", "100", "-reserve", "0", "-evict", "90", "10", "10"},
			wantSummary: "1 of 3 hidden (+1)",
			wantHidden:  []string{"90"},
		},
		"pinned item stays": {
			args:        []string{"-width", "100", "-reserve", "0", "-pin", "90", "30", "30", "90"},
			wantSummary: "2 of 3 hidden (+2)",
		},
		"explicit gap": {
			args:        []string{"-width", "100", "-reserve", "0", "-gap", "10", "30", "30", "30"},
			wantSummary: "1 of 3 hidden (+1)",
		},
		"two rows": {
			args:        []string{"-width", "100", "-reserve", "0", "-rows", "2", "60", "60", "60"},
			wantSummary: "1 of 3 hidden (+1)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			if err := runFit(tt.args, &out); err != nil {
				t.Fatalf("runFit() error = %v", err)
			}
			got := out.String()
			if !strings.Contains(got, tt.wantSummary) {
				t.Errorf("output missing %q:\n%s", tt.wantSummary, got)
			}
			for _, item := range tt.wantHidden {
				if state := stateOf(got, item); state != "hidden" {
					t.Errorf("state of %q = %q, want hidden\n%s", item, state, got)
				}
			}
		})
	}
}

func TestRunFit_Errors(t *testing.T) {
	type tc struct {
		args []string
		want string
	}

	tests := map[string]tc{
		"missing width": {args: []string{"10"}, want: "-width is required"},
		"no items":      {args: []string{"-width", "10"}, want: "no items"},
		"not a number":  {args: []string{"-width", "10", "abc"}, want: "not a number"},
		"unknown mode":  {args: []string{"-width", "10", "-measure", "inches", "a"}, want: "unknown measure mode"},
		"unknown flag":  {args: []string{"-bogus"}, want: "bogus"},
		"bad font size": {args: []string{"-width", "10", "-measure", "font", "-size", "0", "a"}, want: "font size"},
		"broken config": {args: []string{"-width", "10", "-config", writeConfig(t, "rows = ["), "a"}, want: "config"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := runFit(tt.args, &bytes.Buffer{})
			if err == nil {
				t.Fatal("runFit() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("runFit() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRunFit_ConfigFile(t *testing.T) {
	path := writeConfig(t, "reserve = 0\nrows = 2\n")

	var out bytes.Buffer
	if err := runFit([]string{"-width", "100", "-config", path, "80", "80", "80"}, &out); err != nil {
		t.Fatalf("runFit() error = %v", err)
	}
	// Two rows of one 80 wide item each; the third does not fit.
	if !strings.Contains(out.String(), "1 of 3 hidden") {
		t.Errorf("output:\n%s", out.String())
	}

	// Flags override the file.
	out.Reset()
	if err := runFit([]string{"-width", "100", "-config", path, "-rows", "3", "80", "80", "80"}, &out); err != nil {
		t.Fatalf("runFit() error = %v", err)
	}
	if !strings.Contains(out.String(), "all 3 items fit") {
		t.Errorf("output with -rows override:\n%s", out.String())
	}
}

func TestRunFit_FontModes(t *testing.T) {
	for _, mode := range []string{"font", "shaped"} {
		t.Run(mode, func(t *testing.T) {
			var out bytes.Buffer
			args := []string{"-width", "1000", "-measure", mode, "-size", "16", "Inbox", "Settings"}
			if err := runFit(args, &out); err != nil {
				t.Fatalf("runFit() error = %v", err)
			}
			if !strings.Contains(out.String(), "all 2 items fit") {
				t.Errorf("output:\n%s", out.String())
			}
		})
	}
}

// stateOf returns the STATE column for item in fit output.
func stateOf(out, item string) string {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == item {
			return fields[2]
		}
	}
	return ""
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overflow.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
