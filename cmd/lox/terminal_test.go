package main

import (
	"os"
	"testing"
)

func TestParseAutoSwitch(t *testing.T) {
	for value, want := range map[string]autoSwitch{"": switchAuto, "AUTO": switchAuto, "on": switchOn, " off ": switchOff} {
		got, err := parseAutoSwitch("color", value)
		if err != nil || got != want {
			t.Errorf("parseAutoSwitch(%q) = %v, %v", value, got, err)
		}
	}
	_, err := parseAutoSwitch("ui", "sometimes")
	if exitCode(err) != exitUsage {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !switchOn.enabled(os.Stderr) || switchOff.enabled(os.Stderr) {
		t.Fatal("on/off must ignore the terminal")
	}
}
