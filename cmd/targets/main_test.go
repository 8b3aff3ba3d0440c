package main

import (
	"bytes"
	"strings"
	"testing"
)

func runTargets(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTargetsMetric(t *testing.T) {
	out, err := runTargets(t, "--weight", "80", "--height", "180", "--age", "30", "--sex", "male", "--activity", "moderate")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"BMR\t1780 kcal", "TARGET\t2759 kcal", "PROTEIN\t207 g", "CARBS\t310 g", "FAT\t77 g"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTargetsImperialMatchesMetric(t *testing.T) {
	metric, err := runTargets(t, "--weight", "80", "--height", "180", "--age", "30", "--sex", "male", "--activity", "moderate")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	imperial, err := runTargets(t, "--weight", "176.37", "--weight-unit", "lb", "--height", "70.87", "--height-unit", "in",
		"--age", "30", "--sex", "male", "--activity", "moderate")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(imperial, "TARGET\t2759 kcal") {
		t.Errorf("expected imperial input to give the metric target, got:\n%s\nvs\n%s", imperial, metric)
	}
}

func TestTargetsRejectsBadInput(t *testing.T) {
	if _, err := runTargets(t, "--weight", "80", "--height", "180", "--age", "30", "--sex", "other"); err == nil {
		t.Error("expected an unknown sex to fail")
	}
	if _, err := runTargets(t, "--weight", "80", "--age", "30", "--sex", "male"); err == nil {
		t.Error("expected a missing height to fail")
	}
	if _, err := runTargets(t, "--weight", "80", "--weight-unit", "st", "--height", "180", "--age", "30", "--sex", "male"); err == nil {
		t.Error("expected an unknown unit to fail")
	}
}
