package source

import (
	"errors"
	"testing"

	"github.com/railwatch/railwatch/pkg/config"
)

func TestForConfig(t *testing.T) {
	cfg := &config.Config{
		ScheduleSource: config.SourceTfL,
		LiveSource:     config.SourceTransportAPI,
	}

	scheduleSource, liveSource, err := ForConfig(cfg)
	if err != nil {
		t.Fatalf("ForConfig failed: %v", err)
	}

	if scheduleSource.Name() != "TfL Journey Planner" {
		t.Errorf("schedule source = %q", scheduleSource.Name())
	}
	if liveSource.Name() != "TransportAPI" {
		t.Errorf("live source = %q", liveSource.Name())
	}
}

func TestForConfigUnknownSources(t *testing.T) {
	_, _, err := ForConfig(&config.Config{ScheduleSource: "carrier-pigeon", LiveSource: config.SourceDarwin})
	if !errors.Is(err, UnsupportedSourceError) {
		t.Errorf("unknown schedule source error = %v, want UnsupportedSourceError", err)
	}

	_, _, err = ForConfig(&config.Config{ScheduleSource: config.SourceDarwin, LiveSource: config.SourceTfL})
	if !errors.Is(err, UnsupportedSourceError) {
		t.Errorf("unsupported live source error = %v, want UnsupportedSourceError", err)
	}
}
