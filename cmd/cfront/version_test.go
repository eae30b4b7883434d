package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderVersionPretty(t *testing.T) {
	info := versionInfo{Version: "1.2.3", GitCommit: "abc123", BuildDate: "2024-01-15"}

	var sb strings.Builder
	renderVersionPretty(&sb, info, versionOptions{showHash: true, showDate: true})
	got := sb.String()
	for _, want := range []string{"cfront 1.2.3", "commit: abc123", "built:  2024-01-15"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	sb.Reset()
	renderVersionPretty(&sb, info, versionOptions{})
	if strings.Contains(sb.String(), "commit:") {
		t.Errorf("commit shown without --hash:\n%s", sb.String())
	}
}

func TestRenderVersionJSON(t *testing.T) {
	info := versionInfo{Version: "1.2.3"}

	var sb strings.Builder
	if err := renderVersionJSON(&sb, info, versionOptions{showHash: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(sb.String()), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "cfront" || payload.Version != "1.2.3" {
		t.Errorf("payload = %+v", payload)
	}
	if payload.GitCommit != "unknown" {
		t.Errorf("git_commit = %q, want %q", payload.GitCommit, "unknown")
	}
	if payload.BuildDate != "" {
		t.Errorf("build_date should be omitted, got %q", payload.BuildDate)
	}
}
