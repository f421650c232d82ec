package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestBuildSettingUnknownKey(t *testing.T) {
	t.Parallel()

	if v, ok := buildSetting("no.such.setting"); ok {
		t.Errorf("buildSetting() = %q for an unknown key", v)
	}
}

func TestGetVersion(t *testing.T) {
	if got := getVersion(); got == "" {
		t.Error("getVersion() returned empty string")
	}

	// ldflags value wins over build info.
	orig := version
	defer func() { version = orig }()
	version = "1.2.3"
	if got := getVersion(); got != "1.2.3" {
		t.Errorf("getVersion() = %q, want %q", got, "1.2.3")
	}
}

func TestGetCommit(t *testing.T) {
	orig := commit
	defer func() { commit = orig }()
	commit = "abcdef1"
	if got := getCommit(); got != "abcdef1" {
		t.Errorf("getCommit() = %q, want %q", got, "abcdef1")
	}
}

func TestGetDate(t *testing.T) {
	orig := date
	defer func() { date = orig }()
	date = "2026-03-10"
	if got := getDate(); got != "2026-03-10" {
		t.Errorf("getDate() = %q, want %q", got, "2026-03-10")
	}
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "reportgen version") {
		t.Errorf("version output = %q, missing version line", got)
	}
	if !strings.Contains(got, "commit:") {
		t.Errorf("version output = %q, missing commit line", got)
	}
}
