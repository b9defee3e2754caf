package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strtupify/simkit/config"
)

func testConfig() (*config.CLIConfig, error) {
	cfg := config.DefaultConfig()
	cfg.Meeting.MaxTurns = 10
	return cfg, nil
}

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const validRoster = `directive: "find our first product"
company_context: "a scrappy startup"
participants:
  - name: Ada
    title: CEO
    personality: decisive
  - name: Bob
    title: Engineer
    personality: skeptical
`

func TestBoardroomRunOffline(t *testing.T) {
	deps := &BoardroomCommandDeps{LoadConfig: testConfig}
	root := NewBoardroomCommand(deps)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"run", "--roster", writeRoster(t, validRoster), "--offline", "--seed", "3"})

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Outcome:")
	assert.Contains(t, out.String(), "-- INTRODUCTIONS --")
}

func TestBoardroomRunJSONOutput(t *testing.T) {
	deps := &BoardroomCommandDeps{LoadConfig: testConfig}
	root := NewBoardroomCommand(deps)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"run", "--roster", writeRoster(t, validRoster), "--offline", "-o", "json"})

	require.NoError(t, root.Execute())

	var report meetingReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.NotEmpty(t, report.MeetingID)
	assert.Equal(t, "find our first product", report.Directive)
	assert.NotEmpty(t, report.Outcome.ProductName)
	assert.NotEmpty(t, report.Transcript)
}

func TestBoardroomRunMissingDirective(t *testing.T) {
	deps := &BoardroomCommandDeps{LoadConfig: testConfig}
	root := NewBoardroomCommand(deps)

	roster := writeRoster(t, "participants:\n  - name: Ada\n")
	root.SetArgs([]string{"run", "--roster", roster, "--offline"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directive")
}

func TestBoardroomRunBadOutputFormat(t *testing.T) {
	deps := &BoardroomCommandDeps{LoadConfig: testConfig}
	root := NewBoardroomCommand(deps)

	root.SetArgs([]string{"run", "--roster", writeRoster(t, validRoster), "--offline", "-o", "xml"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}
