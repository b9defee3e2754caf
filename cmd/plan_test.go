package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlanFile = `team:
  - name: Ada
    title: Engineer
    skills:
      go: 7
  - name: Bob
    title: Product Manager
drafts:
  - title: Write MVP spec
    category: product
    assignee: Bob
    complexity: 2
  - title: Build core feature
    category: engineering
    assignee: Ada
    complexity: 4
`

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestPlanOffline(t *testing.T) {
	deps := &PlanCommandDeps{LoadConfig: testConfig}
	cmd := NewPlanCommand(deps)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", writePlanFile(t, validPlanFile), "--offline", "-o", "text"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Build core feature")
	assert.Contains(t, out.String(), "Horizon:")
	assert.Contains(t, out.String(), "blocked by")
}

func TestPlanJSONOutput(t *testing.T) {
	deps := &PlanCommandDeps{LoadConfig: testConfig}
	cmd := NewPlanCommand(deps)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", writePlanFile(t, validPlanFile), "--offline", "-o", "json"})

	require.NoError(t, cmd.Execute())

	var report planReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Len(t, report.Items, 2)
	assert.Greater(t, report.HorizonHours, 0.0)
	assert.Equal(t, []int{0}, report.Items[1].Blockers, "engineering waits on product")
}

func TestPlanFallsBackToStarterPlan(t *testing.T) {
	deps := &PlanCommandDeps{LoadConfig: testConfig}
	cmd := NewPlanCommand(deps)

	content := "team:\n  - name: Ada\n    title: Engineer\ndrafts: []\n"
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", writePlanFile(t, content), "--offline", "-o", "json"})

	require.NoError(t, cmd.Execute())

	var report planReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Len(t, report.Items, 5)
}

func TestPlanRequiresTeam(t *testing.T) {
	deps := &PlanCommandDeps{LoadConfig: testConfig}
	cmd := NewPlanCommand(deps)

	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--file", writePlanFile(t, "drafts: []\n"), "--offline"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team")
}
