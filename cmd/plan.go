package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/strtupify/simkit/config"
	"github.com/strtupify/simkit/credentials"
	"github.com/strtupify/simkit/pkg/workplan"
)

// Plan command flags.
var (
	planOutput  string
	planFile    string
	planOffline bool
)

// PlanCommandDeps holds the dependencies for the plan command.
type PlanCommandDeps struct {
	LoadConfig  func() (*config.CLIConfig, error)
	Credentials credentials.Provider
}

// DefaultPlanDeps returns the default dependencies for production use.
func DefaultPlanDeps() *PlanCommandDeps {
	return &PlanCommandDeps{
		LoadConfig:  config.LoadConfig,
		Credentials: credentials.DefaultProvider(),
	}
}

// planFileContents is the YAML shape of a planning input file.
type planFileContents struct {
	Team   []workplan.Employee `yaml:"team"`
	Drafts []workplan.Draft    `yaml:"drafts"`
}

// planReport is the machine-readable result of a planning run.
type planReport struct {
	Items        []workplan.WorkItem `json:"items" yaml:"items"`
	FinishHours  map[int]float64     `json:"finish_hours" yaml:"finish_hours"`
	HorizonHours float64             `json:"horizon_hours" yaml:"horizon_hours"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(deps *PlanCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultPlanDeps()
	}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Turn work item drafts into a scheduled plan",
		Long: `Turn work item drafts into a scheduled plan.

Drafts are normalized, phase-ordered blockers are inferred, effort is
estimated per assignee, and a business-hours schedule is computed. When the
drafts are unusable a deterministic starter plan is used instead.

The input file is YAML:

  team:
    - name: Ada
      title: Engineer
      skills: {go: 7}
  drafts:
    - title: Build core feature
      category: engineering
      assignee: Ada
      complexity: 4

Examples:
  simkit plan --file plan.yaml
  simkit plan --file plan.yaml --offline -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, deps)
		},
	}
	cmd.Flags().StringVar(&planFile, "file", "", "YAML planning input file (required)")
	cmd.Flags().BoolVar(&planOffline, "offline", false, "use the deterministic scripted oracle")
	cmd.Flags().StringVarP(&planOutput, "output", "o", "", "output format: text, json, yaml")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runPlan(cmd *cobra.Command, deps *PlanCommandDeps) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cfg, planOutput)
	if err != nil {
		return err
	}

	var input planFileContents
	if err := loadYAMLFile(planFile, &input); err != nil {
		return err
	}
	if len(input.Team) == 0 {
		return fmt.Errorf("planning file must list at least one team member")
	}

	o, err := buildOracle(cfg, planOffline, deps.Credentials)
	if err != nil {
		return err
	}

	planner := workplan.NewPlanner(o, buildEstimateCache(cfg), buildLogger(cfg))

	ctx, cancel := contextWithTimeout(cmd.Context(), cfg.Oracle.Timeout, len(input.Drafts)+5)
	defer cancel()

	plan, err := planner.PlanSchedule(ctx, input.Drafts, input.Team)
	if err != nil {
		return fmt.Errorf("planning schedule: %w", err)
	}

	report := planReport{
		Items:        plan.Items,
		FinishHours:  plan.Schedule.Finish,
		HorizonHours: plan.Schedule.Horizon,
	}
	return renderOutput(cmd.OutOrStdout(), format, report, func(w io.Writer) {
		printPlanReport(w, report)
	})
}

func printPlanReport(w io.Writer, report planReport) {
	items := make([]workplan.WorkItem, len(report.Items))
	copy(items, report.Items)
	sort.Slice(items, func(i, j int) bool {
		return report.FinishHours[items[i].ID] < report.FinishHours[items[j].ID]
	})

	for _, item := range items {
		assignee := item.Assignee
		if assignee == "" {
			assignee = "unassigned"
		}
		fmt.Fprintf(w, "[%d] %s (%s, %s) %.1fh, finishes at hour %.1f\n",
			item.ID, item.Title, item.Category, assignee, item.EstimatedHours, report.FinishHours[item.ID])
		if len(item.Blockers) > 0 {
			fmt.Fprintf(w, "    blocked by %v\n", item.Blockers)
		}
	}
	fmt.Fprintf(w, "\nHorizon: %.1f hours (%.1f days)\n", report.HorizonHours, report.HorizonHours/24)
}
