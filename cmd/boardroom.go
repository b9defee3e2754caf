package cmd

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/strtupify/simkit/config"
	"github.com/strtupify/simkit/credentials"
	"github.com/strtupify/simkit/pkg/boardroom"
)

// Boardroom command flags.
var (
	boardroomOutput   string
	boardroomRoster   string
	boardroomMaxTurns int
	boardroomSeed     int64
	boardroomOffline  bool
)

// BoardroomCommandDeps holds the dependencies for boardroom commands.
type BoardroomCommandDeps struct {
	LoadConfig  func() (*config.CLIConfig, error)
	Credentials credentials.Provider
}

// DefaultBoardroomDeps returns the default dependencies for production use.
func DefaultBoardroomDeps() *BoardroomCommandDeps {
	return &BoardroomCommandDeps{
		LoadConfig:  config.LoadConfig,
		Credentials: credentials.DefaultProvider(),
	}
}

// rosterFile is the YAML shape of a meeting roster file.
type rosterFile struct {
	Directive      string                  `yaml:"directive"`
	CompanyContext string                  `yaml:"company_context"`
	Participants   []boardroom.Participant `yaml:"participants"`
}

// meetingReport is the machine-readable result of a meeting run.
type meetingReport struct {
	MeetingID      string            `json:"meeting_id" yaml:"meeting_id"`
	Directive      string            `json:"directive" yaml:"directive"`
	Turns          int               `json:"turns" yaml:"turns"`
	ElapsedMinutes int               `json:"elapsed_minutes" yaml:"elapsed_minutes"`
	Outcome        boardroom.Outcome `json:"outcome" yaml:"outcome"`
	Transcript     []boardroom.Turn  `json:"transcript" yaml:"transcript"`
}

// NewBoardroomCommand creates the boardroom command with its subcommands.
func NewBoardroomCommand(deps *BoardroomCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultBoardroomDeps()
	}

	cmd := &cobra.Command{
		Use:   "boardroom",
		Short: "Run simulated product meetings",
		Long: `Run simulated product meetings.

A meeting walks a fixed stage sequence (introductions, ideation, consensus,
wrap-up) with generated dialogue, and always terminates with a product idea:
a consensus verdict, an oracle summary, or a neutral placeholder.`,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one meeting to completion",
		Long: `Run one meeting to completion and print its transcript and outcome.

The roster file is YAML:

  directive: "find our first product"
  company_context: "a three-person startup"
  participants:
    - name: Ada
      title: CEO
      personality: decisive
    - name: Bob
      title: Engineer
      personality: skeptical

Examples:
  simkit boardroom run --roster team.yaml
  simkit boardroom run --roster team.yaml --seed 7 --offline -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoardroom(cmd, deps)
		},
	}
	runCmd.Flags().StringVar(&boardroomRoster, "roster", "", "YAML roster file (required)")
	runCmd.Flags().IntVar(&boardroomMaxTurns, "max-turns", 0, "turn cap (default from config)")
	runCmd.Flags().Int64Var(&boardroomSeed, "seed", 0, "random seed (default from config)")
	runCmd.Flags().BoolVar(&boardroomOffline, "offline", false, "use the deterministic scripted oracle")
	runCmd.Flags().StringVarP(&boardroomOutput, "output", "o", "", "output format: text, json, yaml")
	_ = runCmd.MarkFlagRequired("roster")

	cmd.AddCommand(runCmd)
	return cmd
}

func runBoardroom(cmd *cobra.Command, deps *BoardroomCommandDeps) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cfg, boardroomOutput)
	if err != nil {
		return err
	}

	var roster rosterFile
	if err := loadYAMLFile(boardroomRoster, &roster); err != nil {
		return err
	}
	if roster.Directive == "" {
		return fmt.Errorf("roster file must set a directive")
	}

	o, err := buildOracle(cfg, boardroomOffline, deps.Credentials)
	if err != nil {
		return err
	}

	seed := cfg.Meeting.Seed
	if boardroomSeed != 0 {
		seed = boardroomSeed
	}
	maxTurns := cfg.Meeting.MaxTurns
	if boardroomMaxTurns > 0 {
		maxTurns = boardroomMaxTurns
	}

	orch := boardroom.NewOrchestrator(o, rand.New(rand.NewSource(seed)), buildLogger(cfg))

	ctx, cancel := contextWithTimeout(cmd.Context(), cfg.Oracle.Timeout, maxTurns)
	defer cancel()

	state, err := orch.Run(ctx, roster.Participants, roster.Directive, roster.CompanyContext, maxTurns)
	if err != nil {
		return fmt.Errorf("running meeting: %w", err)
	}

	report := meetingReport{
		MeetingID:      state.ID,
		Directive:      state.Directive,
		Turns:          len(state.Transcript),
		ElapsedMinutes: state.ElapsedMinutes,
		Outcome:        state.Outcome,
		Transcript:     state.Transcript,
	}
	return renderOutput(cmd.OutOrStdout(), format, report, func(w io.Writer) {
		printMeetingReport(w, report)
	})
}

func printMeetingReport(w io.Writer, report meetingReport) {
	fmt.Fprintf(w, "Meeting %s (%d turns, %d simulated minutes)\n\n", report.MeetingID, report.Turns, report.ElapsedMinutes)
	stage := ""
	for _, turn := range report.Transcript {
		if turn.Stage != stage {
			stage = turn.Stage
			fmt.Fprintf(w, "-- %s --\n", stage)
		}
		fmt.Fprintf(w, "%s: %s\n", turn.Speaker, turn.Message)
	}
	fmt.Fprintf(w, "\nOutcome: %s\n%s\n", report.Outcome.ProductName, report.Outcome.Description)
}
