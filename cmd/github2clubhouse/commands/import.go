// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/similigh/github2clubhouse/internal/console"
	"github.com/similigh/github2clubhouse/internal/core/config"
	"github.com/similigh/github2clubhouse/internal/core/pipeline"
	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
	"github.com/similigh/github2clubhouse/internal/integrations/github"
	"github.com/similigh/github2clubhouse/internal/steps"
	"github.com/similigh/github2clubhouse/internal/tui"
)

var (
	importOrg        string
	importRepo       string
	importProject    string
	importMapping    string
	importWebhookURL string
	importIncludePRs bool
	importPrefetch   bool
	importYes        bool
	importDryRun     bool
	importOutFile    string
	importWorkflow   string
	importNoTUI      bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import open issues into a Clubhouse project",
	Long: `Import every open issue of a GitHub repository into a Clubhouse project.

Users are matched by username, falling back to the user mapping file
(one "githubUser,clubhouseUser" per line). Milestones become epics, created
when missing. Stories are submitted in a single bulk request after confirmation.

Values not given by flags, environment or config are prompted for.`,
	Run: func(cmd *cobra.Command, args []string) {
		runImport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importOrg, "org", "", "GitHub organisation or user")
	importCmd.Flags().StringVar(&importRepo, "repo", "", "GitHub repository name")
	importCmd.Flags().StringVar(&importProject, "project", "", "Clubhouse project name")
	importCmd.Flags().StringVar(&importMapping, "mapping", "", "User mapping file (default: usermapping.txt)")
	importCmd.Flags().StringVar(&importWebhookURL, "webhook-url", "", "Clubhouse integration webhook to register on the repository")
	importCmd.Flags().BoolVar(&importIncludePRs, "include-prs", true, "Import open pull requests too")
	importCmd.Flags().BoolVar(&importPrefetch, "prefetch-comments", false, "Load all repository comments in one listing")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Submit without asking for confirmation")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Convert only; write the stories as JSON instead of submitting")
	importCmd.Flags().StringVar(&importOutFile, "out-file", "", "Dry-run output file (default: stdout)")
	importCmd.Flags().StringVar(&importWorkflow, "workflow", "import", "Workflow preset to run: import or prepare")
	importCmd.Flags().BoolVar(&importNoTUI, "no-tui", false, "Plain output even on a terminal")
}

func runImport(cmd *cobra.Command) {
	// A dry run without --out-file prints its JSON on stdout, so everything else goes to stderr.
	status := io.Writer(os.Stdout)
	if importDryRun && importOutFile == "" {
		status = os.Stderr
	}

	stepNames, err := resolveWorkflow(importWorkflow, importDryRun)
	if err != nil {
		fmt.Fprintf(status, "❌ %v\n", err)
		os.Exit(1)
	}

	// 1. Configuration: file, then flags, then environment, then prompts
	cfg := loadConfig(status)
	applyImportFlags(cmd, cfg)
	cfg.ApplyEnv()

	con := console.New(status)
	if err := promptMissing(cmd, cfg, con); err != nil {
		if errors.Is(err, console.ErrAborted) {
			fmt.Fprintln(status, "Import cancelled.")
			os.Exit(0)
		}
		fmt.Fprintf(status, "❌ Error reading input: %v\n", err)
		os.Exit(1)
	}
	if missing := cfg.Missing(); len(missing) > 0 {
		fmt.Fprintf(status, "❌ Missing required settings: %s\n", strings.Join(missing, ", "))
		os.Exit(1)
	}

	overrides, err := loadMapping(status, cfg.UserMapping)
	if err != nil {
		log.Fatalf("Failed to load user mapping: %v", err)
	}

	// 2. Dependencies
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tracker pipeline.Tracker = clubhouse.NewClient(nil, cfg.Clubhouse.APIURL, cfg.Clubhouse.APIKey)
	var dry *steps.DryRunTracker
	if importDryRun {
		dry = steps.NewDryRunTracker(tracker)
		tracker = dry
	}

	deps := &pipeline.Dependencies{
		GitHub:    github.NewClient(ctx, cfg.GitHub.Token),
		Clubhouse: tracker,
		Prompter:  con,
		Mapping:   overrides,
		DryRun:    importDryRun,
		AssumeYes: importYes,
	}

	registry := pipeline.NewRegistry()
	steps.RegisterAll(registry)

	if verbose {
		fmt.Fprintf(status, "Pipeline steps: %s\n", stepList(stepNames))
	}

	// 3. Run
	pCtx := pipeline.NewContext(ctx, cfg)
	if err := runImportSteps(status, registry, deps, stepNames, pCtx, useTUI(con), cancel); err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Fprintln(status, "Import cancelled.")
			os.Exit(1)
		}
		fmt.Fprintf(status, "❌ Import failed: %v\n", err)
		os.Exit(1)
	}

	// 4. Report
	if importDryRun {
		if err := writeDryRun(os.Stdout, status, pCtx, dry); err != nil {
			fmt.Fprintf(status, "❌ Failed to write dry-run output: %v\n", err)
			os.Exit(1)
		}
		return
	}
	printSummary(status, pCtx.Result)
}

// importWorkflows are the presets that can run on their own. submit needs the
// project and stories that only prepare produces, so it is reachable only through import.
var importWorkflows = []string{"import", "prepare"}

// resolveWorkflow returns the steps for name. A dry run always stops after prepare.
func resolveWorkflow(name string, dryRun bool) ([]string, error) {
	valid := false
	for _, w := range importWorkflows {
		if w == name {
			valid = true
			break
		}
	}
	if !valid {
		if _, ok := pipeline.GetPreset(name); ok {
			return nil, fmt.Errorf("workflow %q cannot run on its own (use one of: %s)", name, strings.Join(importWorkflows, ", "))
		}
		return nil, fmt.Errorf("unknown workflow %q (use one of: %s)", name, strings.Join(importWorkflows, ", "))
	}

	if dryRun {
		name = "prepare"
	}
	names, _ := pipeline.GetPreset(name)
	return names, nil
}

func runImportSteps(w io.Writer, registry *pipeline.Registry, deps *pipeline.Dependencies, names []string, pCtx *pipeline.Context, interactive bool, cancel func()) error {
	if !interactive {
		fmt.Fprintf(w, "%s\n", tui.TitleStyle.Render("GitHub → Clubhouse Import"))
		p, err := registry.BuildFromNames(names, deps)
		if err != nil {
			return err
		}
		return runPlain(w, p, pCtx)
	}

	before, after := splitAtConfirmation(names)

	prepare, err := registry.BuildFromNames(before, deps)
	if err != nil {
		return err
	}

	// Step logs would tear the TUI; keep them only when asked for.
	if !verbose {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	if err := runWithTUI("GitHub → Clubhouse Import", prepare, pCtx, cancel); err != nil {
		return err
	}
	log.SetOutput(os.Stderr)

	printPrepared(w, pCtx.Result)
	if len(after) == 0 {
		return nil
	}

	submit, err := registry.BuildFromNames(after, deps)
	if err != nil {
		return err
	}
	return submit.Run(pCtx)
}

func useTUI(con *console.Console) bool {
	if importNoTUI {
		return false
	}
	// Check if running in CI/non-interactive environment
	if os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return false
	}
	return con.Interactive() && term.IsTerminal(int(os.Stdout.Fd()))
}

// applyImportFlags copies explicitly set flags over the loaded config.
func applyImportFlags(cmd *cobra.Command, cfg *config.Config) {
	if importOrg != "" {
		cfg.GitHub.Org = importOrg
	}
	if importRepo != "" {
		cfg.GitHub.Repo = importRepo
	}
	if importProject != "" {
		cfg.Clubhouse.Project = importProject
	}
	if importMapping != "" {
		cfg.UserMapping = importMapping
	}
	if importWebhookURL != "" {
		cfg.GitHub.WebhookURL = importWebhookURL
	}
	if cmd.Flags().Changed("include-prs") {
		include := importIncludePRs
		cfg.GitHub.IncludePullRequests = &include
	}
	if cmd.Flags().Changed("prefetch-comments") {
		cfg.GitHub.PrefetchComments = importPrefetch
	}
}

// promptMissing asks for every required value that is still empty.
// The optional webhook URL is offered whenever something else had to be prompted for.
func promptMissing(cmd *cobra.Command, cfg *config.Config, con *console.Console) error {
	prompts := []struct {
		target *string
		q      console.Question
	}{
		{&cfg.GitHub.Org, console.Question{Title: "GitHub organisation or user"}},
		{&cfg.GitHub.Repo, console.Question{Title: "GitHub repository"}},
		{&cfg.GitHub.Token, console.Question{Title: "GitHub token", Secret: true}},
		{&cfg.Clubhouse.APIKey, console.Question{Title: "Clubhouse API token", Secret: true}},
		{&cfg.Clubhouse.Project, console.Question{Title: "Clubhouse project name"}},
	}

	asked := false
	for _, p := range prompts {
		if *p.target != "" {
			continue
		}
		answer, err := con.Ask(p.q)
		if err != nil {
			return err
		}
		*p.target = answer
		asked = true
	}

	if asked && cfg.GitHub.WebhookURL == "" && !cmd.Flags().Changed("webhook-url") {
		answer, err := con.Ask(console.Question{Title: "Clubhouse webhook URL (leave empty to skip)", Optional: true})
		if err != nil {
			return err
		}
		cfg.GitHub.WebhookURL = answer
	}
	return nil
}

// dryRunOutput is the JSON document written by --dry-run.
type dryRunOutput struct {
	RunID        string                        `json:"run_id"`
	GeneratedAt  time.Time                     `json:"generated_at"`
	Repository   string                        `json:"repository"`
	Result       *pipeline.Result              `json:"result"`
	PlannedEpics []string                      `json:"planned_epics"`
	Stories      []clubhouse.CreateStoryParams `json:"stories"`
}

// writeDryRun writes the JSON document to data, or to --out-file with a note on status.
func writeDryRun(data, status io.Writer, pCtx *pipeline.Context, dry *steps.DryRunTracker) error {
	out := dryRunOutput{
		RunID:        pCtx.Result.RunID,
		GeneratedAt:  time.Now().UTC(),
		Repository:   pCtx.Config.GitHub.Org + "/" + pCtx.Config.GitHub.Repo,
		Result:       pCtx.Result,
		PlannedEpics: []string{},
		Stories:      pCtx.Batch.Stories(),
	}
	if dry != nil {
		out.PlannedEpics = append(out.PlannedEpics, dry.PlannedEpics()...)
	}

	doc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dry-run output: %w", err)
	}

	if importOutFile == "" {
		_, err := fmt.Fprintln(data, string(doc))
		return err
	}
	if err := os.WriteFile(importOutFile, doc, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", importOutFile, err)
	}
	fmt.Fprintf(status, "✓ Dry run: %d stories written to %s\n", len(out.Stories), importOutFile)
	for _, name := range out.PlannedEpics {
		fmt.Fprintf(status, "ℹ Would create epic %q\n", name)
	}
	return nil
}

func printPrepared(w io.Writer, r *pipeline.Result) {
	fmt.Fprintf(w, "✓ %d issues converted for %q (%d users, %d aligned with epics, %d epics created)\n",
		r.Issues, r.Project, r.Users, r.EpicsAligned, r.EpicsCreated)
	if r.WebhookCreated {
		fmt.Fprintln(w, "✓ Webhook created")
	}
}

func printSummary(w io.Writer, r *pipeline.Result) {
	switch {
	case r.Aborted:
		fmt.Fprintln(w, tui.ErrorStyle.Render("Import aborted, nothing was submitted."))
	case r.Submitted:
		fmt.Fprintln(w, tui.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d stories into %q", r.StoriesSubmitted, r.Project)))
	default:
		fmt.Fprintln(w, tui.SubtleStyle.Render("Nothing was submitted."))
	}
	if verbose {
		fmt.Fprintf(w, "Run ID: %s\n", r.RunID)
	}
}
