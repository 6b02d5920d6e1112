package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/branchtools/branchver"
	"github.com/go-git/go-git/v5"
)

// Version will be set by build process
var Version = "dev"

var CLI struct {
	Repo        string           `short:"r" help:"Repository path (default: current directory)"`
	Mode        string           `short:"m" default:"snapshot" env:"GITFLOW_BUILD_MODE" enum:"snapshot,release" help:"Build mode"`
	JSON        bool             `short:"j" help:"Output as JSON"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	ShowVersion kong.VersionFlag `name:"version" help:"Show version and exit"`

	Version struct{} `cmd:"" help:"Print the artifact version for the current commit"`

	Debian struct{} `cmd:"" help:"Print the debian package version for the current commit"`

	Classify struct {
		Branch string `arg:"" help:"Branch name to classify"`
	} `cmd:"" help:"Classify a branch name and show its build capabilities"`

	Bump struct {
		NewVersion string `arg:"" help:"Replacement base version"`
	} `cmd:"" help:"Validate a new base version, write it to the version file and commit"`
}

func newParser() (*kong.Kong, error) {
	return kong.New(&CLI,
		kong.Name("branchver"),
		kong.Description("Compute canonical artifact and debian package versions from git-flow branch state"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": Version,
		},
	)
}

func main() {
	parser, err := newParser()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "version":
		err = runVersion(false)
	case "debian":
		err = runVersion(true)
	case "classify <branch>":
		err = runClassify(CLI.Classify.Branch)
	case "bump <new-version>":
		err = runBump(CLI.Bump.NewVersion)
	default:
		err = fmt.Errorf("unexpected command: %s", ctx.Command())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openRepo() (*git.Repository, error) {
	path := CLI.Repo
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}
	return branchver.OpenRepository(path)
}

// versionReport is the JSON form of a version computation.
type versionReport struct {
	Branch   string `json:"branch"`
	Base     string `json:"base"`
	Artifact string `json:"artifact"`
	Debian   string `json:"debian"`
}

func computeVersions(repo *git.Repository, mode branchver.Mode) (*versionReport, error) {
	state, err := branchver.Snapshot(repo)
	if err != nil {
		return nil, err
	}
	slog.Debug("collected repository state",
		"branch", state.Branch,
		"commit", state.CommitID,
		"revisions", state.RevisionCount)

	base, err := branchver.ReadBaseVersion(repo)
	if err != nil {
		return nil, err
	}

	artifact, err := branchver.Generate(base, state, mode)
	if err != nil {
		return nil, err
	}

	return &versionReport{
		Branch:   state.Branch,
		Base:     base,
		Artifact: artifact,
		Debian:   branchver.DebianVersion(artifact),
	}, nil
}

func runVersion(debian bool) error {
	mode, err := branchver.ParseMode(CLI.Mode)
	if err != nil {
		return err
	}

	repo, err := openRepo()
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	report, err := computeVersions(repo, mode)
	if err != nil {
		return err
	}

	if CLI.JSON {
		return json.NewEncoder(os.Stdout).Encode(report)
	}
	if debian {
		fmt.Println(report.Debian)
	} else {
		fmt.Println(report.Artifact)
	}
	return nil
}

// classification is the JSON form of a branch classification.
type classification struct {
	Branch         string `json:"branch"`
	Normalized     string `json:"normalized"`
	Type           string `json:"type"`
	BuildsSnapshot bool   `json:"builds_snapshot"`
	BuildsRelease  bool   `json:"builds_release"`
	Versioned      bool   `json:"versioned"`
	DebianBranch   string `json:"debian_branch"`
}

func classifyBranch(branch string) (*classification, error) {
	normalized, tag := branchver.Classify(branch)
	btype, err := branchver.ParseBranchType(tag)
	if err != nil {
		return nil, err
	}
	desc := btype.Descriptor()

	return &classification{
		Branch:         branch,
		Normalized:     normalized,
		Type:           btype.String(),
		BuildsSnapshot: desc.BuildsSnapshot,
		BuildsRelease:  desc.BuildsRelease,
		Versioned:      desc.Versioned,
		DebianBranch:   branchver.DebianBranchName(normalized),
	}, nil
}

func runClassify(branch string) error {
	result, err := classifyBranch(branch)
	if err != nil {
		return err
	}

	if CLI.JSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	fmt.Println(formatClassification(result))
	return nil
}

func formatClassification(c *classification) string {
	return fmt.Sprintf("branch:    %s\ntype:      %s\nsnapshot:  %t\nrelease:   %t\nversioned: %t\ndebian:    %s",
		c.Normalized, c.Type, c.BuildsSnapshot, c.BuildsRelease, c.Versioned, c.DebianBranch)
}

func runBump(newVersion string) error {
	mode, err := branchver.ParseMode(CLI.Mode)
	if err != nil {
		return err
	}

	repo, err := openRepo()
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	oldVersion, err := branchver.ReadBaseVersion(repo)
	if err != nil {
		return err
	}
	slog.Info("updating base version", "from", oldVersion, "to", newVersion)

	if err := branchver.BumpVersion(repo, newVersion, mode); err != nil {
		return err
	}

	fmt.Printf("Bumped version from %q to %q\n", oldVersion, newVersion)
	return nil
}
