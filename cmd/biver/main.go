// Command biver is the command-line surface over the repository package:
// one subcommand per operation of spec.md §4.1, plus status/log (ported in
// spirit from original_source/src/main.rs's print_repository_data) and a
// read-only graph export. Flag parsing follows the teacher's main.go
// (kingpin, --config, --debug), generalised to kingpin subcommands since
// biver has many operations rather than one long-running import.
package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/igapanovich/biver/internal/config"
	"github.com/igapanovich/biver/internal/graph"
	"github.com/igapanovich/biver/internal/nickname"
	"github.com/igapanovich/biver/internal/repodata"
	"github.com/igapanovich/biver/internal/repository"
)

func main() {
	app := kingpin.New("biver", "A single-file version-control engine.")
	app.UsageTemplate(kingpin.CompactUsageTemplate).Author("igapanovich")
	app.HelpFlag.Short('h')

	configFile := app.Flag("config", "Config file overriding tool commands and tunables.").Short('c').String()
	debug := app.Flag("debug", "Enable debug-level logging.").Bool()
	cpuProfile := app.Flag("cpuprofile", "Write a CPU profile to this directory and exit on completion.").String()
	memProfile := app.Flag("memprofile", "Write a memory profile to this directory and exit on completion.").String()
	noColor := app.Flag("no-color", "Disable colorized output.").Bool()

	statusCmd := app.Command("status", "Show head, branches and uncommitted-change state.")
	statusFile := statusCmd.Arg("file", "Versioned file.").Required().String()

	logCmd := app.Command("log", "List every version, newest first.")
	logFile := logCmd.Arg("file", "Versioned file.").Required().String()

	commitCmd := app.Command("commit", "Commit the current file content as a new version.")
	commitFile := commitCmd.Arg("file", "Versioned file.").Required().String()
	commitBranch := commitCmd.Flag("branch", "New branch to create at this commit.").String()
	commitDescription := commitCmd.Flag("message", "Version description.").Short('m').String()

	initCmd := app.Command("init", "Commit the first version, creating the repository.")
	initFile := initCmd.Arg("file", "Versioned file.").Required().String()
	initBranch := initCmd.Flag("branch", "Initial branch name (default main).").String()
	initDescription := initCmd.Flag("message", "Version description.").Short('m').String()

	amendCmd := app.Command("amend", "Replace the head version with the current file content.")
	amendFile := amendCmd.Arg("file", "Versioned file.").Required().String()
	amendDescription := amendCmd.Flag("message", "New description (default: keep the old one).").Short('m').String()

	rewordCmd := app.Command("reword", "Change a version's description without touching its content.")
	rewordFile := rewordCmd.Arg("file", "Versioned file.").Required().String()
	rewordTarget := rewordCmd.Arg("version", "Version id (Base58), strictly.").Required().String()
	rewordDescription := rewordCmd.Arg("description", "New description.").Required().String()

	discardCmd := app.Command("discard", "Overwrite the file with the head version's content.")
	discardFile := discardCmd.Arg("file", "Versioned file.").Required().String()

	resetCmd := app.Command("reset", "Move the branch tip to a target version.")
	resetFile := resetCmd.Arg("file", "Versioned file.").Required().String()
	resetTarget := resetCmd.Arg("version", "Version id (Base58), strictly.").Required().String()
	resetHard := resetCmd.Flag("hard", "Also overwrite the file with the new head's content.").Bool()

	checkoutCmd := app.Command("checkout", "Move head to a target and reconstruct its content.")
	checkoutFile := checkoutCmd.Arg("file", "Versioned file.").Required().String()
	checkoutTarget := checkoutCmd.Arg("target", "Branch name, version id, ~N offset or nickname.").Required().String()

	restoreCmd := app.Command("restore", "Reconstruct a target's content without touching metadata.")
	restoreFile := restoreCmd.Arg("file", "Versioned file.").Required().String()
	restoreTarget := restoreCmd.Arg("target", "Branch name, version id, ~N offset or nickname.").Required().String()
	restoreOutput := restoreCmd.Flag("output", "Output path (default: the versioned file).").String()

	branchCmd := app.Command("branch", "Branch management.")
	branchRenameCmd := branchCmd.Command("rename", "Rename a branch.")
	branchRenameFile := branchRenameCmd.Arg("file", "Versioned file.").Required().String()
	branchRenameOld := branchRenameCmd.Arg("old", "Existing branch name.").Required().String()
	branchRenameNew := branchRenameCmd.Arg("new", "New branch name.").Required().String()
	branchDeleteCmd := branchCmd.Command("delete", "Delete a branch.")
	branchDeleteFile := branchDeleteCmd.Arg("file", "Versioned file.").Required().String()
	branchDeleteName := branchDeleteCmd.Arg("name", "Branch to delete.").Required().String()

	previewCmd := app.Command("preview", "Print the path of a version's stored preview image.")
	previewFile := previewCmd.Arg("file", "Versioned file.").Required().String()
	previewTarget := previewCmd.Arg("target", "Branch name, version id, ~N offset or nickname.").Default("~").String()

	graphCmd := app.Command("graph", "Export the branch/version DAG as DOT or PNG.")
	graphFile := graphCmd.Arg("file", "Versioned file.").Required().String()
	graphOut := graphCmd.Flag("out", "Output file (default: stdout, as DOT).").String()
	graphPNG := graphCmd.Flag("png", "Render as PNG instead of DOT (requires --out).").Bool()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *noColor {
		color.NoColor = true
	}

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile)).Stop()
	} else if *memProfile != "" {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*memProfile)).Stop()
	}

	logger := logrus.New()
	logger.Level = logrus.InfoLevel
	if *debug {
		logger.Level = logrus.DebugLevel
	}

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			logger.WithError(err).Error("loading configuration")
			os.Exit(1)
		}
		cfg = loaded
	}

	var (
		outcome repository.Outcome
		err     error
	)

	switch command {
	case statusCmd.FullCommand():
		err = runStatus(cfg, logger, *statusFile)
	case logCmd.FullCommand():
		err = runLog(cfg, logger, *logFile)
	case initCmd.FullCommand():
		repo := repository.Open(*initFile, cfg, logger)
		var branch *string
		if *initBranch != "" {
			branch = initBranch
		}
		outcome, err = repo.CommitInitialVersion(branch, *initDescription)
	case commitCmd.FullCommand():
		repo := repository.Open(*commitFile, cfg, logger)
		var branch *string
		if *commitBranch != "" {
			branch = commitBranch
		}
		outcome, err = repo.CommitVersion(branch, *commitDescription)
	case amendCmd.FullCommand():
		repo := repository.Open(*amendFile, cfg, logger)
		var description *string
		if *amendDescription != "" {
			description = amendDescription
		}
		outcome, err = repo.AmendHead(description)
	case rewordCmd.FullCommand():
		repo := repository.Open(*rewordFile, cfg, logger)
		outcome, err = repo.Reword(*rewordTarget, *rewordDescription)
	case discardCmd.FullCommand():
		repo := repository.Open(*discardFile, cfg, logger)
		outcome, err = repo.Discard()
	case resetCmd.FullCommand():
		repo := repository.Open(*resetFile, cfg, logger)
		if *resetHard {
			outcome, err = repo.HardReset(*resetTarget)
		} else {
			outcome, err = repo.Reset(*resetTarget)
		}
	case checkoutCmd.FullCommand():
		repo := repository.Open(*checkoutFile, cfg, logger)
		outcome, err = repo.CheckOut(*checkoutTarget)
	case restoreCmd.FullCommand():
		repo := repository.Open(*restoreFile, cfg, logger)
		outcome, err = repo.Restore(*restoreTarget, *restoreOutput)
	case branchRenameCmd.FullCommand():
		repo := repository.Open(*branchRenameFile, cfg, logger)
		outcome, err = repo.RenameBranch(*branchRenameOld, *branchRenameNew)
	case branchDeleteCmd.FullCommand():
		repo := repository.Open(*branchDeleteFile, cfg, logger)
		outcome, err = repo.DeleteBranch(*branchDeleteName)
	case previewCmd.FullCommand():
		repo := repository.Open(*previewFile, cfg, logger)
		var path string
		path, outcome, err = repo.Preview(*previewTarget)
		if err == nil && outcome.IsOk() {
			fmt.Println(path)
		}
	case graphCmd.FullCommand():
		err = runGraph(cfg, logger, *graphFile, *graphOut, *graphPNG)
	}

	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if !outcome.IsOk() {
		printRefusal(outcome)
		if outcome.Refusal.IsWarning() {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func printRefusal(outcome repository.Outcome) {
	c := color.New(color.FgYellow)
	if !outcome.Refusal.IsWarning() {
		c = color.New(color.FgRed)
	}
	c.Fprintln(os.Stderr, outcome.Refusal.String())
}

func runStatus(cfg *config.Config, logger *logrus.Logger, file string) error {
	repo := repository.Open(file, cfg, logger)
	data, err := repo.Status()
	if err != nil {
		return err
	}

	dirty, err := repo.HasUncommittedChanges()
	if err != nil {
		return err
	}

	if branch, ok := data.Head.BranchName(); ok {
		fmt.Printf("On branch %s\n", color.New(color.FgGreen).Sprint(branch))
	} else {
		fmt.Printf("HEAD detached at %s\n", color.New(color.FgYellow).Sprint(data.HeadVersion().ID.String()))
	}

	branchNames := make([]string, 0, len(data.Branches))
	for name := range data.Branches {
		branchNames = append(branchNames, name)
	}
	sort.Strings(branchNames)
	fmt.Printf("Branches: %v\n", branchNames)

	if dirty {
		fmt.Println(color.New(color.FgRed).Sprint("Uncommitted changes present."))
	} else {
		fmt.Println("Working file matches head version.")
	}
	return nil
}

func runLog(cfg *config.Config, logger *logrus.Logger, file string) error {
	repo := repository.Open(file, cfg, logger)
	data, err := repo.Status()
	if err != nil {
		return err
	}
	printVersionTable(data)
	return nil
}

// printVersionTable mirrors original_source/main.rs's print_repository_data:
// newest-first, nickname column padded to the widest possible nickname,
// a branch badge and a HEAD badge.
func printVersionTable(data *repodata.RepositoryData) {
	versions := append([]repodata.Version(nil), data.Versions...)
	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].CreationTime.After(versions[j].CreationTime)
	})

	headID := data.HeadVersion().ID
	nicknameWidth := nickname.Max()

	for _, v := range versions {
		badges := ""
		if name, ok := data.BranchOnVersion(v.ID); ok {
			badges += color.New(color.FgCyan).Sprintf(" (%s)", name)
		}
		if v.ID == headID {
			badges += color.New(color.FgYellow).Sprint(" [HEAD]")
		}
		fmt.Printf("%s | %-*s |%s %s\n",
			v.CreationTime.Format(time.RFC3339),
			nicknameWidth, v.Nickname,
			badges, v.Description)
	}
}

func runGraph(cfg *config.Config, logger *logrus.Logger, file, out string, png bool) error {
	repo := repository.Open(file, cfg, logger)
	data, err := repo.Status()
	if err != nil {
		return err
	}

	g := graph.Build(data)

	if png {
		if out == "" {
			return fmt.Errorf("graph: --png requires --out")
		}
		bytes, err := graph.RenderPNG(g)
		if err != nil {
			return err
		}
		return os.WriteFile(out, bytes, 0o644)
	}

	if out == "" {
		fmt.Println(g.String())
		return nil
	}
	return os.WriteFile(out, []byte(g.String()), 0o644)
}
