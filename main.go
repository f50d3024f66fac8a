package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dpshade/boxgrid/internal/cli"
	"github.com/dpshade/boxgrid/internal/config"
	"github.com/dpshade/boxgrid/internal/errors"
	"github.com/dpshade/boxgrid/internal/service"
	"github.com/dpshade/boxgrid/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`boxgrid - Terminal grid of fill-in template boxes

USAGE:
    boxgrid [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize the data directory
    --dir <path>    Data directory (default: ~/.boxgrid)
    --verbose       Log error details

COMMANDS:
    (no command)       Start interactive TUI mode
    categories         List categories
    category           Create or rename a category
    boxes [category]   List boxes
    box add            Add a box to a category
    search <query>     Fuzzy-search boxes
    place              Place a box on the grid
    set                Set one slot of a cell
    show <r> <c>       Show a cell
    fill <r> <c>       Fill a cell's slots interactively
    grid               Show grid size and occupied cells
    export             Print or write the resolved grid
    save <file>        Save the workspace as a project file
    import <file>      Replace the workspace with a project file
    copy               Copy the resolved grid to the clipboard
    help               Show CLI command help

EXAMPLES:
    boxgrid                                           # Start interactive mode
    boxgrid category create Forms                     # New category
    boxgrid box add 0 --content "Name: ..0.."         # New box
    boxgrid place 0 0 0 0                             # Box 0 of category 0 at 0,0
    boxgrid set 0 0 0 Ada                             # Fill slot 0
    boxgrid export -o out.txt                         # Write the export
    boxgrid help <command>                            # Get detailed help

STORAGE:
    Default directory: ~/.boxgrid
    Override with: %s=<path> or --dir
    Settings: <dir>/config.yaml
`, config.DirEnv)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var verbose bool
	var dir string

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize the data directory")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&verbose, "verbose", false, "Log error details")
	flag.StringVar(&dir, "dir", "", "Data directory")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("boxgrid version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		dataDir, dirErr := config.ResolveDataDir(dir)
		if dirErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", dirErr)
			os.Exit(1)
		}
		cfg = config.DefaultConfig(dataDir)
	}
	if verbose {
		cfg.Verbose = true
	}

	svc, err := service.NewService(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	handler := errors.NewCLIErrorHandler(cfg.Verbose)

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			fmt.Fprintln(os.Stderr, handler.HandleError(err))
			os.Exit(1)
		}
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write config: %v\n", err)
		}
		fmt.Printf("Initialized boxgrid in %s\n", cfg.DataDir)
		return
	}

	// Check if we have command line arguments for CLI mode
	args := flag.Args()
	if len(args) > 0 {
		cliHandler := cli.NewCLI(svc)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintln(os.Stderr, handler.HandleError(err))
			os.Exit(1)
		}
		return
	}

	// No arguments provided - start TUI mode
	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
