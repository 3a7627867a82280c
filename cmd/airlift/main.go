package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/briandowns/spinner"
	"go.uber.org/zap"

	"github.com/airlift-cli/airlift/internal/config"
	"github.com/airlift-cli/airlift/internal/deploy"
	"github.com/airlift-cli/airlift/internal/history"
)

var helpStr = `Usage:
  airlift <command>

Available Commands:
  deploy      Deploy a directory to the platform
  list        List recorded deployments

Flags:
  -h, --help   help for airlift

Use "airlift <command> --help" for more information about a command.`

var commands = []string{"deploy", "list"}

func suggestCommand(command string) string {
	best := ""
	bestDistance := 3

	for _, candidate := range commands {
		distance := levenshtein.ComputeDistance(command, candidate)
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	return best
}

func runCommand(command string, args []string, cfg config.Config, logger *zap.SugaredLogger) error {
	seekingHelp := false
	if len(args) > 0 && (args[len(args)-1] == "--help" || args[len(args)-1] == "-h") {
		seekingHelp = true
		args = args[:len(args)-1]
	}

	loadingSpinner := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	defer func() {
		if loadingSpinner.Active() {
			loadingSpinner.Stop()
		}
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt)
	go func() {
		<-signalChannel
		if loadingSpinner.Active() {
			loadingSpinner.Stop()
		}

		os.Exit(0)
	}()

	switch command {
	case "deploy":
		if seekingHelp {
			fmt.Println(`Usage:
  airlift deploy [directory]

Airlift will copy the directory (default: the current one) into a temporary
workspace, prepare it for the platform, and deploy it with the vercel CLI.
Set VERCEL_TOKEN in the environment or a .env file.`)
			return nil
		}

		sourceDir := "."
		if len(args) > 0 {
			sourceDir = args[0]
		}

		if _, err := os.Stat(sourceDir); err != nil {
			return fmt.Errorf("cannot deploy %s: %v", sourceDir, err)
		}

		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			logger.Warnf("Failed to open deployment history: %v", err)
			store = nil
		}
		if store != nil {
			defer store.Close()
		}

		loadingSpinner.Suffix = " Deploying"
		loadingSpinner.Start()

		runner := deploy.NewRunner(cfg, logger, store)
		url, err := runner.Run(context.Background(), sourceDir)

		loadingSpinner.Stop()

		if err != nil {
			return err
		}

		fmt.Printf("Deployed successfully: %s\n", url)
	case "list":
		if seekingHelp {
			fmt.Println(`Usage:
  airlift list

Airlift will list every deployment recorded on this machine.`)
			return nil
		}

		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("failed to open deployment history: %v", err)
		}
		defer store.Close()

		deployments, err := store.List()
		if err != nil {
			return err
		}

		if len(deployments) == 0 {
			fmt.Println("No deployments found")
			return nil
		}

		for _, d := range deployments {
			fmt.Printf("%s  %s (%s, from %s)\n", d.CreatedAt, d.URL, d.ProjectType, d.SourcePath)
		}
	default:
		if suggestion := suggestCommand(command); suggestion != "" {
			return fmt.Errorf("unknown command: %s (did you mean %q?)\n%s", command, suggestion, helpStr)
		}
		return fmt.Errorf("unknown command: %s\n%s", command, helpStr)
	}

	return nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(helpStr)
		os.Exit(1)
	}

	if os.Args[1] == "--help" || os.Args[1] == "-h" {
		fmt.Println(helpStr)
		os.Exit(0)
	}

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	cfg := config.Load()

	command := os.Args[1]
	args := os.Args[2:]

	if err := runCommand(command, args, cfg, logger); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}
