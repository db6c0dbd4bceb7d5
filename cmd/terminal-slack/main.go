// Command terminal-slack is a Slack client for the terminal: channel
// and user rosters on the left, the conversation transcript on the
// right, with realtime updates over the RTM stream.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Ben-Sheppard/terminal-slack/pkg/client"
	"github.com/Ben-Sheppard/terminal-slack/pkg/client/ui"
	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
	tea "github.com/charmbracelet/bubbletea"
)

var Version = "dev"

func main() {
	configPath := flag.String("config", client.DefaultConfigPath, "Path to config file")
	token := flag.String("token", "", "Slack API token (overrides config and SLACK_TOKEN)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("terminal-slack %s\n", Version)
		return
	}

	config, err := client.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *token != "" {
		config.Slack.Token = *token
	}
	if config.Slack.Token == "" {
		fmt.Fprintln(os.Stderr, "No Slack token configured.")
		fmt.Fprintf(os.Stderr, "Set slack.token in %s or export SLACK_TOKEN.\n", *configPath)
		os.Exit(1)
	}

	// State and logs live next to each other
	xdgData := os.Getenv("XDG_DATA_HOME")
	if xdgData == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		xdgData = filepath.Join(homeDir, ".local", "share")
	}
	statePath := filepath.Join(xdgData, "terminal-slack", "state.db")

	state, err := client.OpenState(statePath)
	if err != nil {
		log.Fatalf("Failed to open state database: %v", err)
	}
	defer state.Close()

	logFile, err := os.OpenFile(filepath.Join(state.GetStateDir(), "client.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	api := slack.NewClient(config.Slack.Token)
	if config.Slack.APIURL != "" {
		api.SetBaseURL(config.Slack.APIURL)
	}
	transport := client.NewSlackTransport(api, logger)
	defer transport.Close()

	if state.GetFirstRun() {
		if err := state.SetFirstRunComplete(); err != nil {
			logger.Printf("Failed to record first run: %v", err)
		}
	}

	model := ui.NewModel(transport, state, config, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
