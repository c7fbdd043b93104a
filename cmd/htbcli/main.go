package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/lodex23/htbCli/internal/challenge"
	"github.com/lodex23/htbCli/internal/cli"
	"github.com/lodex23/htbCli/internal/config"
	"github.com/lodex23/htbCli/internal/llm"
)

const version = "0.1.0"

func main() {
	var (
		showVersion bool
		dataDir     string
		userConfig  string
	)

	flag.BoolVar(&showVersion, "version", false, "Print version")
	flag.StringVar(&dataDir, "data-dir", "", "Challenge data directory (default ~/.htbcli/challenges)")
	flag.StringVar(&userConfig, "config", "", "Path to user config YAML (default ~/.htbcli/config.yaml)")
	flag.Parse()

	if showVersion {
		fmt.Printf("htbcli %s\n", version)
		return
	}

	cfg, err := config.Load(userConfig, "")
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	store, err := challenge.NewStore(dataDir)
	if err != nil {
		log.Fatalf("Store init failed: %v", err)
	}

	runner := cli.NewRunner(store, llm.FromConfig(cfg))
	if err := runner.Run(); err != nil {
		log.Fatalf("Shell exited: %v", err)
	}
}
