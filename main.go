package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/joho/godotenv"
	"github.com/voyago/voyago/internal"
	"github.com/voyago/voyago/internal/utils"
)

const usage = `voyago - multi leg trip planning from the command line

Prerequisites:
  - Set the OPENAI_API_KEY environment variable to your OpenAI API key
  - Set the SERPAPI_API_KEY environment variable to your SerpApi API key
  - Set the GOOGLE_API_KEY environment variable to your Google Maps Platform API key
  - (Optional) Place the keys in a .env file in the working directory instead
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: voyago [flags] <command>

Flags:
  -m, -model string        Set the generation model to use. (default is found in voyagoConfig.json)
  -sr, -subreddit string   Set the subreddit to source traveler discussions from. (default is found in voyagoConfig.json)
  -ad, -adults int         Set the amount of adults travelling. (default is found in voyagoConfig.json)
  -a, -address string      Set the listen address for serve mode. (default 'localhost:8080')
  -r, -raw bool            Set to true to print the plan as plain JSON, without indentation. (default false)
  -ns, -no-save bool       Set to true to skip saving the plan to the config directory. (default false)

Commands:
  h|help               Display this help message
  p|plan   <text>      Plan a trip from a free text description
  s|serve              Start the http planning server
  ls|plans [planID]    List saved plans, or print the plan with the given ID
  v|version            Print the version and dependency versions

Examples:
  - voyago plan "Road trip from Phoenix to Boston and New York, Sep 10 to Sep 20, budget $4000"
  - voyago -r plan "Weekend in Lisbon from Madrid, first week of October" | jq .
  - voyago -ad 4 plan "Family trip from Denver to San Diego over Thanksgiving"
  - voyago -a 0.0.0.0:9090 serve
  - voyago plans
  - voyago plans 7b0d2c1e-1f6a-4c3e-9a5d-2f4e8b6c0a91
`

func main() {
	ancli.SetupSlog()
	err := godotenv.Load()
	if err != nil && misc.Truthy(os.Getenv("DEBUG")) {
		ancli.Noticef("no .env file loaded: %v\n", err)
	}

	configDirPath, err := utils.GetVoyagoConfigDir()
	if err != nil {
		ancli.Errf("failed to find config dir path: %v", err)
		os.Exit(1)
	}

	err = utils.CreateConfigDir(configDirPath)
	if err != nil {
		ancli.Errf("failed to create config dir: %v", err)
		os.Exit(1)
	}

	runner, err := internal.Setup(usage)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			os.Exit(0)
		}
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { shutdown.Monitor(cancel) }()
	err = runner.Run(ctx)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		os.Exit(1)
	}
	cancel()
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
}
