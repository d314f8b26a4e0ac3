package internal

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/voyago/voyago/internal/aggregate"
	"github.com/voyago/voyago/internal/compose"
	"github.com/voyago/voyago/internal/deals"
	"github.com/voyago/voyago/internal/gen"
	"github.com/voyago/voyago/internal/models"
	"github.com/voyago/voyago/internal/planner"
	"github.com/voyago/voyago/internal/server"
	"github.com/voyago/voyago/internal/utils"
	"github.com/voyago/voyago/internal/vendors/gmaps"
	"github.com/voyago/voyago/internal/vendors/meteo"
	"github.com/voyago/voyago/internal/vendors/reddit"
	"github.com/voyago/voyago/internal/vendors/serp"
	"github.com/voyago/voyago/internal/vendors/wiki"
)

type Mode int

const (
	HELP Mode = iota
	PLAN
	SERVE
	PLANS
	VERSION
)

const defaultAddress = "localhost:8080"

var defaultFlags = Configurations{
	Model:     "",
	Subreddit: "",
	Address:   defaultAddress,
	Adults:    0,
	PrintRaw:  false,
	NoSave:    false,
}

func getModeFromArgs(cmd string) (Mode, error) {
	switch cmd {
	case "plan", "p":
		return PLAN, nil
	case "serve", "s":
		return SERVE, nil
	case "plans", "ls":
		return PLANS, nil
	case "help", "h":
		return HELP, nil
	case "version", "v":
		return VERSION, nil
	default:
		return HELP, fmt.Errorf("unknown command: '%s'", cmd)
	}
}

// createPlanner wires the vendor clients into the planning pipeline. Every
// client reads its API key from the environment, so this fails early when a
// key is missing rather than midway through a plan.
func createPlanner(conf planner.Configurations) (*planner.TripPlanner, error) {
	genClient := gen.Default
	genClient.Model = conf.Model
	if err := genClient.Setup("OPENAI_API_KEY", "DEBUG_GEN"); err != nil {
		return nil, fmt.Errorf("failed to setup generation client: %w", err)
	}

	serpClient := serp.Default
	if err := serpClient.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup flight + hotel search client: %w", err)
	}

	gmapsClient := gmaps.Default
	if err := gmapsClient.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup maps client: %w", err)
	}

	meteoClient := meteo.Default
	if err := meteoClient.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup weather client: %w", err)
	}

	wikiClient := wiki.Default
	if err := wikiClient.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup encyclopedia client: %w", err)
	}

	redditClient := reddit.Default
	redditClient.Subreddit = conf.Subreddit
	if err := redditClient.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup discussion client: %w", err)
	}

	finder := deals.NewFinder(&serpClient, &serpClient, conf.Adults)

	aggregator := aggregate.New(&gmapsClient, &meteoClient, &wikiClient, &redditClient)
	aggregator.Sections = conf.BackgroundSections
	aggregator.PostLimit = conf.PostLimit
	aggregator.FetchTimeout = time.Duration(conf.FetchTimeoutSeconds) * time.Second

	composer := compose.New(&gmapsClient, &gmapsClient, &gmapsClient, &genClient)
	composer.NearbyRadius = conf.NearbyRadiusMeters
	composer.TopAttractions = conf.TopAttractions

	tripPlanner := planner.NewTripPlanner(&genClient, finder, aggregator, composer)
	tripPlanner.Distance = &gmapsClient
	return tripPlanner, nil
}

func Setup(usage string) (models.Runner, error) {
	flagSet, args := setupFlags(defaultFlags)
	if len(args) == 0 {
		fmt.Print(usage)
		return nil, utils.ErrUserInitiatedExit
	}
	mode, err := getModeFromArgs(args[0])
	if err != nil {
		return nil, err
	}

	confDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find config dir: %v", err)
	}
	conf, err := utils.LoadConfigFromFile(confDir, "voyagoConfig.json", &planner.DefaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load configs: %w", err)
	}
	conf.ConfigDir = path.Join(confDir, ".voyago")
	applyFlagOverrides(&conf, flagSet, defaultFlags)

	switch mode {
	case PLAN:
		query := strings.TrimSpace(strings.Join(args[1:], " "))
		if query == "" {
			return nil, errors.New("plan requires a free text trip description, see 'voyago help'")
		}
		tripPlanner, err := createPlanner(conf)
		if err != nil {
			return nil, err
		}
		return &planner.Runner{Planner: tripPlanner, Conf: conf, Query: query}, nil
	case SERVE:
		tripPlanner, err := createPlanner(conf)
		if err != nil {
			return nil, err
		}
		return server.New(flagSet.Address, tripPlanner, conf.ConfigDir, conf.SavePlans), nil
	case PLANS:
		id := ""
		if len(args) > 1 {
			id = args[1]
		}
		return &plansRunner{configDir: conf.ConfigDir, id: id, raw: conf.Raw}, nil
	case HELP:
		fmt.Print(usage)
		return nil, utils.ErrUserInitiatedExit
	case VERSION:
		return printVersion()
	default:
		return nil, fmt.Errorf("unknown mode: %v", mode)
	}
}
