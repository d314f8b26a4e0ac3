package internal

import (
	"flag"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/planner"
	"github.com/voyago/voyago/internal/utils"
)

type Configurations struct {
	Model     string
	Subreddit string
	Address   string
	Adults    int
	PrintRaw  bool
	NoSave    bool
}

// parseFlags parses CLI flags into an internal Configurations. Flag values
// override the file config, which in turn overrides the built-in defaults.
func parseFlags(defaults Configurations, args []string) (Configurations, []string, error) {
	fs := flag.NewFlagSet("voyago", flag.ContinueOnError)
	fs.String("A-helpful-nonexisting-flag", "there is no default", "This isn't a flag. It's only here to tell you that 'voyago h/help' gives better overview of usage than 'voyago -h'.")

	mShort := fs.String("m", defaults.Model, "Set the generation model to use. Mutually exclusive with model flag.")
	mLong := fs.String("model", defaults.Model, "Set the generation model to use. Mutually exclusive with m flag.")

	srShort := fs.String("sr", defaults.Subreddit, "Set the subreddit to source traveler discussions from. Mutually exclusive with subreddit flag.")
	srLong := fs.String("subreddit", defaults.Subreddit, "Set the subreddit to source traveler discussions from. Mutually exclusive with sr flag.")

	aShort := fs.String("a", defaults.Address, "Set the listen address for serve mode. Mutually exclusive with address flag.")
	aLong := fs.String("address", defaults.Address, "Set the listen address for serve mode. Mutually exclusive with a flag.")

	adShort := fs.Int("ad", defaults.Adults, "Set the amount of adults travelling. Mutually exclusive with adults flag.")
	adLong := fs.Int("adults", defaults.Adults, "Set the amount of adults travelling. Mutually exclusive with ad flag.")

	printRawShort := fs.Bool("r", defaults.PrintRaw, "Set to true to print the plan as plain JSON, without indentation.")
	printRawLong := fs.Bool("raw", defaults.PrintRaw, "Set to true to print the plan as plain JSON, without indentation.")

	noSaveShort := fs.Bool("ns", defaults.NoSave, "Set to true to skip saving the plan to the config directory.")
	noSaveLong := fs.Bool("no-save", defaults.NoSave, "Set to true to skip saving the plan to the config directory.")

	err := fs.Parse(args)
	if err != nil {
		return Configurations{}, []string{}, fmt.Errorf("failed to parse args: %w", err)
	}

	postParseArgs := fs.Args()

	model, err := utils.ReturnNonDefault(*mShort, *mLong, defaults.Model)
	exitWithFlagError(err, "m", "model")
	subreddit, err := utils.ReturnNonDefault(*srShort, *srLong, defaults.Subreddit)
	exitWithFlagError(err, "sr", "subreddit")
	address, err := utils.ReturnNonDefault(*aShort, *aLong, defaults.Address)
	exitWithFlagError(err, "a", "address")
	adults, err := utils.ReturnNonDefault(*adShort, *adLong, defaults.Adults)
	exitWithFlagError(err, "ad", "adults")

	printRaw := *printRawShort || *printRawLong
	noSave := *noSaveShort || *noSaveLong

	newConf := Configurations{
		Model:     model,
		Subreddit: subreddit,
		Address:   address,
		Adults:    adults,
		PrintRaw:  printRaw,
		NoSave:    noSave,
	}

	return newConf, postParseArgs, nil
}

func setupFlags(defaults Configurations) (Configurations, []string) {
	flagSet, args, err := parseFlags(defaults, os.Args[1:])
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to parse flags: %v\n", err))
		os.Exit(1)
	}
	return flagSet, args
}

// applyFlagOverrides writes the non-default flags onto the file config.
// Only flags which differ from the default flags are applied, so that the
// configuration convention flags > file > default holds.
func applyFlagOverrides(pConf *planner.Configurations, flagSet, defaultFlags Configurations) {
	if flagSet.Model != defaultFlags.Model {
		pConf.Model = flagSet.Model
	}
	if flagSet.Subreddit != defaultFlags.Subreddit {
		pConf.Subreddit = flagSet.Subreddit
	}
	if flagSet.Adults != defaultFlags.Adults {
		pConf.Adults = flagSet.Adults
	}
	if flagSet.PrintRaw != defaultFlags.PrintRaw {
		pConf.Raw = flagSet.PrintRaw
	}
	if flagSet.NoSave != defaultFlags.NoSave {
		pConf.SavePlans = !flagSet.NoSave
	}
}

func exitWithFlagError(err error, shortFlag, longflag string) {
	if err != nil {
		if err.Error() == "values are mutually exclusive" {
			ancli.PrintErr(fmt.Sprintf("flags: '%v' and '%v' are mutually exclusive, err: %v\n", shortFlag, longflag, err))
		} else {
			ancli.PrintErr(fmt.Sprintf("unexpected error: %v", err))
		}
		os.Exit(1)
	}
}
