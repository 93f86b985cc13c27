package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/pantonshire/tweetbox"
	"github.com/pantonshire/tweetbox/logging"
)

func main() {
	var opts struct {
		ConfigPath string `short:"c" long:"config" description:"Path to the configuration file"`
		Verbose    []bool `short:"v" long:"verbose" description:"Log SQL statements"`
		DryRun     bool   `long:"dry-run" description:"Print the foreign keys that would be added and exit"`
	}
	if _, err := flags.Parse(&opts); err != nil {
		if flagErr, ok := err.(*flags.Error); ok {
			if flagErr.Type == flags.ErrHelp {
				os.Exit(0)
			} else {
				os.Exit(1)
			}
		} else {
			panic(err)
		}
	}

	if opts.DryRun {
		for _, line := range tweetbox.ForeignKeyPlan() {
			fmt.Println(line)
		}
		return
	}

	config, err := tweetbox.LoadConfig(opts.ConfigPath)
	if err != nil {
		panic(err)
	}
	if len(opts.Verbose) > 0 {
		config.Log.Verbosity = len(opts.Verbose)
		config.DB.Debug = true
	}
	log := logging.New(config.Log)

	db, err := tweetbox.OpenDatabase(config.DB, log, true)
	if err != nil {
		log.Fatalln(err)
	}
	if err := db.Close(); err != nil {
		log.Fatalln(err)
	}
	log.Println("migration complete")
}
