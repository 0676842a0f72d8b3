// Command simulate plays Test matches headlessly and prints the scorecards.
package main

import (
	"context"
	"cricket-sim/internal/config"
	"cricket-sim/internal/database"
	"cricket-sim/internal/db"
	"cricket-sim/internal/logger"
	"cricket-sim/internal/notify"
	"cricket-sim/internal/replay"
	"cricket-sim/internal/repository"
	"cricket-sim/internal/roster"
	"cricket-sim/internal/scorecard"
	"cricket-sim/internal/service"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

type options struct {
	teamOne    string
	teamTwo    string
	tests      int
	seed       uint64
	squads     string
	outDir     string
	doReplay   bool
	store      bool
	list       bool
	logLevel   string
	followOnAt string
}

func main() {
	var opts options
	flag.StringVar(&opts.teamOne, "team1", "Australia", "first squad")
	flag.StringVar(&opts.teamTwo, "team2", "England", "second squad")
	flag.IntVar(&opts.tests, "tests", 1, "number of tests in the series")
	flag.Uint64Var(&opts.seed, "seed", 0, "random seed for reproducibility (0 = MATCH_SEED or random)")
	flag.StringVar(&opts.squads, "squads", "", "squads file, .yaml or .csv (default: ROSTER_PATH)")
	flag.StringVar(&opts.outDir, "out", "", "directory to write scorecard files into")
	flag.BoolVar(&opts.doReplay, "replay", false, "replay the commentary at REPLAY_INTERVAL before the scorecard")
	flag.BoolVar(&opts.store, "store", false, "save results to DB_PATH")
	flag.BoolVar(&opts.list, "list", false, "list available squads")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level (default: LOG_LEVEL)")
	flag.StringVar(&opts.followOnAt, "follow-on", "", "follow-on policy: always or never (default: FOLLOW_ON_POLICY)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(logger.NewConsole("warn"))
	if err != nil {
		return err
	}
	if opts.squads != "" {
		cfg.RosterPath = opts.squads
	}
	if opts.followOnAt != "" {
		cfg.FollowOnPolicy = opts.followOnAt
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log := logger.NewConsole(level)

	squads, err := roster.Load(cfg, log)
	if err != nil {
		return err
	}
	if opts.list {
		fmt.Printf("Squads (%s):\n", squads.Source())
		for _, name := range squads.Names() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	var (
		matchRepo *repository.MatchRepository
		statsRepo *repository.StatsRepository
	)
	if opts.store {
		sqlDB, err := database.Open(cfg.DBPath, log)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		q := db.New(sqlDB)
		matchRepo = repository.NewMatchRepository(sqlDB, q, log)
		statsRepo = repository.NewStatsRepository(sqlDB, q, log)
	}

	svc := service.NewSeriesService(cfg, squads, matchRepo, statsRepo, notify.NewWebhookClient(cfg, log), log)
	res, err := svc.Run(ctx, service.SeriesParams{
		TeamOne:    opts.teamOne,
		TeamTwo:    opts.teamTwo,
		Tests:      opts.tests,
		Seed:       opts.seed,
		Commentary: true,
	})
	if err != nil {
		return err
	}

	for _, test := range res.Tests {
		if opts.doReplay {
			_, err := replay.NewPlayer(test.Commentary, cfg.ReplayInterval).WriteLines(ctx, os.Stdout)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println()
		}

		testNo := test.Record.TestNumber
		if opts.tests == 1 {
			testNo = 0
		}
		rec := test.Record
		rec.TestNumber = testNo
		card := scorecard.Match(rec, test.Commentary)
		if opts.outDir == "" {
			fmt.Print(scorecard.Match(rec, nil))
			fmt.Println()
			continue
		}
		name := scorecard.Filename(rec.TeamOne, rec.TeamTwo, testNo, time.Now())
		if err := writeFile(opts.outDir, name, card); err != nil {
			return err
		}
		fmt.Printf("Test %d: %s (scorecard saved to %s)\n", test.Record.TestNumber, rec.Result.Text(), name)
	}

	if opts.tests > 1 {
		if opts.outDir == "" {
			fmt.Print(res.Report)
		} else {
			if err := writeFile(opts.outDir, service.SeriesFilename(res), res.Report); err != nil {
				return err
			}
			fmt.Printf("Series: %s\n", res.Score)
		}
	}
	return nil
}

func writeFile(dir, name, text string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
