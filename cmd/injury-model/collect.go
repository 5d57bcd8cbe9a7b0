package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/evanchechak/basketball-injury-model/internal/datasource"
	"github.com/evanchechak/basketball-injury-model/internal/health"
	"github.com/evanchechak/basketball-injury-model/internal/metrics"
	"github.com/evanchechak/basketball-injury-model/internal/scheduler"
)

var (
	collectTeam   string
	collectSeason string
	collectCron   string
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect a team's season of game logs into the local snapshot",
	Long: `Fetches the team game log, the roster, and every rostered player's
game log for the season from the stats provider, then writes the local
CSV snapshot the analyze command reads. With --cron, keeps running and
refreshes the snapshot on the given schedule.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectTeam, "team", "", "Team abbreviation (e.g. GSW)")
	collectCmd.Flags().StringVar(&collectSeason, "season", "", "Season (e.g. 2023-24)")
	collectCmd.Flags().StringVar(&collectCron, "cron", "", "Cron expression for periodic refresh (optional)")
	_ = collectCmd.MarkFlagRequired("team")
	_ = collectCmd.MarkFlagRequired("season")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	teamID, ok := datasource.LookupTeamID(collectTeam)
	if !ok {
		return fmt.Errorf("unknown team abbreviation %q", collectTeam)
	}

	collector, err := newCollector()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	result, err := collector.CollectTeamSeason(ctx, teamID, collectSeason)
	if err != nil {
		return err
	}

	fmt.Printf("Collected %d games and %d stat rows for %d players (%d errors) in %s\n",
		result.Games, result.StatRows, result.Players, result.Errors, result.Duration.Round(time.Millisecond))

	if collectCron == "" {
		return nil
	}

	serveCtx, stopServe := context.WithCancel(context.Background())
	defer stopServe()

	metrics.InitRegistry()
	healthSrv := health.NewServer(health.Config{
		ServiceName: "injury-model-collector",
		Version:     Version,
		Logger:      appLog,
	})
	if err := healthSrv.Start(serveCtx); err != nil {
		return err
	}
	healthSrv.SetReady(true)

	sched := scheduler.NewScheduler(collector, appLog)
	if err := sched.ScheduleSnapshotRefresh(collectCron, teamID, collectSeason); err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}

	fmt.Printf("Refreshing on schedule %q, next run %s. Ctrl-C to stop.\n",
		collectCron, sched.GetNextRun().Format(time.RFC3339))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	return sched.Stop()
}
