package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/evanchechak/basketball-injury-model/internal/analysis"
	"github.com/evanchechak/basketball-injury-model/internal/datasource"
	"github.com/evanchechak/basketball-injury-model/internal/logger"
	"github.com/evanchechak/basketball-injury-model/internal/metrics"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

var (
	analyzeTeam    string
	analyzeInjured string
	analyzeStat    string
	analyzeLines   []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Scan posted prop lines for value around a player's absence",
	Long: `Splits each teammate's season into games with and without the injured
player, tests the difference for significance, predicts the teammate's
production without them, and compares that prediction against the posted
lines. Reads the local snapshot written by the collect command.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTeam, "team", "", "Team abbreviation (e.g. GSW)")
	analyzeCmd.Flags().StringVar(&analyzeInjured, "injured", "", "Injured player's name, exactly as the provider spells it")
	analyzeCmd.Flags().StringVar(&analyzeStat, "stat", "PTS", "Stat market: PTS, REB, AST or PRA")
	analyzeCmd.Flags().StringArrayVar(&analyzeLines, "line", nil, `Posted line as "Player Name=25.5" (repeatable)`)
	_ = analyzeCmd.MarkFlagRequired("team")
	_ = analyzeCmd.MarkFlagRequired("injured")
	_ = analyzeCmd.MarkFlagRequired("line")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	teamID, ok := datasource.LookupTeamID(analyzeTeam)
	if !ok {
		return fmt.Errorf("unknown team abbreviation %q", analyzeTeam)
	}

	stat, err := models.ParseStatCategory(analyzeStat)
	if err != nil {
		return err
	}

	lines, err := parseLines(analyzeLines)
	if err != nil {
		return err
	}

	collector, err := newCollector()
	if err != nil {
		return err
	}
	ds, err := collector.LoadDataset()
	if err != nil {
		return err
	}

	injuredID := 0
	for _, p := range ds.TeamPlayers(teamID) {
		if p.Name == analyzeInjured {
			injuredID = p.ID
			break
		}
	}
	if injuredID == 0 {
		return fmt.Errorf("player %q has no stat rows for %s in the snapshot", analyzeInjured, analyzeTeam)
	}

	metrics.InitRegistry()
	finder := analysis.NewFinder(cfg.Analysis, cfg.Betting, metrics.Recorder{}, appLog)
	audit := logger.NewAuditLogger(appLog)

	startTime := time.Now()
	report, err := finder.FindOpportunities(ds, analysis.Request{
		InjuredPlayerID:   injuredID,
		InjuredPlayerName: analyzeInjured,
		TeamID:            teamID,
		Stat:              stat,
		Lines:             lines,
	})
	if err != nil {
		return err
	}
	metrics.RecordScanDuration(time.Since(startTime).Seconds())

	fmt.Printf("Evaluated %d teammates with %s out (%s market)\n\n", report.Evaluated, analyzeInjured, stat)

	if len(report.Opportunities) == 0 {
		fmt.Println("No opportunities met the edge threshold.")
	}
	for _, opp := range report.Opportunities {
		audit.LogOpportunityReported(analyzeInjured, opp)
		fmt.Printf("%s %s %.1f %s\n", opp.TeammateName, opp.Stat, opp.Line, opp.Side)
		fmt.Printf("  prediction %.1f (std %.1f), win probability %.1f%%, edge %.1f%%, stake %.2f%% of bankroll\n",
			opp.Prediction, opp.PredictiveStd, opp.WinProbability*100, opp.Edge*100, opp.StakeFraction*100)
		fmt.Printf("  with: %.1f avg over %d games, without: %.1f avg over %d games",
			opp.Impact.MeanWith, opp.Impact.SampleWith, opp.Impact.MeanWithout, opp.Impact.SampleWithout)
		if opp.Impact.PValue != nil {
			fmt.Printf(", p=%.4f", *opp.Impact.PValue)
		}
		fmt.Println()
	}

	if len(report.Skipped) > 0 {
		audit.LogSkippedTeammates(analyzeInjured, report.Skipped)
		fmt.Println("\nSkipped:")
		for _, s := range report.Skipped {
			fmt.Printf("  %s: %s (%s)\n", s.TeammateName, s.Reason, s.Detail)
		}
	}

	return nil
}

func parseLines(raw []string) (map[string]float64, error) {
	lines := make(map[string]float64, len(raw))
	for _, entry := range raw {
		name, value, found := strings.Cut(entry, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid line %q, expected \"Player Name=25.5\"", entry)
		}
		line, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid line value in %q: %w", entry, err)
		}
		lines[name] = line
	}
	return lines, nil
}
