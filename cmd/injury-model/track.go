package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/evanchechak/basketball-injury-model/internal/database"
	"github.com/evanchechak/basketball-injury-model/internal/models"
	"github.com/evanchechak/basketball-injury-model/internal/repository"
	"github.com/evanchechak/basketball-injury-model/internal/tracker"
)

var (
	addPlayer     string
	addStat       string
	addLine       float64
	addSide       string
	addAmount     string
	addPrediction float64
	addEdge       float64
	addWinProb    float64
	addNotes      string

	settleID     string
	settleActual float64

	summaryDays int
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Record, settle and summarize tracked bets",
}

var trackAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new pending bet",
	RunE:  runTrackAdd,
}

var trackSettleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Settle a pending bet against the actual stat value",
	RunE:  runTrackSettle,
}

var trackPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List bets awaiting settlement",
	RunE:  runTrackPending,
}

var trackSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize settled-bet performance",
	RunE:  runTrackSummary,
}

func init() {
	trackAddCmd.Flags().StringVar(&addPlayer, "player", "", "Player name")
	trackAddCmd.Flags().StringVar(&addStat, "stat", "PTS", "Stat market: PTS, REB, AST or PRA")
	trackAddCmd.Flags().Float64Var(&addLine, "line", 0, "Posted line")
	trackAddCmd.Flags().StringVar(&addSide, "side", "", "Bet side: OVER or UNDER")
	trackAddCmd.Flags().StringVar(&addAmount, "amount", "", "Stake amount")
	trackAddCmd.Flags().Float64Var(&addPrediction, "prediction", 0, "Model prediction")
	trackAddCmd.Flags().Float64Var(&addEdge, "edge", 0, "Edge percentage at time of bet")
	trackAddCmd.Flags().Float64Var(&addWinProb, "win-prob", 0, "Model win probability")
	trackAddCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	_ = trackAddCmd.MarkFlagRequired("player")
	_ = trackAddCmd.MarkFlagRequired("line")
	_ = trackAddCmd.MarkFlagRequired("side")
	_ = trackAddCmd.MarkFlagRequired("amount")

	trackSettleCmd.Flags().StringVar(&settleID, "id", "", "Bet ID")
	trackSettleCmd.Flags().Float64Var(&settleActual, "actual", 0, "Actual stat value")
	_ = trackSettleCmd.MarkFlagRequired("id")
	_ = trackSettleCmd.MarkFlagRequired("actual")

	trackSummaryCmd.Flags().IntVar(&summaryDays, "days", 30, "Look-back window in days")

	trackCmd.AddCommand(trackAddCmd, trackSettleCmd, trackPendingCmd, trackSummaryCmd)
	rootCmd.AddCommand(trackCmd)
}

// newTracker connects to the database and wires the bet tracker.
func newTracker(ctx context.Context) (*tracker.Tracker, func(), error) {
	if !cfg.HasDatabase() {
		return nil, nil, fmt.Errorf("bet tracking requires a configured database")
	}

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return tracker.NewTracker(repos.Bet, cfg.Betting, appLog), db.Close, nil
}

func runTrackAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tr, closeDB, err := newTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	stat, err := models.ParseStatCategory(addStat)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(addAmount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", addAmount, err)
	}

	bet, err := tr.Record(ctx, tracker.RecordRequest{
		PlayerName:     addPlayer,
		Stat:           stat,
		Line:           addLine,
		Side:           models.BetSide(addSide),
		Prediction:     addPrediction,
		Amount:         amount,
		EdgePercent:    addEdge,
		WinProbability: addWinProb,
		Notes:          addNotes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recorded bet %s: %s %s %.1f %s for %s\n",
		bet.ID, bet.PlayerName, bet.Stat, bet.Line, bet.Side, bet.Amount)
	return nil
}

func runTrackSettle(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tr, closeDB, err := newTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	id, err := uuid.Parse(settleID)
	if err != nil {
		return fmt.Errorf("invalid bet id %q: %w", settleID, err)
	}

	bet, err := tr.Settle(ctx, id, settleActual, time.Now().UTC())
	if err != nil {
		return err
	}

	if bet.Status == models.BetStatusPush {
		fmt.Printf("Bet %s pushed at %.1f, stake refunded\n", bet.ID, settleActual)
		return nil
	}
	fmt.Printf("Bet %s settled %s: actual %.1f vs line %.1f %s, profit %s\n",
		bet.ID, *bet.Result, settleActual, bet.Line, bet.Side, bet.ProfitValue())
	return nil
}

func runTrackPending(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tr, closeDB, err := newTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	bets, err := tr.Pending(ctx)
	if err != nil {
		return err
	}

	if len(bets) == 0 {
		fmt.Println("No pending bets.")
		return nil
	}
	for _, bet := range bets {
		fmt.Printf("%s  %s %s %.1f %s  %s  placed %s\n",
			bet.ID, bet.PlayerName, bet.Stat, bet.Line, bet.Side,
			bet.Amount, bet.PlacedAt.Format("2006-01-02"))
	}
	return nil
}

func runTrackSummary(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tr, closeDB, err := newTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -summaryDays)

	summary, err := tr.Summarize(ctx, start, end)
	if err != nil {
		return err
	}

	fmt.Printf("Last %d days: %d bets (%d wins, %d losses, %d pushes)\n",
		summaryDays, summary.TotalBets, summary.Wins, summary.Losses, summary.Pushes)
	fmt.Printf("Staked %s, profit %s, win rate %.1f%%, ROI %.1f%%\n",
		summary.TotalStaked, summary.TotalProfit, summary.WinRate*100, summary.ROIPercent)
	return nil
}
