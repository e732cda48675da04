package cli

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/khushal-mali/ai-workout-tracker/internal/models"
	"github.com/khushal-mali/ai-workout-tracker/internal/stats"
	"github.com/spf13/cobra"
)

// workoutEntry mirrors the decorated history response.
type workoutEntry struct {
	models.WorkoutRecord
	Summary           stats.WorkoutSummary `json:"summary"`
	FormattedDuration string               `json:"formatted_duration"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed workouts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []workoutEntry
		if err := client().get("/api/v1/workouts", &entries); err != nil {
			return fmt.Errorf("failed to fetch history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No workouts yet.")
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		for _, e := range entries {
			fmt.Printf("%s  %s  (%s)\n",
				bold(e.Date.Format("2006-01-02")), e.FormattedDuration, e.ID)
			if len(e.Summary.ExerciseNames) > 0 {
				fmt.Printf("    %s\n", strings.Join(e.Summary.ExerciseNames, ", "))
			}
			fmt.Printf("    %d sets, %.1f %s volume\n",
				e.Summary.TotalSets, e.Summary.Volume.Amount, e.Summary.Volume.Unit)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate training statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		var s stats.Stats
		if err := client().get("/api/v1/stats", &s); err != nil {
			return fmt.Errorf("failed to fetch stats: %w", err)
		}

		yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
		printStat := func(label string, value any) {
			fmt.Printf("  %s: %v\n", yellowBold(label), value)
		}

		fmt.Println(color.New(color.FgCyan, color.Bold).Sprint("Training stats"))
		printStat("Total workouts", s.TotalWorkouts)
		printStat("Total duration", fmt.Sprintf("%.0f s", s.TotalDurationSeconds))
		printStat("Average duration", fmt.Sprintf("%.0f s", s.AverageDurationSeconds))
		printStat("Total sets", s.TotalSets)
		for unit, amount := range s.VolumeByUnit {
			printStat(fmt.Sprintf("Volume (%s)", unit), fmt.Sprintf("%.1f", amount))
		}
		return nil
	},
}

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <workout-id>",
	Short: "Delete a completed workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deleteYes {
			return fmt.Errorf("deleting a workout is permanent; re-run with --yes to confirm")
		}
		if err := client().do(http.MethodDelete, "/api/v1/workouts/"+args[0], nil, nil); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}
		fmt.Printf("Workout %s deleted.\n", args[0])
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Confirm deletion")
	rootCmd.AddCommand(historyCmd, statsCmd, deleteCmd)
}
