package cli

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fatih/color"
	"github.com/khushal-mali/ai-workout-tracker/internal/models"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the in-progress workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := client().getSession()
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		if len(snap.Exercises) == 0 {
			fmt.Println("No exercises in the current session.")
			return nil
		}

		fmt.Printf("Weight unit: %s\n\n", snap.WeightUnit)
		bold := color.New(color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		for i, ex := range snap.Exercises {
			fmt.Printf("%d. %s\n", i+1, bold(ex.Name))
			for j, set := range ex.Sets {
				mark := " "
				if set.IsCompleted {
					mark = green("✓")
				}
				reps, weight := set.Reps, set.Weight
				if reps == "" {
					reps = "-"
				}
				if weight == "" {
					weight = "-"
				}
				fmt.Printf("   [%s] set %d: %s reps × %s %s\n", mark, j+1, reps, weight, set.WeightUnit)
			}
		}
		return nil
	},
}

var addExerciseCatalogID string

var addExerciseCmd = &cobra.Command{
	Use:   "add-exercise <name>",
	Short: "Add an exercise to the current session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := models.ExerciseRef{CatalogID: addExerciseCatalogID, Name: args[0]}
		var ex models.ExerciseDraft
		if err := client().do(http.MethodPost, "/api/v1/session/exercises", ref, &ex); err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}
		fmt.Printf("✅ Added '%s' to the session\n", ex.Name)
		return nil
	},
}

var addSetCmd = &cobra.Command{
	Use:   "add-set <exercise-index>",
	Short: "Add an empty set to an exercise in the current session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exIdx, err := strconv.Atoi(args[0])
		if err != nil || exIdx < 1 {
			return fmt.Errorf("invalid exercise index, must be a positive integer")
		}

		c := client()
		snap, err := c.getSession()
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if exIdx > len(snap.Exercises) {
			return fmt.Errorf("exercise index out of range (session has %d)", len(snap.Exercises))
		}
		ex := snap.Exercises[exIdx-1]

		var set models.SetDraft
		if err := c.do(http.MethodPost, "/api/v1/session/exercises/"+ex.ID+"/sets", nil, &set); err != nil {
			return fmt.Errorf("failed to add set: %w", err)
		}
		fmt.Printf("✅ Added set %d to '%s'\n", len(ex.Sets)+1, ex.Name)
		return nil
	},
}

var (
	logSetReps   string
	logSetWeight string
	logSetDone   bool
)

var logSetCmd = &cobra.Command{
	Use:   "log-set <exercise-index> <set-index>",
	Short: "Record reps and weight for a set, optionally marking it done",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exIdx, err := strconv.Atoi(args[0])
		if err != nil || exIdx < 1 {
			return fmt.Errorf("invalid exercise index")
		}
		setIdx, err := strconv.Atoi(args[1])
		if err != nil || setIdx < 1 {
			return fmt.Errorf("invalid set index")
		}

		c := client()
		exerciseID, setID, err := c.resolveSet(exIdx, setIdx)
		if err != nil {
			return err
		}

		body := map[string]any{}
		if cmd.Flags().Changed("reps") {
			body["reps"] = logSetReps
		}
		if cmd.Flags().Changed("weight") {
			body["weight"] = logSetWeight
		}
		if logSetDone {
			body["toggle_completion"] = true
		}

		path := "/api/v1/session/exercises/" + exerciseID + "/sets/" + setID
		if err := c.do(http.MethodPatch, path, body, nil); err != nil {
			return fmt.Errorf("failed to update set: %w", err)
		}
		fmt.Println("✅ Set updated")
		return nil
	},
}

var removeSetCmd = &cobra.Command{
	Use:   "remove-set <exercise-index> <set-index>",
	Short: "Remove a set from the current session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exIdx, err := strconv.Atoi(args[0])
		if err != nil || exIdx < 1 {
			return fmt.Errorf("invalid exercise index")
		}
		setIdx, err := strconv.Atoi(args[1])
		if err != nil || setIdx < 1 {
			return fmt.Errorf("invalid set index")
		}

		c := client()
		exerciseID, setID, err := c.resolveSet(exIdx, setIdx)
		if err != nil {
			return err
		}

		path := "/api/v1/session/exercises/" + exerciseID + "/sets/" + setID
		if err := c.do(http.MethodDelete, path, nil, nil); err != nil {
			return fmt.Errorf("failed to remove set: %w", err)
		}
		fmt.Println("✅ Set removed")
		return nil
	},
}

var unitCmd = &cobra.Command{
	Use:   "unit <kg|lbs>",
	Short: "Set the weight unit for new sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{"unit": args[0]}
		if err := client().do(http.MethodPut, "/api/v1/session/weight-unit", body, nil); err != nil {
			return fmt.Errorf("failed to set weight unit: %w", err)
		}
		fmt.Printf("✅ Weight unit set to %s\n", args[0])
		return nil
	},
}

var completeDuration float64

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Save the current workout and clear the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]float64{"elapsed_seconds": completeDuration}
		var saved struct {
			ID                string `json:"id"`
			FormattedDuration string `json:"formatted_duration"`
		}
		if err := client().do(http.MethodPost, "/api/v1/session/complete", body, &saved); err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}
		fmt.Printf("✅ Workout saved (%s) as %s\n", saved.FormattedDuration, saved.ID)
		return nil
	},
}

var cancelYes bool

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the in-progress workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cancelYes {
			return fmt.Errorf("this discards all drafted sets; re-run with --yes to confirm")
		}
		if err := client().do(http.MethodDelete, "/api/v1/session", nil, nil); err != nil {
			return fmt.Errorf("failed to cancel session: %w", err)
		}
		fmt.Println("Session discarded.")
		return nil
	},
}

func init() {
	addExerciseCmd.Flags().StringVar(&addExerciseCatalogID, "id", "", "Catalog document id (recommended; enables rename-safe saves)")

	logSetCmd.Flags().StringVarP(&logSetReps, "reps", "r", "", "Reps performed")
	logSetCmd.Flags().StringVarP(&logSetWeight, "weight", "w", "", "Weight used")
	logSetCmd.Flags().BoolVarP(&logSetDone, "done", "d", false, "Toggle the set's completed flag")

	completeCmd.Flags().Float64Var(&completeDuration, "duration", 0, "Elapsed workout time in seconds")
	completeCmd.MarkFlagRequired("duration")

	cancelCmd.Flags().BoolVar(&cancelYes, "yes", false, "Confirm discarding the session")

	rootCmd.AddCommand(sessionCmd, addExerciseCmd, addSetCmd, logSetCmd, removeSetCmd, unitCmd, completeCmd, cancelCmd)
}
