package cli

import (
	"fmt"
	"net/url"

	"github.com/fatih/color"
	"github.com/khushal-mali/ai-workout-tracker/internal/models"
	"github.com/spf13/cobra"
)

// exerciseEntry mirrors the decorated catalog response.
type exerciseEntry struct {
	models.Exercise
	DifficultyColor string `json:"difficulty_color"`
	DifficultyLabel string `json:"difficulty_label"`
}

// difficultySprint maps the server's color token to a terminal color.
func difficultySprint(token, label string) string {
	switch token {
	case "green":
		return color.New(color.FgGreen).Sprint(label)
	case "yellow":
		return color.New(color.FgYellow).Sprint(label)
	case "red":
		return color.New(color.FgRed).Sprint(label)
	default:
		return color.New(color.FgHiBlack).Sprint(label)
	}
}

var exercisesCmd = &cobra.Command{
	Use:   "exercises [query]",
	Short: "List the exercise catalog, optionally filtered by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/api/v1/exercises"
		if len(args) == 1 {
			path += "?q=" + url.QueryEscape(args[0])
		}

		var entries []exerciseEntry
		if err := client().get(path, &entries); err != nil {
			return fmt.Errorf("failed to fetch exercises: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		for _, e := range entries {
			fmt.Printf("%s  [%s]\n", bold(e.Name), difficultySprint(e.DifficultyColor, e.DifficultyLabel))
			if e.Description != "" {
				fmt.Printf("    %s\n", e.Description)
			}
		}
		return nil
	},
}

var guidanceCmd = &cobra.Command{
	Use:   "guidance <exercise-name>",
	Short: "Ask the AI coach how to perform an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Message string `json:"message"`
		}
		body := map[string]string{"exercise_name": args[0]}
		if err := client().do("POST", "/api/v1/guidance", body, &resp); err != nil {
			return fmt.Errorf("failed to fetch guidance: %w", err)
		}

		fmt.Println(color.New(color.FgCyan, color.Bold).Sprintf("Coach on %s:", args[0]))
		fmt.Println(resp.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(guidanceCmd)
}
