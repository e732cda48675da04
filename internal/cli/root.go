package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagAPIKey string
	flagUser   string
)

var rootCmd = &cobra.Command{
	Use:   "workout",
	Short: "CLI client for the workout tracker server",
}

// client builds the API client from flags, falling back to env vars.
func client() *apiClient {
	server := flagServer
	if server == "" {
		server = envOr("WORKOUT_SERVER_URL", "http://localhost:8080")
	}
	apiKey := flagAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("WORKOUT_AUTH_API_KEY")
	}
	user := flagUser
	if user == "" {
		user = os.Getenv("WORKOUT_USER_ID")
	}
	return newAPIClient(server, apiKey, user)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Server base URL (default $WORKOUT_SERVER_URL or http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key for session mutations (default $WORKOUT_AUTH_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "User id to act as (default $WORKOUT_USER_ID)")
}
