package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mvaldes/digital-toolkit/internal/config"
	"github.com/mvaldes/digital-toolkit/internal/prefs"
)

// NewPrefsCmd creates the prefs command group
func NewPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and reset persisted user preferences",
	}

	cmd.AddCommand(newPrefsGetCmd())
	cmd.AddCommand(newPrefsResetCmd())

	return cmd
}

func newPrefsGetCmd() *cobra.Command {
	var userIDStr string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a user's persisted sort preference",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				return fmt.Errorf("invalid --user value: %w", err)
			}

			prefStore, cleanup, err := openPrefs()
			if err != nil {
				return err
			}
			defer cleanup()

			key, err := prefStore.GetSortKey(context.Background(), userID)
			if err != nil {
				return fmt.Errorf("failed to read sort preference: %w", err)
			}

			fmt.Printf("Sort key: %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&userIDStr, "user", "", "User ID (required)")
	if err := cmd.MarkFlagRequired("user"); err != nil {
		panic(err)
	}

	return cmd
}

func newPrefsResetCmd() *cobra.Command {
	var userIDStr string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete a user's persisted sort preference",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				return fmt.Errorf("invalid --user value: %w", err)
			}

			prefStore, cleanup, err := openPrefs()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := prefStore.DeleteSortKey(context.Background(), userID); err != nil {
				return fmt.Errorf("failed to reset sort preference: %w", err)
			}

			fmt.Println("Sort preference reset")
			return nil
		},
	}

	cmd.Flags().StringVar(&userIDStr, "user", "", "User ID (required)")
	if err := cmd.MarkFlagRequired("user"); err != nil {
		panic(err)
	}

	return cmd
}

func openPrefs() (*prefs.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := prefs.Connect(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close redis connection: %v\n", err)
		}
	}

	return prefs.NewStore(client), cleanup, nil
}
