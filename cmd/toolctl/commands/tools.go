package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mvaldes/digital-toolkit/internal/database"
)

// NewToolsCmd creates the tools command group
func NewToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect tool collections",
	}

	cmd.AddCommand(newToolsListCmd())

	return cmd
}

func newToolsListCmd() *cobra.Command {
	var userIDStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's tools in load order (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				return fmt.Errorf("invalid --user value: %w", err)
			}

			db, cleanup, err := openDatabase()
			if err != nil {
				return err
			}
			defer cleanup()

			toolRepo := database.NewToolRepository(db)
			tools, err := toolRepo.GetByUserID(context.Background(), userID)
			if err != nil {
				return fmt.Errorf("failed to list tools: %w", err)
			}

			if len(tools) == 0 {
				fmt.Println("No tools found for user")
				return nil
			}

			fmt.Printf("%d tools:\n", len(tools))
			for _, tool := range tools {
				favorite := " "
				if tool.IsFavorite {
					favorite = "*"
				}
				fmt.Printf("  [%s] %s (%s)\n", favorite, tool.Name, tool.ID)
				fmt.Printf("      Category: %s\n", tool.Category)
				if len(tool.Tags) > 0 {
					fmt.Printf("      Tags: %s\n", strings.Join(tool.Tags, ", "))
				}
				fmt.Printf("      URL: %s\n", tool.WebsiteURL)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&userIDStr, "user", "", "User ID (required)")
	if err := cmd.MarkFlagRequired("user"); err != nil {
		panic(err)
	}

	return cmd
}
