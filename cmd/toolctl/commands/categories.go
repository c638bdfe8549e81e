package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvaldes/digital-toolkit/internal/config"
	"github.com/mvaldes/digital-toolkit/internal/database"
	"github.com/mvaldes/digital-toolkit/internal/models"
)

// NewCategoriesCmd creates the categories command group
func NewCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage category display metadata",
		Long:  "List and edit the optional icon/color metadata shown next to category names",
	}

	cmd.AddCommand(newCategoriesListCmd())
	cmd.AddCommand(newCategoriesSetCmd())

	return cmd
}

func newCategoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List category metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := openDatabase()
			if err != nil {
				return err
			}
			defer cleanup()

			metaRepo := database.NewCategoryMetaRepository(db)
			metas, err := metaRepo.GetAll(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list category metadata: %w", err)
			}

			if len(metas) == 0 {
				fmt.Println("No category metadata configured")
				return nil
			}

			fmt.Println("Category metadata:")
			for _, meta := range metas {
				fmt.Printf("  - Name: %s\n", meta.Name)
				fmt.Printf("    Icon: %s\n", meta.Icon)
				if meta.Color != nil {
					fmt.Printf("    Color: %s\n", *meta.Color)
				}
				fmt.Println()
			}

			return nil
		},
	}
}

func newCategoriesSetCmd() *cobra.Command {
	var icon string
	var color string

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update metadata for a category name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if icon == "" {
				return fmt.Errorf("--icon is required")
			}

			db, cleanup, err := openDatabase()
			if err != nil {
				return err
			}
			defer cleanup()

			meta := &models.CategoryMeta{
				Name: args[0],
				Icon: icon,
			}
			if color != "" {
				meta.Color = &color
			}

			metaRepo := database.NewCategoryMetaRepository(db)
			if err := metaRepo.Upsert(context.Background(), meta); err != nil {
				return fmt.Errorf("failed to save category metadata: %w", err)
			}

			fmt.Printf("Saved metadata for category %q\n", meta.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "Icon name (required)")
	cmd.Flags().StringVar(&color, "color", "", "Display color")

	return cmd
}

func openDatabase() (*database.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
		}
	}

	return db, cleanup, nil
}
