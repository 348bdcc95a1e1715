package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entityentitled101/loreforge/pkg/lore"
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Manage locations",
	Long:  `Create, read, update, and delete location records.`,
}

var locationCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new location",
	Long: `Create a location with placeholder defaults, to be edited afterwards:

  loreforge location create
  loreforge location update <id> --name "Neo-Kowloon" --type Megacity`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := loreStore.AddLocation()
		if err != nil {
			return fmt.Errorf("failed to create location: %w", err)
		}

		if !opts.Quiet {
			fmt.Printf("Created location '%s' with ID '%s'\n", created.Name, created.ID)
		}
		return nil
	},
}

var locationGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a location by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, ok := loreStore.GetLocation(args[0])
		if !ok {
			return fmt.Errorf("location '%s' not found", args[0])
		}
		return outputLocation(loc)
	},
}

var locationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return outputLocations(loreStore.Locations())
	},
}

var locationUpdateCmd = &cobra.Command{
	Use:   "update <id> [flags]",
	Short: "Update a location",
	Long: `Update an existing location. Only the provided flags are changed.

Examples:
  loreforge location update loc_001 --population "13,000,000"
  loreforge location update loc_002 --residents "char_001,char_002"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		locType, _ := cmd.Flags().GetString("type")
		worldview, _ := cmd.Flags().GetString("worldview")
		coordinates, _ := cmd.Flags().GetString("coordinates")
		population, _ := cmd.Flags().GetString("population")
		description, _ := cmd.Flags().GetString("description")
		history, _ := cmd.Flags().GetString("history")
		culture, _ := cmd.Flags().GetString("culture")
		imageURL, _ := cmd.Flags().GetString("image")
		residentsStr, _ := cmd.Flags().GetString("residents")

		patch := lore.CandidateLocation{
			Name:        name,
			Type:        locType,
			Worldview:   worldview,
			Coordinates: coordinates,
			Population:  population,
			Description: description,
			History:     history,
			Culture:     culture,
			ImageURL:    imageURL,
			Residents:   splitList(residentsStr),
		}

		updated, err := loreStore.UpdateLocation(args[0], patch)
		if err != nil {
			return err
		}

		if !opts.Quiet {
			fmt.Printf("Updated location '%s'\n", updated.ID)
		}
		return nil
	},
}

var locationDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		if !opts.Yes {
			fmt.Printf("Are you sure you want to delete location '%s'? (y/N): ", id)
			var response string
			fmt.Scanln(&response)
			if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
				fmt.Println("Deletion cancelled")
				return nil
			}
		}

		if err := loreStore.DeleteLocation(id); err != nil {
			return err
		}

		if !opts.Quiet {
			fmt.Printf("Deleted location '%s'\n", id)
		}
		return nil
	},
}

func init() {
	locationUpdateCmd.Flags().String("name", "", "location name")
	locationUpdateCmd.Flags().String("type", "", "location type (e.g. City, Dungeon, Space Station)")
	locationUpdateCmd.Flags().String("worldview", "", "worldview/genre tag")
	locationUpdateCmd.Flags().String("coordinates", "", "coordinates (free text)")
	locationUpdateCmd.Flags().String("population", "", "population (free text)")
	locationUpdateCmd.Flags().String("description", "", "location description")
	locationUpdateCmd.Flags().String("history", "", "location history")
	locationUpdateCmd.Flags().String("culture", "", "location culture")
	locationUpdateCmd.Flags().String("image", "", "image URL")
	locationUpdateCmd.Flags().String("residents", "", "resident character IDs (comma-separated)")

	locationCmd.AddCommand(locationCreateCmd)
	locationCmd.AddCommand(locationGetCmd)
	locationCmd.AddCommand(locationListCmd)
	locationCmd.AddCommand(locationUpdateCmd)
	locationCmd.AddCommand(locationDeleteCmd)
}
