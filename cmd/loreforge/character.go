package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entityentitled101/loreforge/pkg/lore"
)

var characterCmd = &cobra.Command{
	Use:   "character",
	Short: "Manage characters",
	Long:  `Create, read, update, and delete character records.`,
}

var characterCreateCmd = &cobra.Command{
	Use:   "create <name> [flags]",
	Short: "Create a new character",
	Long: `Create a new character with the specified name.

Examples:
  loreforge character create "Old Mu" --role Antagonist --race Human
  loreforge character create "Iris" --role Supporting --tags "Hacker,Outlaw"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		worldview, _ := cmd.Flags().GetString("worldview")
		race, _ := cmd.Flags().GetString("race")
		class, _ := cmd.Flags().GetString("class")
		faction, _ := cmd.Flags().GetString("faction")
		description, _ := cmd.Flags().GetString("description")
		appearance, _ := cmd.Flags().GetString("appearance")
		imageURL, _ := cmd.Flags().GetString("image")
		tagsStr, _ := cmd.Flags().GetString("tags")

		ch := lore.Character{
			Name:           args[0],
			Role:           lore.CharacterRole(role),
			Worldview:      lore.Worldview(worldview),
			Race:           race,
			CharacterClass: class,
			Faction:        faction,
			Description:    description,
			Appearance:     appearance,
			ImageURL:       imageURL,
			Tags:           splitList(tagsStr),
		}

		created, err := loreStore.AddCharacter(ch)
		if err != nil {
			return fmt.Errorf("failed to create character: %w", err)
		}

		if !opts.Quiet {
			fmt.Printf("Created character '%s' with ID '%s'\n", created.Name, created.ID)
		}
		return nil
	},
}

var characterGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a character by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, ok := loreStore.GetCharacter(args[0])
		if !ok {
			return fmt.Errorf("character '%s' not found", args[0])
		}
		return outputCharacter(ch)
	},
}

var characterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all characters",
	Long:  `List all characters, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return outputCharacters(loreStore.Characters())
	},
}

var characterUpdateCmd = &cobra.Command{
	Use:   "update <id> [flags]",
	Short: "Update a character",
	Long: `Update an existing character. Only the provided flags are changed.

Examples:
  loreforge character update char_001 --description "Retains memories across resets"
  loreforge character update char_002 --role Supporting --tags "Synthetic,Reformed"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		worldview, _ := cmd.Flags().GetString("worldview")
		name, _ := cmd.Flags().GetString("name")
		race, _ := cmd.Flags().GetString("race")
		class, _ := cmd.Flags().GetString("class")
		faction, _ := cmd.Flags().GetString("faction")
		description, _ := cmd.Flags().GetString("description")
		appearance, _ := cmd.Flags().GetString("appearance")
		imageURL, _ := cmd.Flags().GetString("image")
		tagsStr, _ := cmd.Flags().GetString("tags")

		patch := lore.CandidateCharacter{
			Name:           name,
			Role:           role,
			Worldview:      worldview,
			Race:           race,
			CharacterClass: class,
			Faction:        faction,
			Description:    description,
			Appearance:     appearance,
			ImageURL:       imageURL,
			Tags:           splitList(tagsStr),
		}

		updated, err := loreStore.UpdateCharacter(args[0], patch)
		if err != nil {
			return err
		}

		if !opts.Quiet {
			fmt.Printf("Updated character '%s'\n", updated.ID)
		}
		return nil
	},
}

var characterDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a character",
	Long: `Delete a character by its ID.

The delete does not cascade: references to the character from other
characters' relationships or from locations' residents stay in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		if !opts.Yes {
			fmt.Printf("Are you sure you want to delete character '%s'? (y/N): ", id)
			var response string
			fmt.Scanln(&response)
			if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
				fmt.Println("Deletion cancelled")
				return nil
			}
		}

		if err := loreStore.DeleteCharacter(id); err != nil {
			return err
		}

		if !opts.Quiet {
			fmt.Printf("Deleted character '%s'\n", id)
		}
		return nil
	},
}

// splitList parses a comma-separated flag value. An empty value stays nil so
// partial updates can tell "unset" from "set to empty".
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func addCharacterFlags(cmd *cobra.Command) {
	cmd.Flags().String("role", "", "character role (Protagonist, Antagonist, Supporting, Background)")
	cmd.Flags().String("worldview", "", "worldview/genre tag")
	cmd.Flags().String("race", "", "race (e.g. Elf, Human, Android)")
	cmd.Flags().String("class", "", "character class")
	cmd.Flags().String("faction", "", "faction or affiliation")
	cmd.Flags().String("description", "", "character description")
	cmd.Flags().String("appearance", "", "physical appearance")
	cmd.Flags().String("image", "", "image URL")
	cmd.Flags().String("tags", "", "tags (comma-separated)")
}

func init() {
	addCharacterFlags(characterCreateCmd)
	addCharacterFlags(characterUpdateCmd)
	characterUpdateCmd.Flags().String("name", "", "display name")

	characterCmd.AddCommand(characterCreateCmd)
	characterCmd.AddCommand(characterGetCmd)
	characterCmd.AddCommand(characterListCmd)
	characterCmd.AddCommand(characterUpdateCmd)
	characterCmd.AddCommand(characterDeleteCmd)
}
