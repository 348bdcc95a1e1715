package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/entityentitled101/loreforge/pkg/lore"
)

// outputCharacter displays a single character
func outputCharacter(ch lore.Character) error {
	if opts.Format == "json" {
		return outputJSON(ch)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID:\t%s\n", ch.ID)
	fmt.Fprintf(w, "Name:\t%s\n", ch.Name)
	fmt.Fprintf(w, "Role:\t%s\n", ch.Role)
	fmt.Fprintf(w, "Worldview:\t%s\n", ch.Worldview)

	if ch.Race != "" {
		fmt.Fprintf(w, "Race:\t%s\n", ch.Race)
	}
	if ch.CharacterClass != "" {
		fmt.Fprintf(w, "Class:\t%s\n", ch.CharacterClass)
	}
	if ch.Faction != "" {
		fmt.Fprintf(w, "Faction:\t%s\n", ch.Faction)
	}
	if ch.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", ch.Description)
	}
	if ch.Appearance != "" {
		fmt.Fprintf(w, "Appearance:\t%s\n", ch.Appearance)
	}
	if len(ch.Tags) > 0 {
		fmt.Fprintf(w, "Tags:\t%s\n", formatStringSlice(ch.Tags))
	}
	for _, rel := range ch.Relationships {
		fmt.Fprintf(w, "Relationship:\t--[%s %d]--> %s\n", rel.Type, rel.Intensity, rel.TargetID)
	}

	fmt.Fprintf(w, "Updated:\t%s\n", formatMillis(ch.LastUpdated))
	return nil
}

// outputCharacters displays multiple characters
func outputCharacters(characters []lore.Character) error {
	if opts.Format == "json" {
		return outputJSON(characters)
	}

	if len(characters) == 0 {
		fmt.Println("No characters found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tROLE\tRACE\tFACTION\tUPDATED")
	for _, ch := range characters {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ch.ID,
			ch.Name,
			ch.Role,
			ch.Race,
			ch.Faction,
			formatMillis(ch.LastUpdated))
	}
	return nil
}

// outputLocation displays a single location
func outputLocation(loc lore.Location) error {
	if opts.Format == "json" {
		return outputJSON(loc)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID:\t%s\n", loc.ID)
	fmt.Fprintf(w, "Name:\t%s\n", loc.Name)
	fmt.Fprintf(w, "Type:\t%s\n", loc.Type)
	fmt.Fprintf(w, "Worldview:\t%s\n", loc.Worldview)
	fmt.Fprintf(w, "Coordinates:\t%s\n", loc.Coordinates)
	fmt.Fprintf(w, "Population:\t%s\n", loc.Population)

	if loc.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", loc.Description)
	}
	if loc.History != "" {
		fmt.Fprintf(w, "History:\t%s\n", loc.History)
	}
	if loc.Culture != "" {
		fmt.Fprintf(w, "Culture:\t%s\n", loc.Culture)
	}
	if len(loc.Residents) > 0 {
		fmt.Fprintf(w, "Residents:\t%s\n", formatStringSlice(loc.Residents))
	}
	return nil
}

// outputLocations displays multiple locations
func outputLocations(locations []lore.Location) error {
	if opts.Format == "json" {
		return outputJSON(locations)
	}

	if len(locations) == 0 {
		fmt.Println("No locations found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tTYPE\tPOPULATION\tRESIDENTS")
	for _, loc := range locations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			loc.ID,
			loc.Name,
			loc.Type,
			loc.Population,
			len(loc.Residents))
	}
	return nil
}

func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func formatMillis(millis int64) string {
	if millis == 0 {
		return ""
	}
	return time.UnixMilli(millis).Format("2006-01-02 15:04")
}

// formatStringSlice formats a slice of strings for display
func formatStringSlice(slice []string) string {
	if len(slice) == 0 {
		return ""
	}
	result := slice[0]
	for i := 1; i < len(slice); i++ {
		result += ", " + slice[i]
	}
	return result
}
