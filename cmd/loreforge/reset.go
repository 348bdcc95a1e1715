package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the seed dataset",
	Long:  `Replace both collections with the fixed seed dataset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !opts.Yes {
			fmt.Print("This replaces all characters and locations with seed data. Continue? (y/N): ")
			var response string
			fmt.Scanln(&response)
			if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
				fmt.Println("Reset cancelled")
				return nil
			}
		}

		if err := loreStore.Reset(); err != nil {
			return err
		}

		if !opts.Quiet {
			fmt.Println("Collections restored to seed data")
		}
		return nil
	},
}
