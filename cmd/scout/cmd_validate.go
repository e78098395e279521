package main

import (
	"encoding/json"
	"fmt"
	"os"
	"scout-client/internal/validation"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:       "validate <player|academy> <file.json>",
	Short:     "Check a player or academy form before submitting it",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"player", "academy"},
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read form: %w", err)
		}

		var form any
		switch args[0] {
		case "player":
			form = &validation.PlayerForm{}
		case "academy":
			form = &validation.AcademyForm{}
		default:
			return fmt.Errorf("unknown form %q, want player or academy", args[0])
		}
		if err := json.Unmarshal(raw, form); err != nil {
			return fmt.Errorf("failed to parse form: %w", err)
		}

		errs := validation.Validate(form)
		if errs == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}
		for _, field := range errs.Fields() {
			for _, msg := range errs[field] {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, msg)
			}
		}
		return fmt.Errorf("%d invalid field(s)", len(errs))
	},
}
