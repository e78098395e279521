package main

import (
	"fmt"
	"io"
	"scout-client/internal/domain"
	"scout-client/internal/ui"
	"strings"
	"sync"
	"text/tabwriter"
)

// printToasts writes each toast once, when it first appears.
func printToasts(out io.Writer) func([]ui.Toast) {
	var mu sync.Mutex
	seen := map[string]bool{}
	return func(toasts []ui.Toast) {
		mu.Lock()
		defer mu.Unlock()
		for _, t := range toasts {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			line := fmt.Sprintf("[%s] %s", strings.ToUpper(string(t.Type)), t.Title)
			if t.Message != "" {
				line += ": " + t.Message
			}
			fmt.Fprintln(out, line)
		}
	}
}

func printPlayers(out io.Writer, players []domain.Player) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPOSITION\tCOUNTRY\tBORN\tVERIFIED")
	for _, p := range players {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n", p.ID, p.FullName(), p.Position, p.Country, p.DateOfBirth, p.IsVerified)
	}
	w.Flush()
}

func printPlans(out io.Writer, plans []domain.Plan) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tNAME\tMONTHLY\tFEATURES")
	for _, p := range plans {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Tier, p.Name, formatPrice(p.PriceMonthly), strings.Join(p.Features, ", "))
	}
	w.Flush()
}

// formatPrice renders an amount in cents.
func formatPrice(cents int) string {
	if cents == 0 {
		return "free"
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
