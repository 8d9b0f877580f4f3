package seed

import (
	"fmt"
	"log"
)

// verifyProspects verifies the consistency of the returned prospects
// ranking.
func verifyProspects(config *Config, prospects []prospectEntry) error {
	log.Println("Verifying prospects ranking...")

	if len(prospects) == 0 {
		return fmt.Errorf("no prospects to verify")
	}

	// Ranks must be contiguous starting at 1.
	for i, entry := range prospects {
		if entry.Rank != i+1 {
			return fmt.Errorf("rank gap: entry %d has rank %d", i, entry.Rank)
		}
	}

	// Scores must be non-increasing.
	for i := 1; i < len(prospects); i++ {
		if prospects[i].BestScore > prospects[i-1].BestScore {
			return fmt.Errorf("prospects not properly sorted: entry %d has higher score than entry %d",
				i, i-1)
		}
	}

	displayTopProspects(prospects, config.Verbose)

	log.Println("Prospects verification completed")
	return nil
}

// displayTopProspects shows the top entries of the ranking.
func displayTopProspects(prospects []prospectEntry, verbose bool) {
	topN := 10
	if len(prospects) < topN {
		topN = len(prospects)
	}

	log.Printf("Top %d prospects:", topN)
	for i := 0; i < topN; i++ {
		entry := prospects[i]
		log.Printf("   %d. %s (%s) - Score: %d via %s [%s]",
			entry.Rank, entry.FullName, entry.PlayerID, entry.BestScore, entry.BestVisa, entry.OverallStatus)
	}

	if verbose {
		statuses := map[string]int{}
		for _, entry := range prospects {
			statuses[entry.OverallStatus]++
		}
		log.Printf(`Status distribution:
   Green: %d
   Yellow: %d
   Red: %d
`, statuses["green"], statuses["yellow"], statuses["red"])
	}
}
