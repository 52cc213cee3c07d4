package cli

import (
	"context"
	"fmt"
	"strings"
)

// searchMaxResults лимит выдачи для команды search
const searchMaxResults = 10

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: treesync search <query>")
	}
	query := strings.Join(args, " ")

	results, err := c.workspace.Search(ctx, query, searchMaxResults)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		c.io.Println("No matches.")
		return nil
	}

	for _, r := range results {
		c.io.Printf("%4d  %s\n", r.Score, r.Path)
	}

	return nil
}
