package cli

import (
	"context"
	"fmt"
)

// runReset отбрасывает незакоммиченные правки рабочей копии,
// восстанавливая ее к последнему согласованному коммиту
func (c *Cli) runReset(ctx context.Context) error {
	status, err := c.workspace.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read workspace status: %w", err)
	}
	if status.Head == "" {
		return fmt.Errorf("nothing to reset to: no commit has been published yet")
	}
	if len(status.Changes) == 0 {
		c.io.Println("Working copy is clean, nothing to reset.")
		return nil
	}

	c.io.Printf("Discarding %d change(s)...\n", len(status.Changes))

	if err := c.workspace.Checkout(ctx, status.Head); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	c.io.Printf("✓ Working copy restored to %s\n", status.Head)

	return nil
}
