package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runCheckout(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: treesync checkout <commit>")
	}
	sha := args[0]

	c.io.Printf("Checking out %s...\n", sha)

	if err := c.workspace.Checkout(ctx, sha); err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	c.io.Println("✓ Working copy updated.")

	return nil
}
