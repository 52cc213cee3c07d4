package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runPublish(ctx context.Context) error {
	c.io.Println("=== Publish ===")

	// Фиксируем правки рабочей копии перед созданием коммита
	report, err := c.workspace.Sync(ctx)
	if err != nil {
		return fmt.Errorf("failed to capture working copy: %w", err)
	}
	if report.LocalOps > 0 {
		c.io.Printf("Captured %d local operation(s)\n", report.LocalOps)
	}

	head, err := c.workspace.Publish(ctx)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ Published commit %s\n", head)
	c.io.Println("Run 'treesync sync' to share it with other replicas.")

	return nil
}
