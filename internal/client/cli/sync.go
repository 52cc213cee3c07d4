package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")

	// Токены были расшифрованы в ReadMasterPassword
	if c.authData == nil {
		return fmt.Errorf("not authenticated or encryption key not available")
	}

	// Проверяем что токен не истек
	expiresAt := time.Unix(c.authData.ExpiresAt, 0)
	if time.Now().After(expiresAt) {
		// Пробуем обновить через refresh token
		if err := c.authService.EnsureTokenValid(ctx); err != nil {
			return fmt.Errorf("access token has expired and refresh failed: %w", err)
		}
		authData, err := c.authService.GetAuthDecryptData(ctx)
		if err != nil {
			return fmt.Errorf("failed to get auth data: %w", err)
		}
		c.authData = authData
	}
	accessToken := c.authData.AccessToken

	// Сначала фиксируем локальные правки рабочей копии как операции
	report, err := c.workspace.Sync(ctx)
	if err != nil {
		return fmt.Errorf("failed to capture working copy: %w", err)
	}
	if report.LocalOps > 0 {
		c.io.Printf("Captured %d local operation(s)\n", report.LocalOps)
	}

	c.io.Println()
	c.io.Println("Starting synchronization with server...")

	result, err := c.syncService.Sync(ctx, accessToken)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	// Материализуем полученные операции в рабочей копии
	if _, err := c.workspace.Sync(ctx); err != nil {
		return fmt.Errorf("failed to update working copy: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Synchronization completed successfully!")
	c.io.Println()
	c.io.Printf("Pushed to server:   %d operation(s)\n", result.PushedOps)
	c.io.Printf("Pulled from server: %d operation(s)\n", result.PulledOps)
	c.io.Printf("Applied locally:    %d operation(s)\n", result.AppliedOps)
	if result.DeferredOps > 0 {
		c.io.Printf("Deferred (sequence gaps): %d operation(s)\n", result.DeferredOps)
	}

	c.io.Println()
	c.io.Println("Your working copy is now synchronized with the server.")

	return nil
}
