package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	// Проверяем наличие сохраненной сессии
	isAuth, err := c.authService.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !isAuth {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'treesync login' to authenticate.")
		return nil
	}

	// Для username и срока действия расшифровка токенов не нужна
	authData, err := c.authService.GetAuthEncryptData(ctx)
	if err != nil {
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	expiresAt := time.Unix(authData.ExpiresAt, 0)
	remaining := time.Until(expiresAt)

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", authData.Username)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))

	if remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("⚠️  Token has expired. Please login again.")
	}

	// Состояние рабочей копии
	if c.workspace != nil {
		status, err := c.workspace.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to get working copy status: %w", err)
		}
		if err := c.renderWorkspaceStatus(status); err != nil {
			return fmt.Errorf("failed to render status: %w", err)
		}
	}

	// Количество операций, не подтвержденных сервером
	if c.syncService != nil {
		pendingCount, err := c.syncService.GetPendingOpsCount(ctx)
		if err != nil {
			// Не прерываем выполнение, просто предупреждаем
			c.io.Printf("\nWarning: Failed to get pending ops count: %v\n", err)
			return nil
		}
		c.io.Println()
		if pendingCount > 0 {
			c.io.Printf("⚠️  Pending sync: %d operation(s) not yet acknowledged by server\n", pendingCount)
			c.io.Println("Run 'treesync sync' to synchronize with server.")
		} else {
			c.io.Println("✓ All operations synchronized with server")
		}
	}

	return nil
}
