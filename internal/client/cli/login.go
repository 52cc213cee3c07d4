package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/treesync/internal/client/storage"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	// Запрашиваем username
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	// Запрашиваем master password
	masterPassword, err := c.io.ReadPassword("Master password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	result, err := c.authService.Login(ctx, username, masterPassword)
	if err != nil {
		return err
	}

	// Теперь есть encryption_key, токены сохраняются через слой шифрования
	c.authService.SetEncryptionKey(result.EncryptionKey)
	c.encryptionKey = result.EncryptionKey

	authData := &storage.AuthData{
		Username:     result.Username,
		UserID:       result.UserID,
		ReplicaID:    result.ReplicaID,
		AccessToken:  result.AccessToken,  // plaintext
		RefreshToken: result.RefreshToken, // plaintext
		PublicSalt:   result.PublicSalt,
		ExpiresAt:    time.Now().Unix() + result.ExpiresIn,
	}

	if err := c.authService.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}
	c.authData = authData

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", result.Username)
	c.io.Printf("Replica ID: %s\n", result.ReplicaID)
	c.io.Printf("Access token expires in: %d seconds\n", result.ExpiresIn)
	c.io.Println()
	c.io.Println("Your session has been saved securely.")

	return nil
}
