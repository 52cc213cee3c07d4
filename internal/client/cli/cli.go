package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/treesync/internal/client/auth"
	"github.com/iudanet/treesync/internal/client/iocli"
	"github.com/iudanet/treesync/internal/client/storage"
	"github.com/iudanet/treesync/internal/client/sync"
	"github.com/iudanet/treesync/internal/client/workspace"
	"github.com/iudanet/treesync/internal/crypto"
	"github.com/iudanet/treesync/internal/validation"
)

type Passwors struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io            iocli.IO
	authService   auth.Service
	syncService   sync.Service
	workspace     workspace.Service
	authData      *storage.AuthData
	encryptionKey []byte
}

func New(io iocli.IO, authService auth.Service, syncService sync.Service, ws workspace.Service) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		syncService: syncService,
		workspace:   ws,
	}
}

// ReadMasterPassword reads master password from various sources with priority:
// 1. Environment variable TREESYNC_MASTER_PASSWORD
// 2. File specified in masterPasswordFile parameter
// 3. Command-line parameter masterPassword
// 4. Interactive prompt (fallback)
func (c *Cli) ReadMasterPassword(ctx context.Context, passwords Passwors) error {
	// Получаем зашифрованные auth данные для получения username и public salt
	encryptedAuthData, err := c.authService.GetAuthEncryptData(ctx)
	if err != nil {
		if err == storage.ErrAuthNotFound {
			return fmt.Errorf("not authenticated. Please run 'treesync login' first")
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	// Получаем master password из различных источников
	password, err := c.getMasterPassword(passwords)
	if err != nil {
		return fmt.Errorf("failed to get master password: %w", err)
	}

	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}
	// Деривируем ключи из master password + username + public salt
	keys, err := crypto.DeriveKeysFromBase64Salt(password, encryptedAuthData.Username, encryptedAuthData.PublicSalt)
	if err != nil {
		return fmt.Errorf("failed to derive keys: %w", err)
	}

	// Сохраняем encryption key в памяти для текущей сессии
	c.encryptionKey = keys.EncryptionKey

	// Устанавливаем ключ шифрования в authService
	c.authService.SetEncryptionKey(c.encryptionKey)

	// Получаем расшифрованные auth данные
	authData, err := c.authService.GetAuthDecryptData(ctx)
	if err != nil {
		return fmt.Errorf("failed to decrypt auth data: %w", err)
	}
	c.authData = authData

	return nil
}

// getMasterPassword retrieves master password from various sources with priority:
// 1. Environment variable TREESYNC_MASTER_PASSWORD
// 2. File specified in masterPasswordFile parameter
// 3. Command-line parameter masterPassword
// 4. Interactive prompt (fallback)
func (c *Cli) getMasterPassword(passwords Passwors) (string, error) {
	// Priority 1: Environment variable
	if envPassword := os.Getenv("TREESYNC_MASTER_PASSWORD"); envPassword != "" {
		return envPassword, nil
	}

	// Priority 2: File
	if passwords.FromFile != "" {
		content, err := os.ReadFile(passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	// Priority 3: CLI parameter
	if passwords.FromArgs != "" {
		return passwords.FromArgs, nil
	}

	// Priority 4: Interactive prompt (fallback)
	password, err := c.io.ReadPassword("Master password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

func PrintUsage() {
	fmt.Println("Treesync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  treesync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version                    Show version information")
	fmt.Println("  --server URL                 Server URL (default: http://localhost:8080)")
	fmt.Println("  --workspace PATH             Path to working copy root (default: current directory)")
	fmt.Println("  --master-password PASSWORD   Master password (not recommended, use env var or file)")
	fmt.Println("  --master-password-file PATH  Path to file containing master password")
	fmt.Println()
	fmt.Println("Master Password Priority (highest to lowest):")
	fmt.Println("  1. TREESYNC_MASTER_PASSWORD environment variable")
	fmt.Println("  2. --master-password-file (file path)")
	fmt.Println("  3. --master-password (command line)")
	fmt.Println("  4. Interactive prompt (fallback)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                Register new user")
	fmt.Println("  login                   Login to server")
	fmt.Println("  logout                  Logout from server")
	fmt.Println("  status                  Show authentication and working copy status")
	fmt.Println("  sync                    Exchange operations with server and update working copy")
	fmt.Println("  publish                 Commit the current state of the working copy")
	fmt.Println("  checkout <commit>       Switch working copy to a commit")
	fmt.Println("  reset                   Discard working copy changes since the last commit")
	fmt.Println("  search <query>          Fuzzy search file paths in the working copy")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Interactive password prompt")
	fmt.Println("  treesync register")
	fmt.Println("  treesync login")
	fmt.Println("  treesync status")
	fmt.Println()
	fmt.Println("  # Using environment variable (recommended)")
	fmt.Println("  export TREESYNC_MASTER_PASSWORD='mySecretPassword123'")
	fmt.Println("  treesync sync")
	fmt.Println()
	fmt.Println("  # Using password file (for automation)")
	fmt.Println("  echo 'mySecretPassword123' > ~/.treesync-password")
	fmt.Println("  chmod 600 ~/.treesync-password")
	fmt.Println("  treesync --master-password-file ~/.treesync-password sync")
	fmt.Println()
	fmt.Println("  # Other examples")
	fmt.Println("  treesync publish")
	fmt.Println("  treesync checkout 3f9c2b1a")
	fmt.Println("  treesync search main.go")
	fmt.Println("  treesync --server https://example.com login")
}
