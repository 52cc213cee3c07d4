package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/treesync/internal/client/api"
	"github.com/iudanet/treesync/internal/client/storage"
	"github.com/iudanet/treesync/internal/crypto"
	"github.com/iudanet/treesync/internal/validation"
	pkgapi "github.com/iudanet/treesync/pkg/api"
)

// ErrEncryptionKeyNotSet возвращается методами, требующими ключ шифрования
var ErrEncryptionKeyNotSet = errors.New("encryption key is not set")

// refreshThreshold запас до истечения access token, при котором
// EnsureTokenValid уже инициирует обновление
const refreshThreshold = time.Minute

// service реализует Service: аутентификация плюс слой шифрования
// токенов перед хранилищем. Токены лежат в BoltDB только в
// зашифрованном виде, ключ деривируется из master password.
type service struct {
	apiClient     api.ClientAPI
	storage       storage.AuthStorage
	encryptionKey []byte
}

// NewService создает новый сервис авторизации
func NewService(apiClient api.ClientAPI, authStorage storage.AuthStorage) Service {
	return &service{
		apiClient: apiClient,
		storage:   authStorage,
	}
}

// RegisterResult содержит результат регистрации
type RegisterResult struct {
	UserID        string // UUID пользователя
	Username      string // username
	ReplicaID     string // уникальный ID этой реплики (устройства)
	PublicSalt    string // public salt (base64)
	EncryptionKey []byte // ключ шифрования (НЕ сохраняется!)
}

// Register регистрирует нового пользователя
// Возвращает результат с ключом шифрования для использования
func (s *service) Register(ctx context.Context, username, masterPassword string) (*RegisterResult, error) {
	// Валидация входных данных
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(masterPassword); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	// 1. Генерируем публичную соль
	publicSaltBase64, err := crypto.GenerateSaltBase64()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	// 2. Деривируем ключи из master password
	keys, err := crypto.DeriveKeysFromBase64Salt(masterPassword, username, publicSaltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to derive keys: %w", err)
	}

	// 3. Хешируем auth_key для отправки на сервер
	authKeyHash, err := crypto.HashAuthKey(keys.AuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to hash auth key: %w", err)
	}

	// 4. Отправляем запрос на регистрацию
	req := pkgapi.RegisterRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
		PublicSalt:  publicSaltBase64,
	}

	resp, err := s.apiClient.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	// 5. Возвращаем результат
	return &RegisterResult{
		UserID:        resp.UserID,
		Username:      username,
		ReplicaID:     uuid.New().String(),
		PublicSalt:    publicSaltBase64,
		EncryptionKey: keys.EncryptionKey,
	}, nil
}

// LoginResult содержит результат авторизации
type LoginResult struct {
	UserID        string
	AccessToken   string
	RefreshToken  string
	Username      string
	ReplicaID     string // уникальный ID этой реплики (устройства)
	PublicSalt    string
	EncryptionKey []byte
	ExpiresIn     int64
}

// Login выполняет аутентификацию пользователя
// Возвращает результат с токенами и ключом шифрования
func (s *service) Login(ctx context.Context, username, masterPassword string) (*LoginResult, error) {
	// Валидация username
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(masterPassword); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	// 1. Получаем public_salt с сервера
	saltResp, err := s.apiClient.GetSalt(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get salt: %w", err)
	}

	// 2. Деривируем ключи из master password
	keys, err := crypto.DeriveKeysFromBase64Salt(masterPassword, username, saltResp.PublicSalt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive keys: %w", err)
	}

	// 3. Хешируем auth_key
	authKeyHash, err := crypto.HashAuthKey(keys.AuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to hash auth key: %w", err)
	}

	// 4. Получаем или генерируем ID реплики: сервер привязывает
	// выданную сессию к реплике
	replicaID, err := s.getOrCreateReplicaID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create replica ID: %w", err)
	}

	// 5. Отправляем запрос на логин
	req := pkgapi.LoginRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
		ReplicaID:   replicaID,
	}

	resp, err := s.apiClient.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	// 6. Возвращаем результат
	return &LoginResult{
		UserID:        resp.UserID,
		AccessToken:   resp.AccessToken,
		RefreshToken:  resp.RefreshToken,
		ExpiresIn:     resp.ExpiresIn,
		Username:      username,
		ReplicaID:     replicaID,
		PublicSalt:    saltResp.PublicSalt,
		EncryptionKey: keys.EncryptionKey,
	}, nil
}

// RefreshToken обновляет access token используя refresh token
func (s *service) RefreshToken(ctx context.Context) error {
	if s.encryptionKey == nil {
		return ErrEncryptionKeyNotSet
	}

	authData, err := s.GetAuthDecryptData(ctx)
	if err != nil {
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	resp, err := s.apiClient.Refresh(ctx, authData.RefreshToken)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	authData.AccessToken = resp.AccessToken
	authData.RefreshToken = resp.RefreshToken
	authData.ExpiresAt = time.Now().Unix() + resp.ExpiresIn

	if err := s.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save refreshed tokens: %w", err)
	}

	return nil
}

// EnsureTokenValid проверяет срок действия access token и обновляет
// его, если он истек или истекает в ближайшую минуту
func (s *service) EnsureTokenValid(ctx context.Context) error {
	authData, err := s.storage.GetAuth(ctx)
	if err != nil {
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	expiresAt := time.Unix(authData.ExpiresAt, 0)
	if time.Until(expiresAt) > refreshThreshold {
		return nil
	}

	return s.RefreshToken(ctx)
}

// SetEncryptionKey устанавливает ключ шифрования для работы с хранилищем
func (s *service) SetEncryptionKey(key []byte) {
	s.encryptionKey = key
}

// SaveAuth шифрует токены и сохраняет auth данные в хранилище
func (s *service) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	if auth == nil {
		return fmt.Errorf("auth data is nil")
	}
	if s.encryptionKey == nil {
		return ErrEncryptionKeyNotSet
	}

	// Шифруем токены
	encryptedAccessToken, err := crypto.Encrypt([]byte(auth.AccessToken), s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}

	encryptedRefreshToken, err := crypto.Encrypt([]byte(auth.RefreshToken), s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}

	// Кодируем шифрованные токены в base64
	authCopy := *auth // копируем структуру, чтобы не менять входящую
	authCopy.AccessToken = base64.StdEncoding.EncodeToString(encryptedAccessToken)
	authCopy.RefreshToken = base64.StdEncoding.EncodeToString(encryptedRefreshToken)

	// Сохраняем в storage (уже с зашифрованными токенами)
	return s.storage.SaveAuth(ctx, &authCopy)
}

// GetAuthDecryptData загружает данные из storage и расшифровывает токены
func (s *service) GetAuthDecryptData(ctx context.Context) (*storage.AuthData, error) {
	if s.encryptionKey == nil {
		return nil, ErrEncryptionKeyNotSet
	}

	storedAuth, err := s.storage.GetAuth(ctx)
	if err != nil {
		return nil, err
	}

	// Декодируем base64 и расшифровываем токены
	encryptedAccessToken, err := base64.StdEncoding.DecodeString(storedAuth.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decode access token: %w", err)
	}

	accessToken, err := crypto.Decrypt(encryptedAccessToken, s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt access token: %w", err)
	}

	encryptedRefreshToken, err := base64.StdEncoding.DecodeString(storedAuth.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decode refresh token: %w", err)
	}

	refreshToken, err := crypto.Decrypt(encryptedRefreshToken, s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	authCopy := *storedAuth
	authCopy.AccessToken = string(accessToken)
	authCopy.RefreshToken = string(refreshToken)

	return &authCopy, nil
}

// GetAuthEncryptData возвращает auth данные как есть, без расшифровки.
// Годится для username, public salt, replica ID и срока действия.
func (s *service) GetAuthEncryptData(ctx context.Context) (*storage.AuthData, error) {
	return s.storage.GetAuth(ctx)
}

// DeleteAuth removes stored authentication data
func (s *service) DeleteAuth(ctx context.Context) error {
	return s.storage.DeleteAuth(ctx)
}

// IsAuthenticated checks if valid authentication exists
func (s *service) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.storage.IsAuthenticated(ctx)
}

// Logout выполняет выход из системы
// Удаляет локальные данные авторизации и опционально уведомляет сервер
func (s *service) Logout(ctx context.Context) error {
	// 1. Пытаемся уведомить сервер (best effort, нужен расшифрованный токен)
	if s.encryptionKey != nil {
		authData, err := s.GetAuthDecryptData(ctx)
		if err != nil {
			slog.Debug("no decryptable auth data during logout", "error", err)
		} else if logoutErr := s.apiClient.Logout(ctx, authData.AccessToken); logoutErr != nil {
			// Не прерываем процесс, если сервер недоступен
			slog.Warn("failed to logout on server", "error", logoutErr)
		}
	}

	// 2. Удаляем локальные данные
	if err := s.storage.DeleteAuth(ctx); err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete auth data: %w", err)
	}

	return nil
}

// getOrCreateReplicaID возвращает сохраненный ID реплики или создает
// новый. ID остается стабильным между логинами на одном устройстве,
// это основа идентичности операций CRDT.
func (s *service) getOrCreateReplicaID(ctx context.Context) (string, error) {
	authData, err := s.storage.GetAuth(ctx)
	if err != nil {
		// Первый login на этом устройстве
		if errors.Is(err, storage.ErrAuthNotFound) {
			return uuid.New().String(), nil
		}
		return "", fmt.Errorf("failed to get auth data: %w", err)
	}

	if authData.ReplicaID != "" {
		return authData.ReplicaID, nil
	}

	return uuid.New().String(), nil
}
