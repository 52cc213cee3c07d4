package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID          string     `json:"id"`            // UUID пользователя
	Username    string     `json:"username"`      // уникальный username
	AuthKeyHash string     `json:"auth_key_hash"` // SHA256 хеш auth_key (hex-encoded)
	PublicSalt  string     `json:"public_salt"`   // base64 encoded salt (32 bytes)
	LastLogin   *time.Time `json:"last_login"`    // время последнего входа (nil до первого входа)
	CreatedAt   time.Time  `json:"created_at"`    // время создания
}

// RefreshToken представляет refresh token, выданный одной реплике
// пользователя. Реплика (устройство) опознается по ReplicaID, что
// позволяет завершать сессию отдельной реплики, не трогая остальные.
type RefreshToken struct {
	Token     string    `json:"token"`      // значение токена
	UserID    string    `json:"user_id"`    // ID пользователя
	ReplicaID string    `json:"replica_id"` // ID реплики, которой выдан токен (пусто для старых клиентов)
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}
