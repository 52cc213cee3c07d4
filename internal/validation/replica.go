package validation

import (
	"fmt"
	"regexp"
)

// ReplicaIDPattern определяет допустимый формат ID реплики.
// Клиенты чеканят UUID, но жестко формат не навязывается: достаточно
// идентификатора из букв, цифр, дефисов и подчеркиваний
var ReplicaIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// MaxReplicaIDLen максимальная длина ID реплики
const MaxReplicaIDLen = 64

// ValidateReplicaID проверяет идентификатор реплики. ID реплики
// попадает в ключи rate limit и в таблицу сессий, поэтому
// произвольные байты недопустимы.
func ValidateReplicaID(replicaID string) error {
	if replicaID == "" {
		return fmt.Errorf("replica id cannot be empty")
	}

	if len(replicaID) > MaxReplicaIDLen {
		return fmt.Errorf("replica id must not exceed %d characters", MaxReplicaIDLen)
	}

	if !ReplicaIDPattern.MatchString(replicaID) {
		return fmt.Errorf("replica id can only contain letters, numbers, hyphens, and underscores")
	}

	return nil
}
