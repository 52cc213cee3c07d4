package models

import "errors"

// Таксономия ошибок движка синхронизации.
// Все ошибки уровня отдельной операции локализуются и логируются;
// ни одна некорректная или дублированная операция не должна
// повредить общее хранилище. Только ErrHistoryDivergence является
// блокирующей и требует явного вмешательства пользователя.
var (
	// ErrIdentityAmbiguous исторический id не может быть однозначно
	// выведен; вызывающий код деградирует до локального id.
	ErrIdentityAmbiguous = errors.New("historical identity cannot be derived unambiguously")

	// ErrNetworkUnreachable удаленный узел недоступен; переводит
	// реконсилер в состояние Disconnected, операция повторяема.
	ErrNetworkUnreachable = errors.New("network unreachable")

	// ErrHistoryDivergence внешняя история и CRDT состояние не могут
	// быть согласованы автоматически (например, forced push переписал
	// коммиты, уже отображенные в CRDT). Данные не отбрасываются.
	ErrHistoryDivergence = errors.New("external history diverged from replicated state")

	// ErrCommitNotFound коммит отсутствует в локальном хранилище истории
	ErrCommitNotFound = errors.New("commit not found")

	// ErrNodeNotFound узел отсутствует в реплицированном дереве
	ErrNodeNotFound = errors.New("node not found")
)
