package api

// NodeID идентификатор узла дерева в проводном формате
type NodeID struct {
	Kind    string `json:"kind"`
	Replica string `json:"replica,omitempty"`
	Seq     uint64 `json:"seq,omitempty"`
	Commit  string `json:"commit,omitempty"`
	Path    string `json:"path,omitempty"`
}

// ElementID идентификатор элемента текста в проводном формате
type ElementID struct {
	Replica string `json:"replica,omitempty"`
	Seq     uint64 `json:"seq,omitempty"`
}

// Operation одна реплицируемая операция.
// Набор заполненных полей зависит от Type.
type Operation struct {
	Origin string `json:"origin"`
	Seq    uint64 `json:"seq"`
	Time   int64  `json:"time"`
	Type   string `json:"type"`
	Node   NodeID `json:"node"`

	IsDir   bool   `json:"is_dir,omitempty"`
	Name    string `json:"name,omitempty"`
	Parent  NodeID `json:"parent,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`

	Element ElementID   `json:"element,omitempty"`
	Left    ElementID   `json:"left,omitempty"`
	Text    string      `json:"text,omitempty"`
	Targets []ElementID `json:"targets,omitempty"`
}

// SeqRange непрерывный диапазон порядковых номеров, границы включительно
type SeqRange struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// StateVector разреженный вектор состояния в проводном формате:
// для каждой реплики диапазоны примененных порядковых номеров
type StateVector map[string][]SeqRange

// PushRequest запрос на публикацию операций
type PushRequest struct {
	Ops []Operation `json:"ops"`
}

// PushResponse результат публикации
type PushResponse struct {
	// Accepted число принятых операций (дубликаты не считаются)
	Accepted int `json:"accepted"`
	// Vector вектор состояния сервера после приема
	Vector StateVector `json:"vector"`
}

// PullRequest запрос недостающих операций: клиент передает свой
// вектор состояния, сервер отвечает операциями, которых в нем нет
type PullRequest struct {
	Vector StateVector `json:"vector"`
}

// PullResponse недостающие операции и полный вектор сервера
type PullResponse struct {
	Ops    []Operation `json:"ops"`
	Vector StateVector `json:"vector"`
}
