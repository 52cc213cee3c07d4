package crdt

import (
	"sort"

	"github.com/iudanet/treesync/internal/models"
	"github.com/iudanet/treesync/pkg/api"
)

// Конвертация между внутренними типами и проводным форматом pkg/api.
// Внутренние структуры не сериализуются напрямую, чтобы изменение
// внутреннего представления не ломало протокол.

// OpToWire конвертирует операцию в проводной формат
func OpToWire(op *models.Operation) api.Operation {
	wire := api.Operation{
		Origin:  op.Origin,
		Seq:     op.Seq,
		Time:    op.Time,
		Type:    string(op.Type),
		Node:    nodeIDToWire(op.Node),
		IsDir:   op.IsDir,
		Name:    op.Name,
		Parent:  nodeIDToWire(op.Parent),
		Deleted: op.Deleted,
		Element: api.ElementID(op.Element),
		Left:    api.ElementID(op.Left),
		Text:    op.Text,
	}
	if len(op.Targets) > 0 {
		wire.Targets = make([]api.ElementID, len(op.Targets))
		for i, target := range op.Targets {
			wire.Targets[i] = api.ElementID(target)
		}
	}
	return wire
}

// OpFromWire конвертирует операцию из проводного формата
func OpFromWire(wire api.Operation) *models.Operation {
	op := &models.Operation{
		Origin:  wire.Origin,
		Seq:     wire.Seq,
		Time:    wire.Time,
		Type:    models.OpType(wire.Type),
		Node:    nodeIDFromWire(wire.Node),
		IsDir:   wire.IsDir,
		Name:    wire.Name,
		Parent:  nodeIDFromWire(wire.Parent),
		Deleted: wire.Deleted,
		Element: models.ElementID(wire.Element),
		Left:    models.ElementID(wire.Left),
		Text:    wire.Text,
	}
	if len(wire.Targets) > 0 {
		op.Targets = make([]models.ElementID, len(wire.Targets))
		for i, target := range wire.Targets {
			op.Targets[i] = models.ElementID(target)
		}
	}
	return op
}

// OpsToWire конвертирует срез операций в проводной формат
func OpsToWire(ops []*models.Operation) []api.Operation {
	wire := make([]api.Operation, len(ops))
	for i, op := range ops {
		wire[i] = OpToWire(op)
	}
	return wire
}

// OpsFromWire конвертирует срез операций из проводного формата
func OpsFromWire(wire []api.Operation) []*models.Operation {
	ops := make([]*models.Operation, len(wire))
	for i := range wire {
		ops[i] = OpFromWire(wire[i])
	}
	return ops
}

func nodeIDToWire(id models.NodeID) api.NodeID {
	return api.NodeID{
		Kind:    string(id.Kind),
		Replica: id.Replica,
		Seq:     id.Seq,
		Commit:  id.Commit,
		Path:    id.Path,
	}
}

func nodeIDFromWire(id api.NodeID) models.NodeID {
	return models.NodeID{
		Kind:    models.NodeIDKind(id.Kind),
		Replica: id.Replica,
		Seq:     id.Seq,
		Commit:  id.Commit,
		Path:    id.Path,
	}
}

// VectorToWire конвертирует вектор состояния в проводной формат:
// битовые карты сворачиваются в диапазоны примененных номеров
func VectorToWire(v StateVector) api.StateVector {
	wire := make(api.StateVector, len(v))
	for origin, set := range v {
		ranges := appliedRanges(set)
		if len(ranges) > 0 {
			wire[origin] = ranges
		}
	}
	return wire
}

// maxWireRangeSpan ограничивает ширину одного проводного диапазона.
// Диапазон шире не бывает при честном обмене, а враждебный ответ с
// To около 2^64 не должен подвешивать клиента.
const maxWireRangeSpan = 1 << 20

// VectorFromWire восстанавливает вектор состояния из диапазонов.
// Некорректные диапазоны (From == 0, To < From) пропускаются,
// слишком широкие усекаются до maxWireRangeSpan номеров.
func VectorFromWire(wire api.StateVector) StateVector {
	v := NewStateVector()
	for origin, ranges := range wire {
		for _, r := range ranges {
			if r.From == 0 || r.To < r.From {
				continue
			}
			to := r.To
			if r.To-r.From >= maxWireRangeSpan {
				to = r.From + maxWireRangeSpan - 1
			}
			for seq := r.From; ; seq++ {
				v.Record(origin, seq)
				if seq == to {
					break
				}
			}
		}
	}
	return v
}

// appliedRanges перечисляет примененные номера битовой карты
// непрерывными диапазонами
func appliedRanges(set SeqSet) []api.SeqRange {
	words := make([]uint64, 0, len(set))
	for word := range set {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool { return words[i] < words[j] })

	var ranges []api.SeqRange
	for _, word := range words {
		bits := set[word]
		for bit := uint64(0); bit < 64; bit++ {
			if bits&(1<<bit) == 0 {
				continue
			}
			seq := word*64 + bit + 1
			if n := len(ranges); n > 0 && ranges[n-1].To == seq-1 {
				ranges[n-1].To = seq
				continue
			}
			ranges = append(ranges, api.SeqRange{From: seq, To: seq})
		}
	}
	return ranges
}
