package crdt

import "sort"

// SeqSet компактное множество порядковых номеров операций одной
// реплики: битовая карта, разбитая на 64-битные слова и хранимая
// разреженно (только ненулевые слова). В отличие от одиночного
// high-water-mark битовая карта переживает доставку с пропусками
// и не по порядку.
type SeqSet map[uint64]uint64

// Has проверяет наличие номера в множестве
func (s SeqSet) Has(seq uint64) bool {
	if seq == 0 {
		return false
	}
	word, bit := (seq-1)/64, (seq-1)%64
	return s[word]&(1<<bit) != 0
}

// Add добавляет номер в множество.
// Возвращает false, если номер уже присутствовал.
func (s SeqSet) Add(seq uint64) bool {
	if seq == 0 || s.Has(seq) {
		return false
	}
	word, bit := (seq-1)/64, (seq-1)%64
	s[word] |= 1 << bit
	return true
}

// Merge добавляет все номера из other
func (s SeqSet) Merge(other SeqSet) {
	for word, bits := range other {
		s[word] |= bits
	}
}

// Max возвращает наибольший номер в множестве (0 для пустого)
func (s SeqSet) Max() uint64 {
	var max uint64
	for word, bits := range s {
		if bits == 0 {
			continue
		}
		high := 63
		for bits>>uint(high) == 0 {
			high--
		}
		seq := word*64 + uint64(high) + 1
		if seq > max {
			max = seq
		}
	}
	return max
}

// NextContiguous возвращает первый отсутствующий номер, начиная с 1.
// Операции одной реплики применяются строго по порядку, поэтому
// следующая ожидаемая операция - это первый пропуск.
func (s SeqSet) NextContiguous() uint64 {
	var seq uint64 = 1
	for s.Has(seq) {
		seq++
	}
	return seq
}

// Clone создает копию множества
func (s SeqSet) Clone() SeqSet {
	clone := make(SeqSet, len(s))
	for word, bits := range s {
		clone[word] = bits
	}
	return clone
}

// SeqRange непрерывный диапазон порядковых номеров [From, To]
type SeqRange struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// Missing возвращает диапазоны номеров, присутствующие в other,
// но отсутствующие в s. Используется при синхронизации для
// минимальной передачи недостающих операций вместо полного лога.
func (s SeqSet) Missing(other SeqSet) []SeqRange {
	max := other.Max()
	var ranges []SeqRange
	var open bool
	var from uint64
	for seq := uint64(1); seq <= max; seq++ {
		missing := other.Has(seq) && !s.Has(seq)
		switch {
		case missing && !open:
			open = true
			from = seq
		case !missing && open:
			open = false
			ranges = append(ranges, SeqRange{From: from, To: seq - 1})
		}
	}
	if open {
		ranges = append(ranges, SeqRange{From: from, To: max})
	}
	return ranges
}

// StateVector разреженный вектор состояния: для каждой известной
// реплики - множество номеров ее операций, уже примененных локально.
// Инвариант: операция (origin, seq) применяется не более одного раза;
// повторная доставка обнаруживается по битовой карте и игнорируется.
type StateVector map[string]SeqSet

// NewStateVector создает пустой вектор состояния
func NewStateVector() StateVector {
	return make(StateVector)
}

// Has проверяет, была ли применена операция (origin, seq)
func (v StateVector) Has(origin string, seq uint64) bool {
	set, ok := v[origin]
	return ok && set.Has(seq)
}

// Record отмечает операцию (origin, seq) примененной.
// Возвращает false для дубликата.
func (v StateVector) Record(origin string, seq uint64) bool {
	set, ok := v[origin]
	if !ok {
		set = make(SeqSet)
		v[origin] = set
	}
	return set.Add(seq)
}

// Merge добавляет все отметки из other
func (v StateVector) Merge(other StateVector) {
	for origin, set := range other {
		local, ok := v[origin]
		if !ok {
			local = make(SeqSet)
			v[origin] = local
		}
		local.Merge(set)
	}
}

// Clone создает глубокую копию вектора
func (v StateVector) Clone() StateVector {
	clone := make(StateVector, len(v))
	for origin, set := range v {
		clone[origin] = set.Clone()
	}
	return clone
}

// Missing вычисляет, какие операции присутствуют у peer, но
// отсутствуют локально: разность битовых карт по каждой реплике.
// Результат отсортирован по origin для детерминизма.
func (v StateVector) Missing(peer StateVector) []MissingOps {
	origins := make([]string, 0, len(peer))
	for origin := range peer {
		origins = append(origins, origin)
	}
	sort.Strings(origins)

	var missing []MissingOps
	for _, origin := range origins {
		local := v[origin]
		if local == nil {
			local = make(SeqSet)
		}
		ranges := local.Missing(peer[origin])
		if len(ranges) > 0 {
			missing = append(missing, MissingOps{Origin: origin, Ranges: ranges})
		}
	}
	return missing
}

// MissingOps недостающие операции одной реплики
type MissingOps struct {
	Origin string     `json:"origin"`
	Ranges []SeqRange `json:"ranges"`
}
