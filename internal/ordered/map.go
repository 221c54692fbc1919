// Package ordered содержит ассоциативные контейнеры с порядком обхода по вставке.
//
// Счетчики отчета опираются на этот порядок: при равных значениях сортировка
// оставляет ревьюверов в порядке их первого появления.
package ordered

// Map отображение, которое обходится в порядке первой вставки ключа.
// Повторная запись существующего ключа не меняет его позицию.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewMap создает пустое отображение.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Get возвращает значение и признак наличия ключа.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// GetOrDefault возвращает значение ключа или def, если ключа нет.
func (m *Map[K, V]) GetOrDefault(key K, def V) V {
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

func (m *Map[K, V]) Set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys возвращает копию ключей в порядке вставки.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each обходит пары в порядке вставки.
func (m *Map[K, V]) Each(fn func(key K, value V)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}
