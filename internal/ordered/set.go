package ordered

// Set множество с порядком обхода по первой вставке.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

func NewSet[K comparable](items ...K) *Set[K] {
	s := &Set[K]{m: NewMap[K, struct{}]()}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add добавляет элемент и сообщает, был ли он новым.
func (s *Set[K]) Add(item K) bool {
	if s.m.Has(item) {
		return false
	}
	s.m.Set(item, struct{}{})
	return true
}

func (s *Set[K]) Has(item K) bool {
	return s.m.Has(item)
}

func (s *Set[K]) Len() int {
	return s.m.Len()
}

// Items возвращает элементы в порядке вставки.
func (s *Set[K]) Items() []K {
	return s.m.Keys()
}
