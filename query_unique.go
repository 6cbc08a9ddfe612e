package url2

import (
	"iter"
	"maps"
	"slices"
)

// QueryUnique — представление query-строки URL как карты с уникальными ключами.
// Живёт до Close, который перезаписывает query-строку содержимым карты.
type QueryUnique struct {
	owner  *URL
	closed bool
}

// cache возвращает карту владельца, паникует после Close
func (q *QueryUnique) cache() map[string]string {
	if q.closed {
		panic("url2: QueryUnique уже закрыт")
	}
	return q.owner.cache
}

// SetPair добавляет или перезаписывает ключ, вызовы можно объединять в цепочку
func (q *QueryUnique) SetPair(key, value string) *QueryUnique {
	q.cache()[key] = value
	return q
}

// Insert записывает значение и возвращает предыдущее, если оно было
func (q *QueryUnique) Insert(key, value string) (string, bool) {
	m := q.cache()
	prev, ok := m[key]
	m[key] = value
	return prev, ok
}

func (q *QueryUnique) Get(key string) (string, bool) {
	v, ok := q.cache()[key]
	return v, ok
}

func (q *QueryUnique) ContainsKey(key string) bool {
	_, ok := q.cache()[key]
	return ok
}

// Remove удаляет ключ и возвращает удалённое значение
func (q *QueryUnique) Remove(key string) (string, bool) {
	m := q.cache()
	v, ok := m[key]
	delete(m, key)
	return v, ok
}

func (q *QueryUnique) Len() int {
	return len(q.cache())
}

// Clear удаляет все ключи
func (q *QueryUnique) Clear() {
	clear(q.cache())
}

// Keys возвращает ключи по возрастанию
func (q *QueryUnique) Keys() []string {
	return slices.Sorted(maps.Keys(q.cache()))
}

// All перебирает пары в порядке обхода карты
func (q *QueryUnique) All() iter.Seq2[string, string] {
	return maps.All(q.cache())
}

// Map отдаёт саму карту. Изменения в ней попадут в URL при Close.
func (q *QueryUnique) Map() map[string]string {
	return q.cache()
}

// Close перезаписывает query-строку URL из карты и освобождает URL.
// Повторный вызов ничего не делает.
func (q *QueryUnique) Close() {
	if q.closed {
		return
	}
	q.closed = true
	q.owner.syncQueryUniqueCache()
	q.owner.view = nil
}
