// Package url2 — эргономичная обёртка над net/url.
//
// Помимо прямого доступа к *url.URL пакет даёт представление query-строки
// как карты с уникальными ключами:
//
//	u := url2.Parsef("https://%s/", "example.com")
//	q := u.QueryUnique()
//	q.SetPair("hello", "world").SetPair("foo", "bar")
//	q.Close()
//
//	u.QueryUniqueGet("foo") // "bar", true
//
// Кэш карты строится при первом обращении и больше не перечитывается из
// query-строки. Если после этого менять RawQuery через Std(), кэш
// устареет, и следующий Close перезапишет query-строку его содержимым.
//
// Тип URL не потокобезопасен.
package url2

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// defaultURL — заглушка без хоста и пути, удобная для сборки query-строки
const defaultURL = "none:"

// URL обёртка над *url.URL с ленивым кэшем уникальных ключей query-строки
type URL struct {
	parsed *url.URL
	cache  map[string]string
	view   *QueryUnique
}

// TryParse разбирает строку в URL.
// Ошибка разбора возвращается как *Error с KindURLParse.
func TryParse(s string) (*URL, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, newParseError(err)
	}
	if !parsed.IsAbs() {
		return nil, newParseError(&url.Error{Op: "parse", URL: s, Err: ErrRelativeURLWithoutBase})
	}
	return newURL(parsed), nil
}

// Parse разбирает строку в URL и паникует при ошибке.
// Только для заведомо корректных строк, не для пользовательского ввода.
func Parse(s string) *URL {
	u, err := TryParse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// TryParsef работает как fmt.Sprintf, результат передаётся в TryParse
func TryParsef(format string, args ...any) (*URL, error) {
	return TryParse(fmt.Sprintf(format, args...))
}

// Parsef работает как fmt.Sprintf, результат передаётся в Parse
func Parsef(format string, args ...any) *URL {
	return Parse(fmt.Sprintf(format, args...))
}

// Default возвращает URL "none:"
func Default() *URL {
	return Parse(defaultURL)
}

// FromURL копирует уже разобранный *url.URL
func FromURL(u *url.URL) *URL {
	cp := *u
	if u.User != nil {
		user := *u.User
		cp.User = &user
	}
	return newURL(&cp)
}

func newURL(parsed *url.URL) *URL {
	return &URL{parsed: parsed}
}

// Std даёт прямой доступ к *url.URL на чтение и запись
func (u *URL) Std() *url.URL {
	return u.parsed
}

// String возвращает URL строкой.
// Изменения в открытом QueryUnique видны только после его Close.
func (u *URL) String() string {
	return u.parsed.String()
}

// GoString для %#v
func (u *URL) GoString() string {
	return fmt.Sprintf("url2.URL{url: %q}", u.String())
}

// Clone возвращает независимую копию вместе с кэшем
func (u *URL) Clone() *URL {
	c := FromURL(u.parsed)
	if u.cache != nil {
		c.cache = make(map[string]string, len(u.cache))
		for k, v := range u.cache {
			c.cache[k] = v
		}
	}
	return c
}

// Equal сравнивает URL по сериализации, кэш не учитывается
func (u *URL) Equal(other *URL) bool {
	return u.String() == other.String()
}

// EqualURL сравнивает с *url.URL
func (u *URL) EqualURL(other *url.URL) bool {
	return u.String() == other.String()
}

// Compare упорядочивает URL по сериализации: -1, 0 или +1
func (u *URL) Compare(other *URL) int {
	return strings.Compare(u.String(), other.String())
}

// Hash согласован с Equal
func (u *URL) Hash() uint64 {
	return xxhash.Sum64String(u.String())
}

// MarshalText реализует encoding.TextMarshaler
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler. Кэш сбрасывается.
// Вызов при открытом QueryUnique паникует: его Close затёр бы новую query-строку.
func (u *URL) UnmarshalText(text []byte) error {
	if u.view != nil {
		panic("url2: UnmarshalText при открытом QueryUnique")
	}
	parsed, err := TryParse(string(text))
	if err != nil {
		return err
	}
	*u = *parsed
	return nil
}

// QueryUnique открывает представление query-строки с уникальными ключами.
// Одновременно может быть открыто только одно представление, повторный
// вызов до Close паникует. Query-строка перезаписывается в Close:
//
//	q := u.QueryUnique()
//	defer q.Close()
func (u *URL) QueryUnique() *QueryUnique {
	if u.view != nil {
		panic("url2: QueryUnique уже открыт для этого URL")
	}
	u.ensureQueryUniqueCache()
	u.view = &QueryUnique{owner: u}
	return u.view
}

// WithQueryUnique открывает представление, вызывает fn и закрывает его,
// в том числе при ошибке или панике внутри fn.
func (u *URL) WithQueryUnique(fn func(q *QueryUnique) error) error {
	q := u.QueryUnique()
	defer q.Close()
	return fn(q)
}

// QueryUniqueContainsKey есть ли ключ в query-строке, разобранной как карта
func (u *URL) QueryUniqueContainsKey(key string) bool {
	u.ensureQueryUniqueCache()
	_, ok := u.cache[key]
	return ok
}

// QueryUniqueGet значение ключа в query-строке, разобранной как карта.
// При повторах ключа побеждает последнее вхождение.
func (u *URL) QueryUniqueGet(key string) (string, bool) {
	u.ensureQueryUniqueCache()
	v, ok := u.cache[key]
	return v, ok
}

// ensureQueryUniqueCache строит кэш, если его ещё нет
func (u *URL) ensureQueryUniqueCache() {
	if u.cache != nil {
		return
	}
	u.cache = map[string]string{}
	for _, p := range queryPairs(u.parsed.RawQuery) {
		u.cache[p.key] = p.value
	}
}

// syncQueryUniqueCache пересобирает query-строку из кэша.
// Порядок ключей определяется обходом карты и не фиксирован.
// Пустой кэш оставляет пустую query-строку с '?'.
func (u *URL) syncQueryUniqueCache() {
	all := make([]pair, 0, len(u.cache))
	for k, v := range u.cache {
		all = append(all, pair{key: k, value: v})
	}

	u.parsed.RawQuery = encodePairs(all)
	u.parsed.ForceQuery = len(all) == 0
}
