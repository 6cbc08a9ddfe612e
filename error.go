package url2

import "errors"

// ErrRelativeURLWithoutBase относительная ссылка без базового URL
var ErrRelativeURLWithoutBase = errors.New("relative URL without a base")

// Kind вид ошибки url2
type Kind int

const (
	// KindUnknown зарезервирован под виды, которых пока нет.
	// Код, разбирающий Kind, должен иметь ветку default.
	KindUnknown Kind = iota
	// KindURLParse ошибка разбора в net/url
	KindURLParse
)

func (k Kind) String() string {
	switch k {
	case KindURLParse:
		return "URLParse"
	default:
		return "Unknown"
	}
}

// Error ошибка url2, исходная ошибка доступна через errors.Unwrap
type Error struct {
	kind Kind
	err  error
}

func newParseError(err error) *Error {
	return &Error{kind: KindURLParse, err: err}
}

// Kind вид ошибки
func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Error() string {
	switch e.kind {
	case KindURLParse:
		return e.err.Error()
	default:
		return "url2: неизвестная ошибка"
	}
}

func (e *Error) Unwrap() error {
	return e.err
}
