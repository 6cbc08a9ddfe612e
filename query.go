package url2

import (
	"net/url"
	"strings"
)

type pair struct {
	key   string
	value string
}

// queryPairs разбирает query-строку в пары в порядке следования.
// Некорректные percent-последовательности остаются буквально.
func queryPairs(rawQuery string) []pair {
	var pairs []pair
	for rawQuery != "" {
		var chunk string
		chunk, rawQuery, _ = strings.Cut(rawQuery, "&")
		if chunk == "" {
			continue
		}
		key, value, _ := strings.Cut(chunk, "=")
		pairs = append(pairs, pair{key: unescape(key), value: unescape(value)})
	}
	return pairs
}

// unescape декодирует form-urlencoded компонент: '+' становится пробелом,
// каждая корректная %XX декодируется, некорректная остаётся как есть
func unescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			buf = append(buf, ' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			buf = append(buf, c)
		}
	}
	return string(buf)
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// encodePairs собирает query-строку в application/x-www-form-urlencoded
func encodePairs(pairs []pair) string {
	var buf strings.Builder
	for _, p := range pairs {
		if buf.Len() > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(p.key))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(p.value))
	}
	return buf.String()
}
