package a

import "github.com/Popolzen/url2"

type other struct{}

func (other) QueryUnique() *other { return nil }

func lost(u *url2.URL) {
	u.QueryUnique()                   // want "результат QueryUnique не закрыт"
	u.QueryUnique().SetPair("a", "1") // want "результат QueryUnique не закрыт"
	(u.QueryUnique()).SetPair("a", "1").SetPair("b", "2") // want "результат QueryUnique не закрыт"
}

func closed(u *url2.URL) {
	q := u.QueryUnique()
	q.SetPair("a", "1").SetPair("b", "2")
	q.Close()

	u.QueryUnique().Close()

	defer u.QueryUnique().Close()

	_ = u.QueryUnique()
}

func unrelated(o other) {
	o.QueryUnique()
}
