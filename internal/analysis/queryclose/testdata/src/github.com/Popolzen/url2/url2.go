package url2

type URL struct{}

type QueryUnique struct{}

func (u *URL) QueryUnique() *QueryUnique { return &QueryUnique{} }

func (q *QueryUnique) SetPair(key, value string) *QueryUnique { return q }

func (q *QueryUnique) Close() {}
