package token

// reserved contains the ANSI core reserved words. Dialects extend this set
// through their own reserved-word lists; the lexer consults both.
var reserved = map[string]bool{
	"all":       true,
	"alter":     true,
	"and":       true,
	"any":       true,
	"as":        true,
	"asc":       true,
	"begin":     true,
	"between":   true,
	"by":        true,
	"case":      true,
	"cast":      true,
	"create":    true,
	"cross":     true,
	"current":   true,
	"delete":    true,
	"desc":      true,
	"distinct":  true,
	"drop":      true,
	"else":      true,
	"end":       true,
	"except":    true,
	"exists":    true,
	"false":     true,
	"from":      true,
	"full":      true,
	"group":     true,
	"having":    true,
	"in":        true,
	"inner":     true,
	"insert":    true,
	"intersect": true,
	"into":      true,
	"is":        true,
	"join":      true,
	"lateral":   true,
	"left":      true,
	"like":      true,
	"limit":     true,
	"minus":     true,
	"not":       true,
	"null":      true,
	"offset":    true,
	"on":        true,
	"or":        true,
	"order":     true,
	"outer":     true,
	"over":      true,
	"partition": true,
	"right":     true,
	"select":    true,
	"set":       true,
	"table":     true,
	"then":      true,
	"true":      true,
	"truncate":  true,
	"union":     true,
	"update":    true,
	"values":    true,
	"when":      true,
	"where":     true,
	"with":      true,
}

// IsReserved reports whether the given word is an ANSI core reserved word.
// The check is case-insensitive for ASCII input; callers pass the raw text.
func IsReserved(word string) bool {
	return reserved[lower(word)]
}

// lower is a fast ASCII-only lowercase used on candidate keywords.
// SQL keywords are always ASCII, so a full unicode mapping is unnecessary.
func lower(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
