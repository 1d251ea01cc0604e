package normalisers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormaliseWhitespace(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"windows line endings", "one\r\ntwo\r\nthree", "one\ntwo\nthree"},
		{"old mac line endings", "one\rtwo", "one\ntwo"},
		{"collapses spaces and tabs", "a  \t  b", "a b"},
		{"strips trailing space per line", "line one   \nline two\t", "line one\nline two"},
		{"collapses blank runs", "para one\n\n\n\n\npara two", "para one\n\npara two"},
		{"keeps single blank line", "para one\n\npara two", "para one\n\npara two"},
		{"trims surrounding whitespace", "\n\n  text  \n\n", "text"},
		{"empty input", "", ""},
		{"whitespace only", " \n \t \n ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormaliseWhitespace(tc.in))
		})
	}
}
