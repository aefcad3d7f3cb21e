package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "prose around", in: "Sure! Here it is: {\"a\":{\"b\":2}} hope it helps", want: `{"a":{"b":2}}`},
		{name: "brace inside string", in: `{"a":"}{"} trailing`, want: `{"a":"}{"}`},
		{name: "escaped quote", in: `{"a":"say \"}\""}`, want: `{"a":"say \"}\""}`},
		{name: "no object", in: "not json", want: "not json"},
		{name: "unterminated", in: `{"a":1`, want: `{"a":1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONResponse(tt.in))
		})
	}
}
