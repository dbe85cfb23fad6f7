package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		details string
		want    Fields
	}{
		{
			name:    "full address with country",
			details: "123 Main St, Springfield, IL 62704, USA",
			want: Fields{
				Street:  "123 Main St",
				City:    "Springfield",
				State:   "IL",
				Zip:     "62704",
				Country: "USA",
			},
		},
		{
			name:    "three segments, no country",
			details: "123 Main St, Springfield, IL 62704",
			want: Fields{
				Street: "123 Main St",
				City:   "Springfield",
				State:  "IL",
				Zip:    "62704",
			},
		},
		{
			name:    "two segments is under-specified",
			details: "123 Main St, Springfield",
			want:    Fields{},
		},
		{
			name:    "empty input",
			details: "",
			want:    Fields{},
		},
		{
			name:    "state segment without zip",
			details: "123 Main St, Springfield, IL, USA",
			want: Fields{
				Street:  "123 Main St",
				City:    "Springfield",
				State:   "IL",
				Country: "USA",
			},
		},
		{
			name:    "tokens past state and zip are dropped",
			details: "123 Main St, Springfield, IL 62704 Sangamon County, USA",
			want: Fields{
				Street:  "123 Main St",
				City:    "Springfield",
				State:   "IL",
				Zip:     "62704",
				Country: "USA",
			},
		},
		{
			name:    "segments past the fourth are ignored",
			details: "123 Main St, Springfield, IL 62704, USA, Attn: Receiving, Dock 4",
			want: Fields{
				Street:  "123 Main St",
				City:    "Springfield",
				State:   "IL",
				Zip:     "62704",
				Country: "USA",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.details))
		})
	}
}

func TestParseIsIdempotent(t *testing.T) {
	details := "123 Main St, Springfield, IL 62704, USA"
	first := Parse(details)
	second := Parse(details)
	assert.Equal(t, first, second)
}
