package csvcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeURLs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "csv with url column",
			input: "name,url\nhome,https://central.xero.com/s/\nlearning,https://central.xero.com/s/learning\n",
			want:  []string{"https://central.xero.com/s/", "https://central.xero.com/s/learning"},
		},
		{
			name:  "header is case insensitive and bom is stripped",
			input: "\ufeffURL\r\nhttps://a.example/\r\nhttps://b.example/\r\n",
			want:  []string{"https://a.example/", "https://b.example/"},
		},
		{
			name:  "blank url cells are skipped",
			input: "url,note\nhttps://a.example/,x\n,missing\nhttps://b.example/,y",
			want:  []string{"https://a.example/", "https://b.example/"},
		},
		{
			name:  "blank url in first record falls back to lines",
			input: "url,note\n,first\nhttps://b.example/,y",
			want:  []string{"url,note", ",first", "https://b.example/,y"},
		},
		{
			name:  "short first record falls back to lines",
			input: "note,url\nfirst\nx,https://b.example/",
			want:  []string{"note,url", "first", "x,https://b.example/"},
		},
		{
			name:  "plain list falls back to lines",
			input: "https://a.example/\n\n  https://b.example/  \nhttps://c.example/",
			want:  []string{"https://a.example/", "https://b.example/", "https://c.example/"},
		},
		{
			name:  "csv without url column falls back to lines",
			input: "site,owner\nhttps://a.example/,me",
			want:  []string{"site,owner", "https://a.example/,me"},
		},
		{
			name:  "malformed csv falls back to lines",
			input: "url\n\"https://a.example/\nhttps://b.example/",
			want:  []string{"url", "\"https://a.example/", "https://b.example/"},
		},
		{
			name:  "malformed entries are passed through",
			input: "not a url\nhttps://ok.example/",
			want:  []string{"not a url", "https://ok.example/"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeURLs(tt.input))
		})
	}
}
