package csvcodec

import (
	"testing"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleRows() []models.Row {
	return []models.Row{
		{
			{Key: "url", Value: "https://central.xero.com/s/"},
			{Key: "performance", Value: "0.9"},
			{Key: "accessibility", Value: "0.95"},
			{Key: "bestPractices", Value: "1"},
			{Key: "seo", Value: "0.87"},
		},
		models.NewErrorRow("https://bad.invalid/", "net::ERR_NAME_NOT_RESOLVED"),
	}
}

func TestEncodeEmpty(t *testing.T) {
	assert.Equal(t, "", Encode(nil, HeaderUnion))
	assert.Equal(t, "", Encode([]models.Row{}, HeaderFirstRow))
}

func TestEncodeFirstRowPolicy(t *testing.T) {
	// Заголовок фиксируется по первой строке, колонка error второй строки теряется
	want := `"url","performance","accessibility","bestPractices","seo"` + "\n" +
		`"https://central.xero.com/s/","0.9","0.95","1","0.87"` + "\n" +
		`"https://bad.invalid/","","","",""`

	assert.Equal(t, want, Encode(exampleRows(), HeaderFirstRow))
}

func TestEncodeUnionPolicy(t *testing.T) {
	want := `"url","performance","accessibility","bestPractices","seo","error"` + "\n" +
		`"https://central.xero.com/s/","0.9","0.95","1","0.87",""` + "\n" +
		`"https://bad.invalid/","","","","","net::ERR_NAME_NOT_RESOLVED"`

	assert.Equal(t, want, Encode(exampleRows(), HeaderUnion))
}

func TestEncodeUnionPolicyErrorFirst(t *testing.T) {
	rows := []models.Row{
		models.NewErrorRow("https://bad.invalid/", "boom"),
		{{Key: "url", Value: "https://ok.example/"}, {Key: "seo", Value: "0.5"}},
	}

	assert.Equal(t, []string{"url", "error", "seo"}, Header(rows, HeaderUnion))
	assert.Equal(t,
		`"url","error","seo"`+"\n"+`"https://bad.invalid/","boom",""`+"\n"+`"https://ok.example/","","0.5"`,
		Encode(rows, HeaderUnion))
}

func TestEncodeEscapesQuotes(t *testing.T) {
	rows := []models.Row{models.NewErrorRow("https://a.example/", `unexpected token "<"`)}

	assert.Equal(t,
		`"url","error"`+"\n"+`"https://a.example/","unexpected token ""<"""`,
		Encode(rows, HeaderUnion))
}

func TestRoundTrip(t *testing.T) {
	rows := []models.Row{
		{{Key: "url", Value: "https://one.example/"}, {Key: "seo", Value: "1"}},
		{{Key: "url", Value: "https://two.example/"}, {Key: "seo", Value: ""}},
		{{Key: "url", Value: "https://three.example/"}, {Key: "seo", Value: "0.3"}},
	}

	urls := DecodeURLs(Encode(rows, HeaderFirstRow))
	require.Len(t, urls, 3)
	assert.Equal(t, []string{"https://one.example/", "https://two.example/", "https://three.example/"}, urls)
}

func TestParseHeaderPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    HeaderPolicy
		wantErr bool
	}{
		{"", HeaderUnion, false},
		{"union", HeaderUnion, false},
		{"First-Row", HeaderFirstRow, false},
		{"sorted", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHeaderPolicy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
