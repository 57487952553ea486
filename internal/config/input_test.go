package config

import (
	"path/filepath"
	"testing"

	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRequests = `
requests:
  - name: Asha
    ctc_amount: 1000000
    city_type: Metro
  - name: Ravi
    lpa: 6.5
    city: Indore
    basic_percent: 45
    hra_percent: 40
  - name: Meera
    ctc_amount: "1250000.50"
`

func TestInputParser_LoadFromFile(t *testing.T) {
	path := writeFile(t, "requests.yaml", sampleRequests)

	file, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, file.Requests, 3)

	asha := file.Requests[0]
	assert.Equal(t, "Asha", asha.Name)
	require.NotNil(t, asha.CTCAmount)
	assert.True(t, asha.CTCAmount.Equal(dec("1000000")))
	assert.Nil(t, asha.LPA)
	assert.Equal(t, "Metro", asha.CityType)

	ravi := file.Requests[1]
	require.NotNil(t, ravi.LPA)
	assert.True(t, ravi.LPA.Equal(dec("6.5")))
	require.NotNil(t, ravi.BasicPercent)
	assert.True(t, ravi.BasicPercent.Equal(dec("45")))
	assert.Nil(t, ravi.PFPercent)

	in, err := ravi.ToInput(domain.DefaultEngineConfig())
	require.NoError(t, err)
	assert.True(t, in.CTCAmount.Equal(dec("650000")))
	assert.Equal(t, domain.Metro, in.CityType)
	require.NotNil(t, in.HRAPercent)
	assert.True(t, in.HRAPercent.Equal(dec("0.4")), "hra fraction %s", in.HRAPercent)

	meera := file.Requests[2]
	require.NotNil(t, meera.CTCAmount)
	assert.True(t, meera.CTCAmount.Equal(dec("1250000.50")))
}

func TestInputParser_JSON(t *testing.T) {
	file, err := NewInputParser().Parse([]byte(`{"requests":[{"name":"json","lpa":12,"city_type":"Non-Metro"}]}`))
	require.NoError(t, err)
	require.Len(t, file.Requests, 1)
	assert.Equal(t, "Non-Metro", file.Requests[0].CityType)
}

func TestInputParser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "requests: []\n", "no requests provided"},
		{"missing name", "requests:\n  - lpa: 10\n", "name is required"},
		{"missing amount", "requests:\n  - name: a\n", "ctc_amount or lpa is required"},
		{"both amounts", "requests:\n  - name: a\n    lpa: 10\n    ctc_amount: 1000000\n", "specify either ctc_amount or lpa, not both"},
		{"bad city type", "requests:\n  - name: a\n    lpa: 10\n    city_type: Village\n", `unknown city type "Village"`},
		{"hra above 100", "requests:\n  - name: a\n    lpa: 10\n    hra_percent: 150\n", "hra_percent must be between 0 and 100"},
		{"negative hra", "requests:\n  - name: a\n    lpa: 10\n    hra_percent: -5\n", "hra_percent must be between 0 and 100"},
		{"duplicate", "requests:\n  - name: a\n    lpa: 10\n  - name: a\n    lpa: 12\n", `duplicate name "a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "request file validation failed")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInputParser_FileErrors(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	bad := writeFile(t, "bad.yaml", "requests: [unterminated\n")
	_, err = NewInputParser().LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	notDecimal := writeFile(t, "nd.yaml", "requests:\n  - name: a\n    lpa: ten\n")
	_, err = NewInputParser().LoadFromFile(notDecimal)
	require.Error(t, err)
}
