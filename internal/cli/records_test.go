package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecords(t *testing.T) {
	var testCases = []struct {
		description string
		ext         string
		data        string
		expectCodes []string
		hasError    bool
	}{
		{
			description: "json list",
			ext:         ".json",
			data:        `[{"Code":"A","Amount":1.5},{"Code":"B","Amount":2}]`,
			expectCodes: []string{"A", "B"},
		},
		{
			description: "json records object",
			ext:         ".json",
			data:        `{"records":[{"Code":"A"}]}`,
			expectCodes: []string{"A"},
		},
		{
			description: "json single object",
			ext:         "json",
			data:        `{"Code":"A"}`,
			expectCodes: []string{"A"},
		},
		{
			description: "yaml list",
			ext:         ".yaml",
			data:        "- Code: A\n  Amount: 1.5\n- Code: B\n  Amount: 2\n",
			expectCodes: []string{"A", "B"},
		},
		{
			description: "yml records object",
			ext:         ".yml",
			data:        "records:\n  - Code: A\n",
			expectCodes: []string{"A"},
		},
		{
			description: "toml array of tables",
			ext:         ".toml",
			data:        "[[records]]\nCode = \"A\"\nAmount = 1.5\n\n[[records]]\nCode = \"B\"\nAmount = 2\n",
			expectCodes: []string{"A", "B"},
		},
		{
			description: "unsupported extension",
			ext:         ".csv",
			data:        "Code\nA\n",
			hasError:    true,
		},
		{
			description: "list of scalars",
			ext:         ".json",
			data:        `[1,2]`,
			hasError:    true,
		},
		{
			description: "malformed json",
			ext:         ".json",
			data:        `[{"Code":`,
			hasError:    true,
		},
	}
	for _, testCase := range testCases {
		records, err := DecodeRecords([]byte(testCase.data), testCase.ext)
		if testCase.hasError {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		var codes []string
		for _, record := range records {
			codes = append(codes, record["Code"].(string))
		}
		assert.Equal(t, testCase.expectCodes, codes, testCase.description)
	}
}

func TestCoerce(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	var testCases = []struct {
		description string
		value       interface{}
		columnType  string
		expect      interface{}
		hasError    bool
	}{
		{description: "nil stays nil", value: nil, columnType: TypeInt, expect: nil},
		{description: "untyped json integer", value: json.Number("42"), expect: int64(42)},
		{description: "untyped json float", value: json.Number("4.5"), expect: 4.5},
		{description: "untyped passthrough", value: "x", expect: "x"},
		{description: "string from number", value: int64(7), columnType: TypeString, expect: "7"},
		{description: "int from uint64", value: uint64(3), columnType: TypeInt, expect: int64(3)},
		{description: "int from integral float", value: 3.0, columnType: TypeInt, expect: int64(3)},
		{description: "int from fractional float", value: 3.5, columnType: TypeInt, hasError: true},
		{description: "int from string", value: " 12 ", columnType: TypeInt, expect: int64(12)},
		{description: "float from json", value: json.Number("1.25"), columnType: TypeFloat, expect: 1.25},
		{description: "bool from string", value: "true", columnType: TypeBool, expect: true},
		{description: "bool from number", value: int64(1), columnType: TypeBool, hasError: true},
		{description: "time from string", value: "2024-03-01T10:30:00Z", columnType: TypeTime, expect: stamp},
		{description: "time passthrough", value: stamp, columnType: TypeTime, expect: stamp},
		{description: "unsupported type", value: "x", columnType: "blob", hasError: true},
	}
	for _, testCase := range testCases {
		actual, err := Coerce(testCase.value, testCase.columnType)
		if testCase.hasError {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestCoerce_Decimal(t *testing.T) {
	var testCases = []struct {
		description string
		value       interface{}
		expect      string
	}{
		{description: "json number keeps precision", value: json.Number("12345678901234567890.123456789"), expect: "12345678901234567890.123456789"},
		{description: "string", value: "0.10", expect: "0.1"},
		{description: "int", value: int64(5), expect: "5"},
		{description: "float", value: 2.5, expect: "2.5"},
	}
	for _, testCase := range testCases {
		actual, err := Coerce(testCase.value, TypeDecimal)
		require.NoError(t, err, testCase.description)
		value, ok := actual.(decimal.Decimal)
		require.True(t, ok, testCase.description)
		assert.Equal(t, testCase.expect, value.String(), testCase.description)
	}
}

func TestConfig_Coerce(t *testing.T) {
	cfg := &Config{Columns: []ColumnConfig{{Name: "Code"}, {Name: "Qty", Type: TypeInt}}}
	records := []map[string]interface{}{
		{"code": "A", "qty": json.Number("3"), "extra": json.Number("1")},
		{"Code": "B"},
	}
	require.NoError(t, cfg.Coerce(records))
	assert.Equal(t, int64(3), records[0]["qty"])
	assert.Equal(t, json.Number("1"), records[0]["extra"], "undeclared field")
	_, ok := records[1]["Qty"]
	assert.False(t, ok, "missing field stays missing")

	records = []map[string]interface{}{{"Qty": "many"}}
	assert.Error(t, cfg.Coerce(records))
}
