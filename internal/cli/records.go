package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"
)

// Column types.
const (
	TypeString  = "string"
	TypeInt     = "int"
	TypeFloat   = "float"
	TypeBool    = "bool"
	TypeDecimal = "decimal"
	TypeTime    = "time"
)

// recordsKey holds records in documents that can not have a top level list (TOML).
const recordsKey = "records"

// ReadRecords reads records from a JSON, YAML or TOML file.
// A document is either a list of objects or an object with a records list.
func ReadRecords(path string) ([]map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(data, filepath.Ext(path))
}

// DecodeRecords decodes records for the supplied file extension.
func DecodeRecords(data []byte, ext string) ([]map[string]interface{}, error) {
	var document interface{}
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&document); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case "toml":
		var table map[string]interface{}
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
		document = table
	default:
		return nil, fmt.Errorf("unsupported record file format: %q", ext)
	}
	return asRecords(document)
}

func asRecords(document interface{}) ([]map[string]interface{}, error) {
	var items []interface{}
	switch actual := document.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		items = actual
	case []map[string]interface{}:
		return actual, nil
	case map[string]interface{}:
		records, ok := actual[recordsKey]
		if !ok {
			return []map[string]interface{}{actual}, nil
		}
		return asRecords(records)
	default:
		return nil, fmt.Errorf("expected list of records, but had %T", document)
	}
	var result = make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		record, err := asRecord(item)
		if err != nil {
			return nil, fmt.Errorf("record at %v: %w", i, err)
		}
		result = append(result, record)
	}
	return result, nil
}

func asRecord(item interface{}) (map[string]interface{}, error) {
	switch actual := item.(type) {
	case map[string]interface{}:
		return actual, nil
	case map[interface{}]interface{}:
		var result = make(map[string]interface{}, len(actual))
		for k, v := range actual {
			result[fmt.Sprint(k)] = v
		}
		return result, nil
	}
	return nil, fmt.Errorf("expected object, but had %T", item)
}

// Coerce converts records values to declared column types, undeclared fields are kept as is.
func (c *Config) Coerce(records []map[string]interface{}) error {
	for i, record := range records {
		for _, column := range c.Columns {
			key, value, ok := lookupFold(record, column.Name)
			if !ok {
				continue
			}
			coerced, err := Coerce(value, column.Type)
			if err != nil {
				return fmt.Errorf("record at %v, column %v: %w", i, column.Name, err)
			}
			record[key] = coerced
		}
	}
	return nil
}

func lookupFold(record map[string]interface{}, name string) (string, interface{}, bool) {
	if value, ok := record[name]; ok {
		return name, value, true
	}
	for k, v := range record {
		if strings.EqualFold(k, name) {
			return k, v, true
		}
	}
	return "", nil, false
}

func isSupportedType(name string) bool {
	switch strings.ToLower(name) {
	case "", TypeString, TypeInt, TypeFloat, TypeBool, TypeDecimal, TypeTime:
		return true
	}
	return false
}

// Coerce converts decoded value to column type, nil stays nil
func Coerce(value interface{}, columnType string) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	switch strings.ToLower(columnType) {
	case "":
		if number, ok := value.(json.Number); ok {
			if i, err := number.Int64(); err == nil {
				return i, nil
			}
			return number.Float64()
		}
		return value, nil
	case TypeString:
		if text, ok := value.(string); ok {
			return text, nil
		}
		return fmt.Sprint(value), nil
	case TypeInt:
		return asInt(value)
	case TypeFloat:
		return asFloat(value)
	case TypeBool:
		switch actual := value.(type) {
		case bool:
			return actual, nil
		case string:
			return strconv.ParseBool(actual)
		}
	case TypeDecimal:
		return asDecimal(value)
	case TypeTime:
		switch actual := value.(type) {
		case time.Time:
			return actual, nil
		case string:
			return time.Parse(time.RFC3339Nano, actual)
		}
	default:
		return nil, fmt.Errorf("unsupported type %v", columnType)
	}
	return nil, fmt.Errorf("can not convert %T to %v", value, columnType)
}

func asInt(value interface{}) (int64, error) {
	switch actual := value.(type) {
	case int:
		return int64(actual), nil
	case int64:
		return actual, nil
	case uint64:
		if actual > math.MaxInt64 {
			return 0, fmt.Errorf("value %v overflows int64", actual)
		}
		return int64(actual), nil
	case float64:
		if actual != math.Trunc(actual) {
			return 0, fmt.Errorf("value %v is not integral", actual)
		}
		return int64(actual), nil
	case json.Number:
		return actual.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(actual), 10, 64)
	}
	return 0, fmt.Errorf("can not convert %T to int", value)
}

func asFloat(value interface{}) (float64, error) {
	switch actual := value.(type) {
	case int:
		return float64(actual), nil
	case int64:
		return float64(actual), nil
	case uint64:
		return float64(actual), nil
	case float64:
		return actual, nil
	case json.Number:
		return actual.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(actual), 64)
	}
	return 0, fmt.Errorf("can not convert %T to float", value)
}

func asDecimal(value interface{}) (decimal.Decimal, error) {
	switch actual := value.(type) {
	case decimal.Decimal:
		return actual, nil
	case int:
		return decimal.NewFromInt(int64(actual)), nil
	case int64:
		return decimal.NewFromInt(actual), nil
	case uint64:
		return decimal.NewFromString(strconv.FormatUint(actual, 10))
	case float64:
		return decimal.NewFromFloat(actual), nil
	case json.Number:
		return decimal.NewFromString(actual.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(actual))
	}
	return decimal.Decimal{}, fmt.Errorf("can not convert %T to decimal", value)
}
