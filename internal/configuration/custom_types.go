package configuration

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// scheduleHookFunc returns a mapstructure decode hook that converts the
// interface{} / string keys produced by YAML and viper into tick numbers.
func scheduleHookFunc() mapstructure.DecodeHookFuncType {
	scheduleType := reflect.TypeOf(ScheduleConfig{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != scheduleType {
			return data, nil
		}

		result, err := parseScheduleMap(data)
		if err != nil {
			return nil, fmt.Errorf("schedule: %w", err)
		}
		return result, nil
	}
}

// parseScheduleMap converts various map types (from YAML decoding) into a ScheduleConfig.
func parseScheduleMap(data interface{}) (ScheduleConfig, error) {
	result := ScheduleConfig{}
	switch v := data.(type) {
	case map[interface{}]interface{}:
		for k, val := range v {
			key, err := anyToInt(k)
			if err != nil {
				return nil, fmt.Errorf("invalid tick %v: %w", k, err)
			}
			value, err := anyToFloat(val)
			if err != nil {
				return nil, fmt.Errorf("invalid target %v: %w", val, err)
			}
			result[key] = value
		}
	case map[string]interface{}:
		for k, val := range v {
			key, err := anyToInt(k)
			if err != nil {
				return nil, fmt.Errorf("invalid tick %q: %w", k, err)
			}
			value, err := anyToFloat(val)
			if err != nil {
				return nil, fmt.Errorf("invalid target %v: %w", val, err)
			}
			result[key] = value
		}
	case map[int]float64:
		return v, nil
	case ScheduleConfig:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported schedule type %T", data)
	}
	return result, nil
}

// anyToInt converts numeric and string values to int.
func anyToInt(v interface{}) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as int: %w", val, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}

// anyToFloat converts numeric and string values to float64.
func anyToFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as float: %w", val, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}
