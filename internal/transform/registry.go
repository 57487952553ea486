package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
	config    domain.EngineConfig
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms
// registered. The config supplies the metro city list for set_city_type.
func NewTransformRegistry(cfg domain.EngineConfig) *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
		config:    cfg,
	}

	registry.Register("set_ctc", createSetCTC)
	registry.Register("set_lpa", createSetLPA)
	registry.Register("scale_ctc", createScaleCTC)
	registry.Register("set_city_type", registry.createSetCityType)
	registry.Register("set_percent", createSetPercent)
	registry.Register("reset_percents", createResetPercents)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_percent:component=basic,value=45"
// Transforms without parameters may omit the colon ("reset_percents").
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createSetCTC(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_ctc", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetCTC{Amount: amount}, nil
}

func createSetLPA(params map[string]string) (InputTransform, error) {
	v, err := decimalParam("set_lpa", params, "lpa")
	if err != nil {
		return nil, err
	}
	return &SetLPA{LPA: v}, nil
}

func createScaleCTC(params map[string]string) (InputTransform, error) {
	if pctStr, ok := params["percent"]; ok {
		p, err := decimal.NewFromString(pctStr)
		if err != nil {
			return nil, fmt.Errorf("invalid percent value: %w", err)
		}
		return &ScaleCTC{Factor: decimal.NewFromInt(1).Add(p.Div(hundred))}, nil
	}

	factor, err := decimalParam("scale_ctc", params, "factor")
	if err != nil {
		return nil, fmt.Errorf("%w (or 'percent')", err)
	}
	return &ScaleCTC{Factor: factor}, nil
}

func (r *TransformRegistry) createSetCityType(params map[string]string) (InputTransform, error) {
	if typ, ok := params["type"]; ok {
		city, err := domain.ParseCityType(typ)
		if err != nil {
			return nil, err
		}
		return &SetCityType{CityType: city}, nil
	}
	if name, ok := params["city"]; ok {
		return &SetCityType{CityType: r.config.ClassifyCity(name)}, nil
	}
	return nil, fmt.Errorf("set_city_type requires 'type' or 'city' parameter")
}

func createSetPercent(params map[string]string) (InputTransform, error) {
	componentStr, ok := params["component"]
	if !ok {
		return nil, fmt.Errorf("set_percent requires 'component' parameter")
	}
	component, err := ParseComponent(componentStr)
	if err != nil {
		return nil, err
	}

	value, err := decimalParam("set_percent", params, "value")
	if err != nil {
		return nil, err
	}

	return &SetPercent{Component: component, Value: value}, nil
}

func createResetPercents(params map[string]string) (InputTransform, error) {
	return &ResetPercents{}, nil
}
