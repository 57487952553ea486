package config

import (
	"fmt"
	"os"

	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var hundred = decimal.NewFromInt(100)

// InputParser handles parsing of salary request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads salary requests from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.RequestFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return ip.Parse(data)
}

// Parse decodes and validates request file contents
func (ip *InputParser) Parse(data []byte) (*domain.RequestFile, error) {
	var file domain.RequestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRequestFile(&file); err != nil {
		return nil, fmt.Errorf("request file validation failed: %w", err)
	}

	return &file, nil
}

// ValidateRequestFile checks the structure of every request. Salary rules
// (percentage limits, CTC bounds) are left to the calculation engine.
func (ip *InputParser) ValidateRequestFile(file *domain.RequestFile) error {
	if len(file.Requests) == 0 {
		return fmt.Errorf("no requests provided")
	}

	seen := make(map[string]bool, len(file.Requests))
	for i, req := range file.Requests {
		if err := ip.validateRequest(&req); err != nil {
			return fmt.Errorf("request %d (%s): %w", i, req.Name, err)
		}
		if seen[req.Name] {
			return fmt.Errorf("request %d: duplicate name %q", i, req.Name)
		}
		seen[req.Name] = true
	}

	return nil
}

func (ip *InputParser) validateRequest(req *domain.SalaryRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}

	switch {
	case req.CTCAmount == nil && req.LPA == nil:
		return fmt.Errorf("ctc_amount or lpa is required")
	case req.CTCAmount != nil && req.LPA != nil:
		return fmt.Errorf("specify either ctc_amount or lpa, not both")
	}

	if req.CityType != "" {
		if _, err := domain.ParseCityType(req.CityType); err != nil {
			return err
		}
	}

	if h := req.HRAPercent; h != nil && (h.IsNegative() || h.GreaterThan(hundred)) {
		return fmt.Errorf("hra_percent must be between 0 and 100 (%% of Basic), got %s", h.String())
	}

	return nil
}
