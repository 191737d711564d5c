// Package candidate defines the structured record handed to the fill
// engine by the upstream CV parser, plus validation of its JSON form.
package candidate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

// Experience is one employment record.
type Experience struct {
	Role             string `json:"role"`
	Company          string `json:"company"`
	Duration         string `json:"duration"`
	Location         string `json:"location"`
	Responsibilities string `json:"responsibilities"`
}

// Project is one project record.
type Project struct {
	Title       string `json:"title"`
	Role        string `json:"role"`
	Tech        string `json:"tech"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is one education record.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Duration    string `json:"duration"`
}

// Certification is one certification record.
type Certification struct {
	Title string `json:"title"`
}

// Record is a parsed candidate profile.
type Record struct {
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Linkedin       string          `json:"linkedin"`
	Summary        string          `json:"summary"`
	Skills         []string        `json:"skills"`
	Tools          []string        `json:"tools"`
	WorkExperience []Experience    `json:"work_experience"`
	Projects       []Project       `json:"projects"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
}

var compiled = mustCompile()

func mustCompile() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("candidate.json", bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("candidate: load embedded schema: %v", err))
	}
	schema, err := compiler.Compile("candidate.json")
	if err != nil {
		panic(fmt.Sprintf("candidate: compile embedded schema: %v", err))
	}
	return schema
}

// Parse validates raw JSON against the candidate schema and unmarshals it.
func Parse(raw []byte) (*Record, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode candidate JSON: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, fmt.Errorf("candidate record does not match schema: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode candidate record: %w", err)
	}
	return &rec, nil
}

// Load reads and parses a candidate record from a JSON file.
func Load(path string) (*Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(raw)
}
