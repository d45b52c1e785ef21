package itembank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the bank file schema major version this build reads.
const SupportedMajor = "v1"

// SchemaVersion is written by exports.
const SchemaVersion = "1.0.0"

// ErrUnsupportedVersion is returned when a bank file declares a schema
// version with an unsupported major version.
var ErrUnsupportedVersion = errors.New("unsupported bank schema version")

//go:embed schema/bank.schema.json
var bankSchemaJSON []byte

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

// File is the on-disk JSON representation of an item bank.
type File struct {
	SchemaVersion string    `json:"schema_version"`
	Items         []Item    `json:"items,omitempty"`
	Passages      []Passage `json:"passages,omitempty"`
}

// LoadFile reads, schema-checks and validates a JSON bank file.
func LoadFile(path string) (*MemoryBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	bank, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bank file %s: %w", path, err)
	}
	return bank, nil
}

// Parse decodes a JSON bank document. The document must satisfy the
// embedded JSON schema, carry a supported schema_version, and every item
// and passage question must pass the default validators.
func Parse(data []byte) (*MemoryBank, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledBankSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var f File
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	if err := checkVersion(f.SchemaVersion); err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return NewMemoryBank(f.Items, f.Passages), nil
}

// Validate checks every item and passage question and rejects duplicate ids.
// All failures are joined into one error.
func (f *File) Validate() error {
	var errs []error
	ids := make(map[string]bool)

	dup := func(id string) {
		if ids[id] {
			errs = append(errs, fmt.Errorf("duplicate id %q", id))
		}
		ids[id] = true
	}

	for i := range f.Items {
		it := &f.Items[i]
		dup(it.ID)
		if verr := Validate(it); verr != nil {
			errs = append(errs, verr)
		}
	}

	for _, p := range f.Passages {
		dup(p.ID)
		if p.Topic != TopicLiterary && p.Topic != TopicInformational {
			errs = append(errs, fmt.Errorf("passage %s: topic %q is not a reading domain", p.ID, p.Topic))
		}
		for i, q := range p.Questions {
			it := Item{
				ID:       p.QuestionID(i),
				GradeMin: p.GradeMin,
				GradeMax: p.GradeMax,
				Topic:    p.Topic,
				Tier:     TierCore,
				Stem:     q.Stem,
				Choices:  q.Choices,
				Correct:  q.Correct,
			}
			dup(it.ID)
			if verr := Validate(&it); verr != nil {
				errs = append(errs, verr)
			}
		}
	}
	return errors.Join(errs...)
}

func checkVersion(v string) error {
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("%w: %s (supported: %s.x)", ErrUnsupportedVersion, v, SupportedMajor)
	}
	return nil
}

func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(bankSchemaJSON))
		if err != nil {
			bankSchemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://levelcheck/bank.schema.json"
		if err := c.AddResource(url, doc); err != nil {
			bankSchemaErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		bankSchema, bankSchemaErr = c.Compile(url)
	})
	return bankSchema, bankSchemaErr
}
