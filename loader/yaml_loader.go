package loader

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/Alex-H307/cafe-system/schema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.yaml
var defaultCatalog []byte

type yamlFile struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	ID     int         `yaml:"id"`
	Name   string      `yaml:"name"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name      string      `yaml:"name"`
	Key       string      `yaml:"key"`
	Type      string      `yaml:"type"`
	MaxLength int         `yaml:"max_length"`
	Default   interface{} `yaml:"default"`
	Check     *yamlCheck  `yaml:"check"`
	Required  bool        `yaml:"required"`
}

type yamlCheck struct {
	Format string   `yaml:"format"`
	Range  *float64 `yaml:"range"`
}

// LoadDefaultRegistry builds the registry from the catalog compiled into the binary.
func LoadDefaultRegistry() (*schema.Registry, error) {
	return LoadRegistryFromBytes(defaultCatalog)
}

// LoadDefaultModels decodes the built-in catalog without building a registry.
func LoadDefaultModels() ([]schema.Model, error) {
	return LoadModelsFromBytes(defaultCatalog)
}

// LoadRegistry loads filename, or the built-in catalog when filename is empty.
func LoadRegistry(filename string) (*schema.Registry, error) {
	if filename == "" {
		return LoadDefaultRegistry()
	}
	return LoadRegistryFromYAML(filename)
}

func LoadRegistryFromYAML(filename string) (*schema.Registry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return LoadRegistryFromBytes(data)
}

func LoadRegistryFromBytes(data []byte) (*schema.Registry, error) {
	models, err := LoadModelsFromBytes(data)
	if err != nil {
		return nil, err
	}
	return schema.NewRegistry(models)
}

// LoadModelsFromBytes decodes models without checking registry invariants,
// so the validator can report every problem at once.
func LoadModelsFromBytes(data []byte) ([]schema.Model, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	var models []schema.Model
	for _, t := range yf.Tables {
		model := schema.Model{
			ID:   t.ID,
			Name: t.Name,
		}
		for _, f := range t.Fields {
			field := schema.Field{
				Name:      f.Name,
				Key:       schema.KeyRole(f.Key),
				Type:      schema.ValueType(f.Type),
				MaxLength: f.MaxLength,
				Required:  f.Required,
			}
			if f.Default != nil {
				def := fmt.Sprint(f.Default)
				field.Default = &def
			}
			if f.Check != nil {
				check, err := f.Check.toCheck()
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", t.Name, f.Name, err)
				}
				field.Check = check
			}
			model.Fields = append(model.Fields, field)
		}
		models = append(models, model)
	}

	return models, nil
}

func (c *yamlCheck) toCheck() (*schema.Check, error) {
	switch {
	case c.Format != "" && c.Range != nil:
		return nil, fmt.Errorf("check sets both format and range")
	case c.Format != "":
		return &schema.Check{Kind: schema.FormatCheck, Arg: c.Format}, nil
	case c.Range != nil:
		return &schema.Check{Kind: schema.RangeCheck, Arg: strconv.FormatFloat(*c.Range, 'f', -1, 64)}, nil
	}
	return nil, fmt.Errorf("empty check")
}
