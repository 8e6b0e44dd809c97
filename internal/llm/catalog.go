package llm

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ModelInfo describes a selectable model and the Clarifai path it maps to.
type ModelInfo struct {
	Name        string `json:"name" yaml:"name"`
	Path        string `json:"path" yaml:"path"`
	Provider    string `json:"provider" yaml:"provider"`
	Description string `json:"description" yaml:"description"`
	Speed       string `json:"speed" yaml:"speed"`
	Cost        string `json:"cost" yaml:"cost"`
}

// Catalog resolves user-facing model names. It is injected wherever model
// metadata is needed so tests can substitute their own table.
type Catalog interface {
	Lookup(name string) (ModelInfo, bool)
	Resolve(name string) ModelInfo
	List() []ModelInfo
	Default() ModelInfo
}

// DefaultModelPath is used for names the catalog does not know.
const DefaultModelPath = "openai/chat-completion/models/gpt-4o"

// DefaultModels is the built-in model table.
var DefaultModels = []ModelInfo{
	{
		Name:        "gpt-4o",
		Path:        "openai/chat-completion/models/gpt-4o",
		Provider:    "OpenAI",
		Description: "Advanced reasoning and analysis",
		Speed:       "Medium",
		Cost:        "High",
	},
	{
		Name:        "gpt-4o-mini",
		Path:        "openai/chat-completion/models/gpt-4o-mini",
		Provider:    "OpenAI",
		Description: "Fast responses, cost-effective",
		Speed:       "Fast",
		Cost:        "Low",
	},
	{
		Name:        "claude-3-5-sonnet-20241022",
		Path:        "anthropic/completion/models/claude-3-5-sonnet-20241022",
		Provider:    "Anthropic",
		Description: "Detailed analysis and reasoning",
		Speed:       "Medium",
		Cost:        "Medium",
	},
	{
		Name:        "meta-llama/Meta-Llama-3.1-8B-Instruct",
		Path:        "meta/Llama-2/models/llama2-70b-chat",
		Provider:    "Meta",
		Description: "Open source, customizable",
		Speed:       "Fast",
		Cost:        "Low",
	},
}

// StaticCatalog is an ordered, in-memory Catalog.
type StaticCatalog struct {
	models      []ModelInfo
	byName      map[string]ModelInfo
	defaultName string
}

// NewStaticCatalog builds a catalog from models. defaultName must be one of
// them; otherwise the first entry is the default.
func NewStaticCatalog(models []ModelInfo, defaultName string) (*StaticCatalog, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("model catalog is empty")
	}
	c := &StaticCatalog{byName: make(map[string]ModelInfo, len(models))}
	for _, m := range models {
		if m.Name == "" || m.Path == "" {
			return nil, fmt.Errorf("model catalog entry needs both name and path: %+v", m)
		}
		if _, dup := c.byName[m.Name]; dup {
			return nil, fmt.Errorf("duplicate model %q in catalog", m.Name)
		}
		c.byName[m.Name] = m
		c.models = append(c.models, m)
	}
	c.defaultName = models[0].Name
	if _, ok := c.byName[defaultName]; ok {
		c.defaultName = defaultName
	}
	return c, nil
}

// LoadCatalog reads a YAML list of ModelInfo from path.
func LoadCatalog(path, defaultName string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model catalog: %w", err)
	}
	var file struct {
		Models []ModelInfo `yaml:"models"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse model catalog: %w", err)
	}
	return NewStaticCatalog(file.Models, defaultName)
}

func (c *StaticCatalog) Lookup(name string) (ModelInfo, bool) {
	m, ok := c.byName[name]
	return m, ok
}

// Resolve always returns a usable record: unknown names keep their name but
// fall back to the default gpt-4o path.
func (c *StaticCatalog) Resolve(name string) ModelInfo {
	if m, ok := c.byName[name]; ok {
		return m
	}
	return ModelInfo{
		Name:        name,
		Path:        DefaultModelPath,
		Provider:    "Unknown",
		Description: "Custom model",
		Speed:       "Unknown",
		Cost:        "Unknown",
	}
}

func (c *StaticCatalog) List() []ModelInfo {
	out := make([]ModelInfo, len(c.models))
	copy(out, c.models)
	return out
}

func (c *StaticCatalog) Default() ModelInfo {
	return c.byName[c.defaultName]
}

// Names returns the catalog's model names sorted alphabetically.
func (c *StaticCatalog) Names() []string {
	names := make([]string, 0, len(c.models))
	for _, m := range c.models {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names
}
