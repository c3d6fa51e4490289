package taskfile

import "gopkg.in/yaml.v3"

// Spellfile represents the structure of the spellfile.yaml taskfile.
type Spellfile struct {
	Version  string             `yaml:"version"`
	Defaults map[string]any     `yaml:"defaults"`
	Tasks    map[string]TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the taskfile.
type TaskDTO struct {
	Help   string            `yaml:"help"`
	Pre    []string          `yaml:"pre"`
	Params []ParamDTO        `yaml:"params"`
	Derive map[string]string `yaml:"derive"`
	Cmd    []string          `yaml:"cmd"`
	Warn   bool              `yaml:"warn"`
	Echo   *bool             `yaml:"echo"`
	Dir    string            `yaml:"dir"`
	Env    map[string]string `yaml:"env"`
}

// ParamDTO represents a declared task parameter. A bare string is shorthand
// for a parameter with only a name.
type ParamDTO struct {
	Name    string    `yaml:"name"`
	Help    string    `yaml:"help"`
	Default yaml.Node `yaml:"default"`
	Role    string    `yaml:"role"`
	List    bool      `yaml:"list"`
}

// UnmarshalYAML accepts either a mapping or a bare parameter name.
func (p *ParamDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Name = node.Value
		return nil
	}
	type plain ParamDTO
	return node.Decode((*plain)(p))
}

// taskOrder is decoded separately to recover the order tasks are written in.
type taskOrder struct {
	Tasks yaml.Node `yaml:"tasks"`
}
