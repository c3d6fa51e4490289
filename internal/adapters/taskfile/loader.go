// Package taskfile loads task definitions from a YAML taskfile.
package taskfile

import (
	"bytes"
	"errors"
	"io"
	"os"

	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.TaskLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

var _ ports.TaskLoader = (*Loader)(nil)

// Load reads the taskfile at path and returns a validated registry.
func (l *Loader) Load(path string) (*domain.Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(domain.Because(domain.ErrTaskfileReadFailed, err), "path", path)
	}

	reg, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	l.logger.Debug("loaded taskfile " + path)
	return reg, nil
}

// Parse builds a validated registry from taskfile contents. Tasks are
// registered in the order they appear in the document.
func Parse(data []byte) (*domain.Registry, error) {
	var spellfile Spellfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spellfile); err != nil && !errors.Is(err, io.EOF) {
		return nil, domain.Because(domain.ErrTaskfileParseFailed, err)
	}

	var order taskOrder
	if err := yaml.Unmarshal(data, &order); err != nil {
		return nil, domain.Because(domain.ErrTaskfileParseFailed, err)
	}

	reg := domain.NewRegistry()
	reg.SetDefaults(spellfile.Defaults)

	for _, name := range taskNames(&order.Tasks) {
		task, err := buildTask(name, spellfile.Tasks[name])
		if err != nil {
			return nil, err
		}
		if err := reg.Register(task); err != nil {
			return nil, err
		}
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

func taskNames(node *yaml.Node) []string {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	names := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		names = append(names, node.Content[i].Value)
	}
	return names
}

func buildTask(name string, dto TaskDTO) (*domain.Task, error) {
	params := make([]domain.Param, 0, len(dto.Params))
	for _, p := range dto.Params {
		role, ok := domain.ParsePathRole(p.Role)
		if !ok {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidPathRole, name+domain.PathDelimiter+p.Name), "task", name), "param", p.Name)
		}
		param := domain.Param{
			Name: p.Name,
			Help: p.Help,
			Role: role,
			List: p.List,
		}
		if p.Default.Kind != 0 {
			var def any
			if err := p.Default.Decode(&def); err != nil {
				return nil, zerr.With(domain.Because(domain.ErrTaskfileParseFailed, err), "task", name)
			}
			param.Default = def
			param.HasDefault = true
		}
		params = append(params, param)
	}

	body, err := newCommandBody(name, dto)
	if err != nil {
		return nil, err
	}
	derive, err := newDerive(name, dto.Derive)
	if err != nil {
		return nil, err
	}

	return &domain.Task{
		Name:   name,
		Help:   dto.Help,
		Params: params,
		Pre:    dto.Pre,
		Derive: derive,
		Body:   body,
	}, nil
}
