package taskfile

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/spf13/cast"
	"go.trai.ch/spell/internal/adapters/config"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/zerr"
)

// funcs returns the template helpers. ctx looks values up in node, which may
// be nil while templates are only being parsed.
func funcs(node *domain.Node) template.FuncMap {
	return template.FuncMap{
		"ctx": func(path string) (any, error) {
			if node == nil {
				return nil, nil
			}
			return node.LookupDotted(path)
		},
		"join": func(v any, sep string) string {
			return strings.Join(toStrings(v), sep)
		},
		"list": func(v any) string {
			items := toStrings(v)
			quoted := make([]string, len(items))
			for i, item := range items {
				quoted[i] = strconv.Quote(item)
			}
			return "[" + strings.Join(quoted, ", ") + "]"
		},
		"replace": func(old, replacement, s string) string {
			return strings.ReplaceAll(s, old, replacement)
		},
		"swapext": func(ext string, v any) []string {
			items := toStrings(v)
			out := make([]string, len(items))
			for i, item := range items {
				out[i] = strings.TrimSuffix(item, filepath.Ext(item)) + ext
			}
			return out
		},
	}
}

func toStrings(v any) []string {
	switch typed := v.(type) {
	case nil:
		return nil
	case domain.PathDescriptor:
		return []string{typed.Path}
	case []domain.PathDescriptor:
		out := make([]string, len(typed))
		for i, p := range typed {
			out[i] = p.Path
		}
		return out
	case []any:
		out := make([]string, len(typed))
		for i, item := range typed {
			out[i] = fmt.Sprint(item)
		}
		return out
	case string:
		return []string{typed}
	default:
		return cast.ToStringSlice(v)
	}
}

func parseTemplate(name, text string) (*template.Template, error) {
	return template.New(name).Option("missingkey=error").Funcs(funcs(nil)).Parse(text)
}

func render(tmpl *template.Template, node *domain.Node, data any) (string, error) {
	bound, err := tmpl.Clone()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := bound.Funcs(funcs(node)).Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// commandBody runs each rendered command line of a taskfile task.
type commandBody struct {
	task      string
	templates []*template.Template
	opts      []domain.CommandOption
}

func newCommandBody(name string, dto TaskDTO) (domain.Body, error) {
	if len(dto.Cmd) == 0 {
		return nil, nil
	}
	body := &commandBody{task: name}
	for i, text := range dto.Cmd {
		tmpl, err := parseTemplate(fmt.Sprintf("%s.cmd[%d]", name, i), text)
		if err != nil {
			return nil, templateError(err, name)
		}
		body.templates = append(body.templates, tmpl)
	}

	if dto.Warn {
		body.opts = append(body.opts, domain.WithWarn())
	}
	if dto.Echo != nil {
		body.opts = append(body.opts, domain.WithEcho(*dto.Echo))
	}
	if dto.Dir != "" {
		body.opts = append(body.opts, domain.WithDir(dto.Dir))
	}
	if len(dto.Env) > 0 {
		body.opts = append(body.opts, domain.WithEnv(dto.Env))
	}
	return body.run, nil
}

func (c *commandBody) run(ctx context.Context, inv domain.Invocation) error {
	data := map[string]any(maps.Clone(inv.Args()))
	for _, tmpl := range c.templates {
		text, err := render(tmpl, inv.Context(), data)
		if err != nil {
			return templateError(err, c.task)
		}
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if _, err := inv.Run(ctx, line, c.opts...); err != nil {
				return err
			}
		}
	}
	return nil
}

// newDerive builds a DeriveFunc rendering each template over the context.
// Rendered text is interpreted as YAML so a template can produce a list.
func newDerive(name string, specs map[string]string) (domain.DeriveFunc, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	templates := make(map[string]*template.Template, len(specs))
	for _, key := range slices.Sorted(maps.Keys(specs)) {
		tmpl, err := parseTemplate(name+".derive."+key, specs[key])
		if err != nil {
			return nil, templateError(err, name)
		}
		templates[key] = tmpl
	}

	return func(node *domain.Node) (map[string]any, error) {
		data := node.Map()
		out := make(map[string]any, len(templates))
		for key, tmpl := range templates {
			text, err := render(tmpl, node, data)
			if err != nil {
				return nil, zerr.With(templateError(err, name), "param", key)
			}
			out[key] = config.ParseValue(text)
		}
		return out, nil
	}, nil
}

func templateError(err error, task string) error {
	return zerr.With(domain.Because(domain.ErrTemplateFailed, err), "task", task)
}
