package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Template names, one per generation task.
const (
	TemplateOptimizeResume = "optimize_resume"
	TemplateCoverLetter    = "cover_letter"
	TemplateAtsScore       = "ats_score"
)

// placeholderPattern matches doubled-brace variables like {{resume_text}}.
var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

type PromptService interface {
	// Render loads the named template and substitutes every placeholder with
	// the matching variable. A placeholder without a supplied variable is an
	// ErrMissingVariable; variables the template never references are ignored.
	Render(name string, vars map[string]string) (string, error)
}

type promptService struct {
	dir string

	mu    sync.RWMutex
	cache map[string]string
}

func NewPromptService(dir string) PromptService {
	return &promptService{
		dir:   dir,
		cache: make(map[string]string),
	}
}

func (p *promptService) Render(name string, vars map[string]string) (string, error) {
	template, err := p.load(name)
	if err != nil {
		return "", err
	}

	placeholders := placeholderPattern.FindAllStringSubmatch(template, -1)
	for _, match := range placeholders {
		if _, ok := vars[match[1]]; !ok {
			return "", fmt.Errorf("%w: %q in template %q", ErrMissingVariable, match[1], name)
		}
	}

	rendered := template
	for key, value := range vars {
		rendered = strings.ReplaceAll(rendered, "{{"+key+"}}", value)
	}

	return rendered, nil
}

// load reads a template file once and caches it; templates are immutable at
// runtime.
func (p *promptService) load(name string) (string, error) {
	p.mu.RLock()
	if template, ok := p.cache[name]; ok {
		p.mu.RUnlock()
		return template, nil
	}
	p.mu.RUnlock()

	path := filepath.Join(p.dir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q (%s)", ErrTemplateNotFound, name, path)
	}

	template := string(data)

	p.mu.Lock()
	p.cache[name] = template
	p.mu.Unlock()

	return template, nil
}
