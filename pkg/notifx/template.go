package notifx

import (
	"bytes"
	htmltemplate "html/template"
	"sync"
	texttemplate "text/template"
)

type templatePair struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// TemplateRegistry stores named HTML and plain-text templates. HTML bodies are
// escaped by html/template; text bodies are rendered verbatim.
type TemplateRegistry struct {
	templates map[string]templatePair
	mu        sync.RWMutex
}

// NewTemplateRegistry creates a new template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]templatePair),
	}
}

// Register parses and stores a template pair by name.
func (r *TemplateRegistry) Register(name, htmlTmpl, textTmpl string) error {
	if htmlTmpl == "" && textTmpl == "" {
		return notifxErrors.New(ErrTemplateParse).WithDetail("template", name).WithDetail("reason", "empty template")
	}

	var pair templatePair
	if htmlTmpl != "" {
		t, err := htmltemplate.New(name).Parse(htmlTmpl)
		if err != nil {
			return notifxErrors.NewWithCause(ErrTemplateParse, err).WithDetail("template", name)
		}
		pair.html = t
	}
	if textTmpl != "" {
		t, err := texttemplate.New(name).Parse(textTmpl)
		if err != nil {
			return notifxErrors.NewWithCause(ErrTemplateParse, err).WithDetail("template", name)
		}
		pair.text = t
	}

	r.mu.Lock()
	r.templates[name] = pair
	r.mu.Unlock()

	return nil
}

// Render executes a named template pair with the given data.
func (r *TemplateRegistry) Render(name string, data any) (RenderedBody, error) {
	r.mu.RLock()
	pair, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return RenderedBody{}, notifxErrors.New(ErrTemplateNotFound).WithDetail("template", name)
	}

	var out RenderedBody
	var buf bytes.Buffer
	if pair.html != nil {
		if err := pair.html.Execute(&buf, data); err != nil {
			return RenderedBody{}, notifxErrors.NewWithCause(ErrTemplateRender, err).WithDetail("template", name)
		}
		out.HTML = buf.String()
		buf.Reset()
	}
	if pair.text != nil {
		if err := pair.text.Execute(&buf, data); err != nil {
			return RenderedBody{}, notifxErrors.NewWithCause(ErrTemplateRender, err).WithDetail("template", name)
		}
		out.Text = buf.String()
	}

	return out, nil
}
