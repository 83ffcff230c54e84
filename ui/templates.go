package ui

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"namecorrector/internal/errors"
)

func (s *Server) loadTemplates() error {
	funcMap := template.FuncMap{
		"t":   s.labels.T,
		"add": func(a, b int) int { return a + b },
	}

	templatesFS, err := fs.Sub(s.assets, "ui/templates")
	if err != nil {
		return errors.Wrap(err, "failed to create templates filesystem")
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html")
	if err != nil {
		return errors.Wrap(err, "failed to parse templates")
	}
	s.templates = templates
	return nil
}

// renderTemplate renders to a buffer first so a template error never leaves
// a half-written page
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template error for %s: %v", templateName, err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// renderIntro converts ui/content/intro.<lang>.md to HTML. A missing file
// yields no intro.
func renderIntro(assets fs.FS, lang string) template.HTML {
	source, err := fs.ReadFile(assets, "ui/content/intro."+lang+".md")
	if err != nil {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	// content is embedded with the binary, not user supplied
	return template.HTML(markdown.ToHTML(source, p, r))
}
