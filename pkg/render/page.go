package render

import (
	"io"

	"github.com/vango-dev/rxview/pkg/vdom"
)

// RootID is the id of the element a page's body is rendered into.
const RootID = "rxview-root"

// Page describes a complete HTML document around a rendered tree.
type Page struct {
	// Body is the settled tree rendered inside the root element.
	Body *vdom.VNode

	// Title is the document title.
	Title string

	// Lang is the html lang attribute. Default: "en".
	Lang string

	// Styles are inline CSS blocks added to the head.
	Styles []string

	// Script is an inline script appended to the body.
	Script string
}

// RenderPage writes a complete document.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	sw := &stickyWriter{w: w}
	sw.WriteString("<!DOCTYPE html>\n")
	sw.WriteString(`<html lang="` + escapeAttr(lang) + `">` + "\n")

	sw.WriteString("<head>\n")
	sw.WriteString(`  <meta charset="utf-8">` + "\n")
	sw.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if page.Title != "" {
		sw.WriteString("  <title>" + escapeHTML(page.Title) + "</title>\n")
	}
	for _, style := range page.Styles {
		sw.WriteString("  <style>" + style + "</style>\n")
	}
	sw.WriteString("</head>\n")

	sw.WriteString("<body>\n")
	sw.WriteString(`<div id="` + RootID + `">`)
	if err := r.renderNode(sw, page.Body, 0); err != nil {
		return err
	}
	sw.WriteString("</div>\n")
	if page.Script != "" {
		sw.WriteString("<script>" + page.Script + "</script>\n")
	}
	sw.WriteString("</body>\n</html>\n")
	return sw.err
}
