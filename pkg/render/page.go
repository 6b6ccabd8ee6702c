package render

import (
	"io"

	"github.com/vango-dev/gmvoice/pkg/vdom"
)

// DefaultClientScript is the path the thin client is served from.
const DefaultClientScript = "/_gm/client.js"

// SessionMetaName names the <meta> element carrying the session id. The
// thin client reads it to attach.
const SessionMetaName = "gm-session"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS blocks.
	Styles []string

	// SessionID identifies the server session the client attaches to.
	SessionID string

	// ClientScript is the path to the thin client JavaScript.
	// Defaults to DefaultClientScript. Ignored when SessionID is empty.
	ClientScript string

	// Lang is the language attribute for the html element.
	// Defaults to "en".
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string
	Content  string
	Property string
}

// RenderPage renders a complete HTML document to the given writer. The
// document shell is itself a VNode tree, so head values are escaped like any
// other attribute or text.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, pageDocument(page)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func pageDocument(page PageData) *vdom.VNode {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	src := page.ClientScript
	if src == "" {
		src = DefaultClientScript
	}
	hasSession := page.SessionID != ""

	return vdom.Html(vdom.Lang(lang),
		vdom.Head(
			vdom.Meta(vdom.AttrKV("charset", "utf-8")),
			vdom.Meta(vdom.Name("viewport"), vdom.AttrKV("content", "width=device-width, initial-scale=1")),
			vdom.If(page.Title != "", vdom.Title(vdom.Text(page.Title))),
			vdom.Range(page.Meta, func(m MetaTag, _ int) *vdom.VNode {
				switch {
				case m.Property != "":
					return vdom.Meta(vdom.AttrKV("property", m.Property), vdom.AttrKV("content", m.Content))
				case m.Name != "":
					return vdom.Meta(vdom.Name(m.Name), vdom.AttrKV("content", m.Content))
				}
				return nil
			}),
			vdom.If(hasSession, vdom.Meta(vdom.Name(SessionMetaName), vdom.AttrKV("content", page.SessionID))),
			vdom.Range(page.StyleSheets, func(href string, _ int) *vdom.VNode {
				return vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href))
			}),
			vdom.Range(page.Styles, func(css string, _ int) *vdom.VNode {
				return vdom.CustomElement("style", vdom.Raw(css))
			}),
		),
		vdom.Body(
			page.Body,
			vdom.If(hasSession, vdom.Script(vdom.Src(src), vdom.AttrKV("defer", true))),
		),
	)
}
