package vdom

import "strings"

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrKV sets any attribute by name. It covers the attributes that have no
// helper of their own (charset, content, property, defer).
func AttrKV(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class joins the non-blank class names with single spaces.
func Class(classes ...string) Attr {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return attr("class", strings.Join(parts, " "))
}

// Data sets data-<key>. Data("view", "welcome") renders data-view="welcome".
func Data(key, value string) Attr { return attr("data-"+key, value) }

func Role(role string) Attr           { return attr("role", role) }
func AriaLabel(label string) Attr     { return attr("aria-label", label) }
func AriaHidden(hidden bool) Attr     { return attr("aria-hidden", hidden) }
func AriaDisabled(disabled bool) Attr { return attr("aria-disabled", disabled) }

// TitleAttr sets the title attribute. Title is the <title> element.
func TitleAttr(title string) Attr { return attr("title", title) }

func Lang(lang string) Attr { return attr("lang", lang) }
func Name(name string) Attr { return attr("name", name) }
func Href(url string) Attr  { return attr("href", url) }
func Rel(rel string) Attr   { return attr("rel", rel) }
func Type(t string) Attr    { return attr("type", t) }
func Src(url string) Attr   { return attr("src", url) }

// Alt sets the alt text. Alt("") is still rendered and marks an image as
// decorative.
func Alt(text string) Attr { return attr("alt", text) }

// Disabled marks a control as disabled.
func Disabled() Attr { return attr("disabled", true) }

// Draggable renders draggable="true" or draggable="false". The attribute is
// enumerated, not boolean, so false must be spelled out.
func Draggable(draggable bool) Attr {
	if draggable {
		return attr("draggable", "true")
	}
	return attr("draggable", "false")
}
