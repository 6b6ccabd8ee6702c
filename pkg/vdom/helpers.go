package vdom

import (
	"fmt"
	"strings"
)

// Text returns a text node. The renderer escapes it.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf is Text with fmt.Sprintf formatting.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw returns a node whose content is written unescaped. Only pass trusted
// markup, such as the page's own inline CSS.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment returns a wrapperless group. It accepts the same child
// arguments as an element factory; attributes and handlers are ignored.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment, Children: make([]*VNode, 0, len(children))}
	for _, child := range children {
		switch v := child.(type) {
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		case Component:
			node.Children = append(node.Children, &VNode{Kind: KindComponent, Comp: v})
		}
	}
	return node
}

// If returns node when cond holds and nil otherwise. Element factories
// skip nil children.
func If(cond bool, node *VNode) *VNode {
	if !cond {
		return nil
	}
	return node
}

// Range calls fn for each item and keeps the non-nil results in order.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(item, i); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// TextContent concatenates the text below node, rendering components on
// the way. Raw markup contributes nothing.
func TextContent(node *VNode) string {
	var b strings.Builder
	writeText(&b, node)
	return b.String()
}

func writeText(b *strings.Builder, node *VNode) {
	if node == nil {
		return
	}
	switch node.Kind {
	case KindText:
		b.WriteString(node.Text)
	case KindComponent:
		if node.Comp != nil {
			writeText(b, node.Comp.Render())
		}
	case KindElement, KindFragment:
		for _, child := range node.Children {
			writeText(b, child)
		}
	}
}

// FindByTag returns the first element named tag, depth first.
func FindByTag(node *VNode, tag string) *VNode {
	if node == nil {
		return nil
	}
	if node.Kind == KindElement && node.Tag == tag {
		return node
	}
	for _, child := range node.Children {
		if found := FindByTag(child, tag); found != nil {
			return found
		}
	}
	return nil
}
