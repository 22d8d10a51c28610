package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootPage = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childPage = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// pageType codes whether the command is the root or a child
type pageType int

const (
	rootDoc pageType = iota
	childDoc
)

// meta is for describing the position/info for a command doc page
type meta struct {
	pageType pageType
	title    string
	navOrder int
	parent   string
}

// map from the base Markdown file name to its build meta
var metaMap = map[string]meta{
	"graphtpp":            {rootDoc, "graphtpp", 0, ""},
	"graphtpp_encode":     {childDoc, "encode", 0, "graphtpp"},
	"graphtpp_rank":       {childDoc, "rank", 1, "graphtpp"},
	"graphtpp_properties": {childDoc, "properties", 2, "graphtpp"},
}

// newDocsCmd writes the Markdown documentation of every command
func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "docs [dir]",
		Short:  "Write Markdown documentation for each command",
		Args:   cobra.MaximumNArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "./docs"
			if len(args) > 0 {
				dir = args[0]
			}
			root := cmd.Root()
			root.DisableAutoGenTag = true
			return doc.GenMarkdownTreeCustom(root, dir, filePrepender, linkHandler)
		},
	}
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))
	m, ok := metaMap[base]
	if !ok {
		return ""
	}

	switch m.pageType {
	case rootDoc:
		return fmt.Sprintf(rootPage, m.title, m.navOrder)
	case childDoc:
		return fmt.Sprintf(childPage, m.title, m.parent, m.navOrder)
	}
	return ""
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	if base == "graphtpp" {
		return "/"
	}
	return base
}
