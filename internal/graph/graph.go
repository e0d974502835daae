// Package graph renders a repository's branch/version DAG as a DOT graph,
// and optionally rasterises it to PNG. It is a read-only diagnostic view:
// nothing here ever mutates repodata.RepositoryData. Grounded on
// cmd/gitgraph's dot.NewGraph(dot.Directed)/graph.Node/graph.Edge usage
// (rcowham-gitp4transfer), generalised from git commits to biver versions;
// the PNG rasterisation step adds a real use of goccy/go-graphviz, which
// the teacher's go.mod declares but never exercises.
package graph

import (
	"bytes"
	"fmt"

	"github.com/emicklei/dot"
	"github.com/goccy/go-graphviz"

	"github.com/igapanovich/biver/internal/repodata"
	"github.com/igapanovich/biver/internal/versionid"
)

// Build renders data's versions and branches as a directed DOT graph: one
// node per version (labelled with its nickname and a truncated id), one
// edge per parent link, an external label naming the branch at each branch
// tip, and a filled node marking the current head.
func Build(data *repodata.RepositoryData) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "BT")

	nodes := make(map[versionid.ID]dot.Node, len(data.Versions))
	for _, v := range data.Versions {
		label := fmt.Sprintf("%s\\n%s", v.Nickname, shortID(v.ID))
		node := g.Node(shortID(v.ID)).Label(label)
		nodes[v.ID] = node
	}

	for _, v := range data.Versions {
		if v.Parent == nil {
			continue
		}
		parentNode, ok := nodes[*v.Parent]
		if !ok {
			continue
		}
		g.Edge(parentNode, nodes[v.ID])
	}

	for branch, tip := range data.Branches {
		if node, ok := nodes[tip]; ok {
			node.Attr("xlabel", branch)
		}
	}

	if headID, ok := headVersionID(data); ok {
		if node, ok := nodes[headID]; ok {
			node.Attr("style", "filled").Attr("fillcolor", "lightyellow")
		}
	}

	return g
}

// headVersionID resolves the current head's version id without panicking
// on an unresolved document (graph rendering is read-only diagnostics, not
// a place to crash a CLI command).
func headVersionID(data *repodata.RepositoryData) (idOut versionid.ID, ok bool) {
	switch data.Head.Kind {
	case repodata.HeadKindVersion:
		return data.Head.Version, true
	case repodata.HeadKindBranch:
		tip, exists := data.Branches[data.Head.Branch]
		return tip, exists
	default:
		return idOut, false
	}
}

func shortID(id versionid.ID) string {
	const prefixLen = 8
	hex := fmt.Sprintf("%x", id[:])
	if len(hex) > prefixLen {
		return hex[:prefixLen]
	}
	return hex
}

// RenderPNG rasterises a DOT graph to PNG bytes via go-graphviz.
func RenderPNG(g *dot.Graph) ([]byte, error) {
	gv := graphviz.New()
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(g.String()))
	if err != nil {
		return nil, fmt.Errorf("graph: parsing DOT output: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(parsed, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("graph: rendering PNG: %w", err)
	}
	return buf.Bytes(), nil
}
