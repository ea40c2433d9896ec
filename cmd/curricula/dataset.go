package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/urfave/cli/v2"

	"github.com/unificado/curricula/catalog"
	"github.com/unificado/curricula/cgraph"
)

// datasetFile is the JSON shape accepted by --file.
type datasetFile struct {
	Disciplines []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Course string `json:"course"`
	} `json:"disciplines"`
	Prerequisites []struct {
		Prerequisite string `json:"prerequisite"`
		Dependent    string `json:"dependent"`
	} `json:"prerequisites"`
}

// loadGraph reads the dataset named by --file or --catalog and builds
// the graph, echoing structural warnings to stderr.
func loadGraph(ctx *cli.Context) (*cgraph.Graph, error) {
	var (
		ds  cgraph.Dataset
		err error
	)
	switch {
	case ctx.String("file") != "":
		ds, err = loadJSON(ctx.String("file"))
	case ctx.String("catalog") != "":
		ds, err = loadCatalog(ctx.String("catalog"))
	default:
		return nil, fmt.Errorf("one of --file or --catalog is required")
	}
	if err != nil {
		return nil, err
	}

	g, err := cgraph.Build(ds)
	if err != nil {
		return nil, err
	}
	for _, w := range g.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return g, nil
}

func loadJSON(path string) (cgraph.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return cgraph.Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	var file datasetFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return cgraph.Dataset{}, fmt.Errorf("decode dataset %s: %w", path, err)
	}

	var ds cgraph.Dataset
	for _, d := range file.Disciplines {
		ds.Disciplines = append(ds.Disciplines, cgraph.Discipline{
			ID:       cgraph.DisciplineID(d.ID),
			Name:     d.Name,
			CourseID: d.Course,
		})
	}
	for _, e := range file.Prerequisites {
		ds.Prerequisites = append(ds.Prerequisites, cgraph.PrerequisiteEdge{
			Prerequisite: cgraph.DisciplineID(e.Prerequisite),
			Dependent:    cgraph.DisciplineID(e.Dependent),
		})
	}
	return ds, nil
}

func loadCatalog(path string) (cgraph.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return cgraph.Dataset{}, fmt.Errorf("read catalog: %w", err)
	}
	defer f.Close()
	return catalog.Parse(f)
}

// maxSuggestionDistance bounds how far a typo may be from a known id or
// name before we stop suggesting it.
const maxSuggestionDistance = 3

// resolve maps a user-supplied argument to a discipline id: exact id
// first, then case-insensitive name match, otherwise an error carrying
// the closest known candidate.
func resolve(g *cgraph.Graph, arg string) (cgraph.DisciplineID, error) {
	if g.HasNode(cgraph.DisciplineID(arg)) {
		return cgraph.DisciplineID(arg), nil
	}

	lowered := strings.ToLower(arg)
	for _, id := range g.SortedNodeIDs() {
		if strings.ToLower(g.Name(id)) == lowered {
			return id, nil
		}
	}

	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, id := range g.SortedNodeIDs() {
		for _, candidate := range []string{string(id), g.Name(id)} {
			d := levenshtein.ComputeDistance(lowered, strings.ToLower(candidate))
			if d < bestDistance {
				bestDistance = d
				best = candidate
			}
		}
	}
	if best != "" {
		return "", fmt.Errorf("unknown discipline %q (did you mean %q?)", arg, best)
	}
	return "", fmt.Errorf("unknown discipline %q", arg)
}

// resolveSet parses a comma-separated list of ids or names.
func resolveSet(g *cgraph.Graph, value string) (cgraph.IDSet, error) {
	set := make(cgraph.IDSet)
	if strings.TrimSpace(value) == "" {
		return set, nil
	}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := resolve(g, part)
		if err != nil {
			return nil, err
		}
		set[id] = true
	}
	return set, nil
}
