// Package catalog parses course-catalog HTML exports into curriculum
// datasets. It works on saved documents supplied by the caller; it does
// not fetch anything.
//
// Expected markup, as produced by the catalog export:
//
//	<div class="discipline" data-id="calc2" data-course="math">
//	    <h3 class="discipline-name">Calculus II</h3>
//	    <ul class="prerequisites">
//	        <li data-id="calc1">Calculus I</li>
//	    </ul>
//	</div>
package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/unificado/curricula/cgraph"
)

// Parse reads a catalog document and returns the dataset it declares.
// Prerequisite entries referencing disciplines missing from the
// document are kept; graph construction reports them as dangling-edge
// warnings.
func Parse(r io.Reader) (cgraph.Dataset, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return cgraph.Dataset{}, fmt.Errorf("parse catalog document: %w", err)
	}

	var ds cgraph.Dataset
	var parseErr error

	document.Find("div.discipline").Each(func(i int, sel *goquery.Selection) {
		if parseErr != nil {
			return
		}

		id, exists := sel.Attr("data-id")
		if !exists || strings.TrimSpace(id) == "" {
			parseErr = fmt.Errorf("discipline entry %d has no data-id", i)
			return
		}
		course, _ := sel.Attr("data-course")

		name := strings.TrimSpace(sel.Find("h3.discipline-name").First().Text())
		if name == "" {
			name = id
		}

		ds.Disciplines = append(ds.Disciplines, cgraph.Discipline{
			ID:       cgraph.DisciplineID(id),
			Name:     name,
			CourseID: course,
		})

		sel.Find("ul.prerequisites li").Each(func(_ int, li *goquery.Selection) {
			prereq, exists := li.Attr("data-id")
			if !exists || strings.TrimSpace(prereq) == "" {
				return
			}
			ds.Prerequisites = append(ds.Prerequisites, cgraph.PrerequisiteEdge{
				Prerequisite: cgraph.DisciplineID(prereq),
				Dependent:    cgraph.DisciplineID(id),
			})
		})
	})
	if parseErr != nil {
		return cgraph.Dataset{}, parseErr
	}

	return ds, nil
}
