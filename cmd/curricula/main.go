// Command curricula runs curriculum graph queries against a dataset
// file: cycle detection, importance ranking, recommendations, path
// planning and progress projection.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/unificado/curricula/cgraph"
)

const programName = "curricula"

func main() {
	app := &cli.App{
		Name:  programName,
		Usage: "query a curriculum prerequisite graph",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "curriculum dataset as JSON",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "curriculum dataset as a catalog HTML export",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "cycles",
				Usage:  "list all prerequisite cycles",
				Action: runCycles,
			},
			{
				Name:   "importance",
				Usage:  "rank disciplines by structural importance",
				Action: runImportance,
			},
			{
				Name:   "recommend",
				Usage:  "list disciplines takeable next",
				Flags:  []cli.Flag{completedFlag()},
				Action: runRecommend,
			},
			{
				Name:      "plan",
				Usage:     "compute a completion order for the target disciplines",
				ArgsUsage: "<target>...",
				Flags:     []cli.Flag{completedFlag()},
				Action:    runPlan,
			},
			{
				Name:  "progress",
				Usage: "show per-discipline status for a student",
				Flags: []cli.Flag{
					completedFlag(),
					&cli.StringFlag{Name: "in-progress", Usage: "comma-separated ids being taken"},
					&cli.StringFlag{Name: "associated", Usage: "comma-separated ids the student is enrolled for"},
				},
				Action: runProgress,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func completedFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "completed",
		Aliases: []string{"c"},
		Usage:   "comma-separated ids already completed",
	}
}

func runCycles(ctx *cli.Context) error {
	g, err := loadGraph(ctx)
	if err != nil {
		return err
	}
	cycles := g.DetectCycles()
	if len(cycles) == 0 {
		fmt.Println("no cycles: curriculum is a valid DAG")
		return nil
	}
	fmt.Printf("%d cycle(s) found:\n", len(cycles))
	for _, cycle := range cycles {
		parts := make([]string, len(cycle))
		for i, id := range cycle {
			parts[i] = string(id)
		}
		fmt.Println("  " + strings.Join(parts, " -> "))
	}
	return nil
}

func runImportance(ctx *cli.Context) error {
	g, err := loadGraph(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUNLOCKS\tDESCENDANTS\tBETWEENNESS")
	for _, row := range g.AnalyzeImportance() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\n",
			row.ID, row.Name, row.OutDegree, row.Descendants, row.Betweenness)
	}
	return w.Flush()
}

func runRecommend(ctx *cli.Context) error {
	g, err := loadGraph(ctx)
	if err != nil {
		return err
	}
	completed, err := resolveSet(g, ctx.String("completed"))
	if err != nil {
		return err
	}
	recs := g.Recommend(completed)
	if len(recs) == 0 {
		fmt.Println("nothing to recommend")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPREREQUISITES")
	for _, rec := range recs {
		parts := make([]string, len(rec.Prereqs))
		for i, id := range rec.Prereqs {
			parts[i] = string(id)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.ID, rec.Name, strings.Join(parts, ","))
	}
	return w.Flush()
}

func runPlan(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return fmt.Errorf("expected at least one target discipline")
	}
	g, err := loadGraph(ctx)
	if err != nil {
		return err
	}
	completed, err := resolveSet(g, ctx.String("completed"))
	if err != nil {
		return err
	}

	targets := make([]cgraph.DisciplineID, 0, ctx.Args().Len())
	for _, arg := range ctx.Args().Slice() {
		id, err := resolve(g, arg)
		if err != nil {
			return err
		}
		targets = append(targets, id)
	}

	plan, err := g.PlanPath(completed, targets)
	if err != nil {
		return err
	}
	if plan.Infeasible {
		return fmt.Errorf("no feasible order: the targets depend on a prerequisite cycle")
	}
	if len(plan.Order) == 0 {
		fmt.Println("nothing left to take")
		return nil
	}
	for i, id := range plan.Order {
		fmt.Printf("%d. %s (%s)\n", i+1, g.Name(id), id)
	}
	return nil
}

func runProgress(ctx *cli.Context) error {
	g, err := loadGraph(ctx)
	if err != nil {
		return err
	}
	completed, err := resolveSet(g, ctx.String("completed"))
	if err != nil {
		return err
	}
	inProgress, err := resolveSet(g, ctx.String("in-progress"))
	if err != nil {
		return err
	}
	associated, err := resolveSet(g, ctx.String("associated"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS")
	for _, entry := range g.ProjectProgress(completed, inProgress, associated) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.ID, entry.Name, entry.Status)
	}
	return w.Flush()
}
