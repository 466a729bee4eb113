// cmd/run.go
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queuesim/desim/sim/engine"
	"github.com/queuesim/desim/sim/model"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compile a model description and run the simulation",
	Run: func(cmd *cobra.Command, args []string) {
		logrus.SetLevel(parseLogLevel())
		os.Exit(runSimulation())
	},
}

// runSimulation returns the process exit code: 0 on success, 1 if the
// model failed to compile, 2 if the run itself failed or its conservation
// check did not hold (§6 CLI surface, §7 propagation policy).
func runSimulation() int {
	logrus.Infof("loading model description from %s", modelPath)
	result, err := model.LoadAndCompile(modelPath)
	if err != nil {
		logrus.Errorf("model compilation failed: %v", err)
		return 1
	}
	k := result.Kernel

	logrus.Infof("running for %.1f minutes (warmup %.1f minutes)", result.EndTimeMinutes, result.WarmupMinutes)
	if err := k.Run(result.EndTimeMinutes, result.WarmupMinutes); err != nil {
		logrus.Errorf("simulation run failed: %v", err)
		return 2
	}

	if !k.ValidateConservation() {
		logrus.Error("conservation invariant failed at end of run")
		return 2
	}

	printSummary(k)
	if visual {
		printVisualSnapshot(k)
	}

	for _, d := range k.Diagnostics() {
		logrus.Warnf("[%s t=%.2f] %s (entity=%s resource=%s)", d.Kind, d.Time, d.Message, d.EntityID, d.ResourceID)
	}

	logrus.Info("simulation complete")
	return 0
}

func printSummary(k *engine.Kernel) {
	stats := k.GetStatistics()
	fmt.Printf("simulation { now=%.2f events=%d created=%d departed=%d active=%d }\n",
		stats.Now, stats.EventCount, stats.EntitiesCreated, stats.EntitiesDeparted, stats.EntitiesActive)

	names := make([]string, 0, len(stats.Tallies))
	for name := range stats.Tallies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := stats.Tallies[name]
		fmt.Printf("tally %-20s count=%-6d mean=%-8.3f std_dev=%-8.3f ci95=[%.3f, %.3f]\n",
			name, s.Count, s.Mean, s.StdDev, s.CI95Lower, s.CI95Upper)
	}

	tsNames := make([]string, 0, len(stats.TimeSeries))
	for name := range stats.TimeSeries {
		tsNames = append(tsNames, name)
	}
	sort.Strings(tsNames)
	for _, name := range tsNames {
		s := stats.TimeSeries[name]
		fmt.Printf("time_persistent %-20s time_average=%-8.3f current=%-8.3f\n", name, s.TimeAverage, s.CurrentValue)
	}

	ids := make([]string, 0, len(stats.Resources))
	for id := range stats.Resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		r := stats.Resources[id]
		fmt.Printf("resource %-20s capacity=%-4d utilization=%.1f%% queue_length(avg)=%.3f\n",
			r.Name, r.Capacity, r.UtilizationPercent, r.QueueLength.TimeAverage)
	}
}

func printVisualSnapshot(k *engine.Kernel) {
	fmt.Println("--- visual snapshot ---")
	for _, r := range k.VisualResources() {
		fmt.Printf("resource %-12s pos=(%d,%d) load=%d/%d queued=%d\n", r.Name, r.Position.Row, r.Position.Col, r.Load, r.Capacity, r.Queued)
	}
	for _, e := range k.VisualEntities() {
		fmt.Printf("entity %-16s class=%-10s state=%-10s pos=(%d,%d)\n", e.ID, e.Class, e.State, e.Position.Row, e.Position.Col)
	}
}
