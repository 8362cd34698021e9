package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/dshills/dispatchkit/config"
	"github.com/dshills/dispatchkit/dispatch"
	"github.com/dshills/dispatchkit/hook"
	"github.com/dshills/dispatchkit/ingest"
)

// replayStats tallies dispatch outcomes across a replay run.
type replayStats struct {
	mu        sync.Mutex
	Events    int            `json:"events"`
	Rejected  int            `json:"rejected"`
	Failed    int            `json:"failed"`
	Stopped   int            `json:"stopped"`
	Malformed int            `json:"malformed"`
	Hooks     map[string]int `json:"hooks"`
}

func (s *replayStats) Record(_ config.Event, o dispatch.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events++
	switch {
	case o.Rejected:
		s.Rejected++
	case o.Err != nil:
		s.Failed++
	case o.Result == hook.Stop:
		s.Stopped++
	}
}

// stubHook counts invocations of one catalog name during replay.
type stubHook struct {
	stats *replayStats
	name  string
}

func (h stubHook) OnEvent(context.Context, config.Event) (hook.Result, error) {
	h.stats.mu.Lock()
	h.stats.Hooks[h.name]++
	h.stats.mu.Unlock()
	return hook.Continue, nil
}

// stubCatalog satisfies every hook name the config references. Scripts run
// for real; catalog hooks only count.
func stubCatalog(cfg *config.Config, stats *replayStats) config.Catalog {
	cat := config.Catalog{}
	add := func(name string) {
		if name != "" {
			cat[name] = stubHook{stats: stats, name: name}
		}
	}
	for _, h := range cfg.Hooks {
		add(h.Name)
	}
	for _, r := range cfg.Routes {
		add(r.Hook)
	}
	add(cfg.Fallback)
	return cat
}

func createReplayCommand() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "replay <config> <events.jsonl>",
		Short: "Dispatch a file of JSONL events through the configured kernel",
		Long: `Replay builds the kernel described by the config, substituting a counting
stub for each catalog hook (scripts execute for real), and dispatches every
line of the events file through it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := &replayStats{Hooks: map[string]int{}}

			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			kernel, err := config.Build(cfg, stubCatalog(cfg, stats),
				config.WithExtraMetrics(stats))
			if err != nil {
				return err
			}
			defer kernel.Close()

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			scanner := bufio.NewScanner(f)
			scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
			for scanner.Scan() {
				line := scanner.Bytes()
				if len(line) == 0 {
					continue
				}
				if err := replayLine(ctx, kernel, line); err != nil {
					stats.mu.Lock()
					stats.Malformed++
					stats.mu.Unlock()
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			return printStats(cmd, stats, summary)
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print a JSON summary instead of text")
	return cmd
}

// replayLine runs one raw line through an ingestion scope and dispatches the
// promoted event. The borrowed view never outlives the scope.
func replayLine(ctx context.Context, kernel *config.Kernel, line []byte) error {
	scope := ingest.Begin(
		ingest.WithPool(kernel.Pool()),
		ingest.WithSource(kernel.Source()),
	)
	defer scope.End()

	view := scope.View(line)
	if _, err := view.Field("@this"); err != nil {
		return err
	}
	return kernel.Dispatch(ctx, view.Promote(kernel.Source()))
}

func printStats(cmd *cobra.Command, stats *replayStats, summary bool) error {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	out := cmd.OutOrStdout()
	if summary {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		_, err = out.Write(pretty.Pretty(data))
		return err
	}

	fmt.Fprintf(out, "events:    %d\n", stats.Events)
	fmt.Fprintf(out, "rejected:  %d\n", stats.Rejected)
	fmt.Fprintf(out, "stopped:   %d\n", stats.Stopped)
	fmt.Fprintf(out, "failed:    %d\n", stats.Failed)
	fmt.Fprintf(out, "malformed: %d\n", stats.Malformed)
	for name, n := range stats.Hooks {
		fmt.Fprintf(out, "hook %s: %d\n", name, n)
	}
	return nil
}
