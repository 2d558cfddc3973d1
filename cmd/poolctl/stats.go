package main

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/jmi2k/vertexpool/pool"
	"github.com/jmi2k/vertexpool/pool/storage"
)

var (
	statsCapacity int
	statsMinOrder uint8
	statsOps      int
	statsSeed     int64
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsCapacity, "capacity", 4096, "Pool capacity in elements (rounded up to a power of two)")
	cmd.Flags().Uint8Var(&statsMinOrder, "min-order", 0, "Smallest allocatable block, as a power-of-two exponent")
	cmd.Flags().IntVar(&statsOps, "ops", 10000, "Number of random alloc/free operations to simulate")
	cmd.Flags().Int64Var(&statsSeed, "seed", 1, "Workload random seed")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Simulate an alloc/free workload and report pool occupancy",
		Long: `The stats command runs a randomized allocation workload against an
in-memory pool, reports occupancy at the workload's peak and end, then frees
every live block and verifies the tracking tree returned to its pristine shape.

Example:
  poolctl stats --capacity 65536 --min-order 2 --ops 100000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

func runStats() error {
	st := storage.NewMem(int64(statsCapacity) * 8)
	p, err := pool.New[uint64](st, statsCapacity, statsMinOrder)
	if err != nil {
		return err
	}
	fresh, err := pool.New[uint64](storage.NewMem(1), statsCapacity, statsMinOrder)
	if err != nil {
		return err
	}

	printVerbose("simulating %d ops on a %d-element pool (min order %d, seed %d)\n",
		statsOps, p.Capacity(), p.MinOrder(), statsSeed)

	rng := rand.New(rand.NewSource(statsSeed))
	maxReq := p.Capacity() / 8
	if maxReq < 1 {
		maxReq = 1
	}
	var live []pool.Handle[uint64]
	var failed, peak int

	for op := 0; op < statsOps; op++ {
		if len(live) > 0 && rng.Intn(3) == 0 {
			i := rng.Intn(len(live))
			if err := p.Free(live[i]); err != nil {
				return err
			}
			live = append(live[:i], live[i+1:]...)
			continue
		}
		h, err := p.Alloc(1 + rng.Intn(maxReq))
		if err != nil {
			if !errors.Is(err, pool.ErrNoSpace) {
				return err
			}
			failed++
			continue
		}
		live = append(live, h)
		if s := p.Stats(); s.LiveElems > peak {
			peak = s.LiveElems
		}
	}

	s := p.Stats()
	printInfo("capacity:      %d elements (%d bytes, stride %d)\n", s.Capacity, s.Capacity*s.Stride, s.Stride)
	printInfo("orders:        %d..%d\n", s.MinOrder, s.MaxOrder)
	printInfo("live blocks:   %d\n", s.LiveBlocks)
	printInfo("live elements: %d (%.1f%% of capacity, peak %.1f%%)\n",
		s.LiveElems,
		100*float64(s.LiveElems)/float64(s.Capacity),
		100*float64(peak)/float64(s.Capacity))
	if s.LargestFree >= 0 {
		printInfo("largest free:  order %d (%d elements)\n", s.LargestFree, 1<<s.LargestFree)
	} else {
		printInfo("largest free:  none (exhausted)\n")
	}
	printInfo("failed allocs: %d of %d ops\n", failed, statsOps)

	for _, h := range live {
		if err := p.Free(h); err != nil {
			return err
		}
	}
	if !p.SameShape(fresh) {
		return fmt.Errorf("drained pool does not match a pristine pool")
	}
	printInfo("drain check:   ok (tree restored to pristine shape)\n")
	return nil
}
