// SPDX-License-Identifier: Apache-2.0

// Command allocdemo drives the allocator variants through list and vector
// containers with a large fixed-size record, tracing every acquisition and
// release.
package main

import (
	"container/list"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	alloc "github.com/wundergraph/go-allocator"
)

// person is the demo record: two fixed-size name fields plus an age, 2056
// bytes per element.
type person struct {
	firstName [1024]byte
	lastName  [1024]byte
	age       int64
}

// Finalize logs the destruction of a person record.
func (p person) Finalize() {
	log.Info().Msg("person destroyed")
}

var log zerolog.Logger

func newPerson(first, last string, age int64) person {
	log.Info().Msg("person created")
	p := person{age: age}
	copy(p.firstName[:], first)
	copy(p.lastName[:], last)
	return p
}

func main() {
	var (
		count int
		trace bool
	)
	cmd := &cobra.Command{
		Use:          "allocdemo",
		Short:        "Exercise the allocator variants with list and vector containers",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(count, trace)
		},
	}
	cmd.Flags().IntVar(&count, "count", 3, "number of elements to insert per container")
	cmd.Flags().BoolVar(&trace, "trace", true, "emit the allocate/deallocate trace")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(count int, trace bool) error {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	traceLog := zerolog.Nop()
	if trace {
		traceLog = log
	}

	log.Info().Msg("list with default allocation")
	runDefaultList(count)

	log.Info().Msg("vector with default allocation")
	runDefaultVector(count)

	log.Info().Msg("list with passthrough allocator")
	if err := runList(alloc.NewPassthrough[person](alloc.WithLogger(traceLog)), count); err != nil {
		return err
	}

	log.Info().Msg("vector with passthrough allocator")
	if err := runVector(alloc.NewPassthrough[person](alloc.WithLogger(traceLog)), count); err != nil {
		return err
	}

	log.Info().Msg("list with counted allocator")
	ca := alloc.NewCounted[person](alloc.WithLogger(traceLog))
	if err := runList(ca, count); err != nil {
		return err
	}
	log.Info().
		Int64("outstanding_allocations", ca.OutstandingAllocations()).
		Int64("outstanding_constructions", ca.OutstandingConstructions()).
		Msg("counted list balanced")
	ca.Close()

	log.Info().Msg("vector with counted allocator")
	cv := alloc.NewCounted[person](alloc.WithLogger(traceLog))
	if err := runVector(cv, count); err != nil {
		return err
	}
	log.Info().
		Int64("outstanding_allocations", cv.OutstandingAllocations()).
		Int64("outstanding_constructions", cv.OutstandingConstructions()).
		Msg("counted vector balanced")
	cv.Close()

	return nil
}

// runDefaultList is the baseline leg: a stdlib list over the same records,
// no allocator involved. The records are finalized at the end of the run,
// where the managed legs destroy theirs.
func runDefaultList(count int) {
	l := list.New()
	for i := 0; i < count; i++ {
		l.PushBack(newPerson("John", "Smith", int64(20+i)))
	}
	for e := l.Front(); e != nil; e = e.Next() {
		e.Value.(person).Finalize()
	}
}

// runDefaultVector is the baseline leg over a plain slice.
func runDefaultVector(count int) {
	people := make([]person, 0)
	for i := 0; i < count; i++ {
		people = append(people, newPerson("Jane", "Smith", int64(30+i)))
	}
	for i := range people {
		people[i].Finalize()
	}
}

func runList(a alloc.Allocator[person], count int) error {
	l := alloc.NewList(a)
	defer l.Close()
	for i := 0; i < count; i++ {
		if err := l.PushBack(newPerson("John", "Smith", int64(20+i))); err != nil {
			return err
		}
	}
	return nil
}

func runVector(a alloc.Allocator[person], count int) error {
	v := alloc.NewVector(a)
	defer v.Close()
	for i := 0; i < count; i++ {
		if err := v.Push(newPerson("Jane", "Smith", int64(30+i))); err != nil {
			return err
		}
	}
	return nil
}
