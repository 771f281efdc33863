package cli

import (
	"bitsteg/internal/logging"
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/spf13/afero"
)

var (
	// MemorySampleRate How often to dump the memory to a file in HZ. Values of less than 1 are recommended to avoid
	// having to sort through too many dump files
	MemorySampleRate = 0.5

	profilerMu  sync.Mutex
	cpuProfiler *CPUProfilerStruct
	memProfiler *MemProfilerStruct
)

type CPUProfilerStruct struct {
	profileOutput io.WriteCloser
}

type MemProfilerStruct struct {
	dumpPath           string
	heapDumps          [][]byte
	shouldProfilerStop chan struct{}
	stopped            sync.WaitGroup
}

// StartCPUProfiler writes a CPU profile to profilePath until StopCPUProfiler is called
func StartCPUProfiler(profilePath string) error {
	profilerMu.Lock()
	defer profilerMu.Unlock()

	profileOutput, err := fs.Create(profilePath)
	if err != nil {
		return err
	}
	runtime.SetCPUProfileRate(500)
	if err = pprof.StartCPUProfile(profileOutput); err != nil {
		profileOutput.Close()
		return fmt.Errorf("starting CPU profiler: %w", err)
	}
	cpuProfiler = &CPUProfilerStruct{profileOutput: profileOutput}
	return nil
}

func StopCPUProfiler() {
	profilerMu.Lock()
	defer profilerMu.Unlock()

	if cpuProfiler == nil {
		return
	}
	pprof.StopCPUProfile()
	if err := cpuProfiler.profileOutput.Close(); err != nil {
		logging.BuildLogger().WithError(err).Error("Error closing CPU profile")
	}
	cpuProfiler = nil
}

// StartMemoryProfiler samples the heap at MemorySampleRate, dumps are written to profileDumpPath when the profiler
// stops
func StartMemoryProfiler(profileDumpPath string) {
	profilerMu.Lock()
	defer profilerMu.Unlock()

	if MemorySampleRate <= 0 || memProfiler != nil {
		return
	}

	mp := &MemProfilerStruct{dumpPath: profileDumpPath, shouldProfilerStop: make(chan struct{})}
	memProfiler = mp

	mp.stopped.Add(1)
	go func() {
		defer mp.stopped.Done()
		ticker := time.NewTicker(time.Duration((1/MemorySampleRate)*1000) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-mp.shouldProfilerStop:
				return
			case <-ticker.C:
				mp.dump()
			}
		}
	}()
}

func (mp *MemProfilerStruct) dump() {
	w := bytes.NewBuffer(nil)
	if err := pprof.WriteHeapProfile(w); err != nil {
		logging.BuildLogger().WithError(err).Error("Error taking heap profile")
		return
	}
	mp.heapDumps = append(mp.heapDumps, w.Bytes())
}

func StopMemoryProfiler() {
	profilerMu.Lock()
	defer profilerMu.Unlock()

	mp := memProfiler
	if mp == nil {
		return
	}
	memProfiler = nil

	close(mp.shouldProfilerStop)
	mp.stopped.Wait()
	mp.dump()

	_ = fs.MkdirAll(mp.dumpPath, os.ModePerm)
	for dIdx, dump := range mp.heapDumps {
		err := afero.WriteFile(fs, fmt.Sprintf("%s/mem-%d.mprof", mp.dumpPath, dIdx), dump, 0644)
		if err != nil {
			logging.BuildLogger().WithError(err).Error("Error writing memory profile to disk")
		}
	}
}
