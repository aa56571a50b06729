// Package metrics reports process and storage health for the bot's /status command.
package metrics

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"
)

// Health is a point-in-time snapshot of the running process.
type Health struct {
	AllocMB    uint64
	SysMB      uint64
	NumGC      uint32
	Goroutines int
	DataBytes  int64
}

// DataSize is DataBytes in human units, e.g. "1.5 KiB".
func (h Health) DataSize() string {
	return humanize.IBytes(uint64(h.DataBytes))
}

// Snapshot collects runtime memory stats and the size of dataDir.
func Snapshot(dataDir string) Health {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	size, _ := DirSize(dataDir)
	return Health{
		AllocMB:    m.Alloc / 1024 / 1024,
		SysMB:      m.Sys / 1024 / 1024,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		DataBytes:  size,
	}
}

// DirSize sums the sizes of regular files under path.
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
