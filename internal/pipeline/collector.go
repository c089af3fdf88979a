package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Collector aggregates per-job outcomes from concurrent workers. All
// methods are safe for concurrent use.
type Collector struct {
	mu        sync.Mutex
	errors    []string
	successes int
	inBytes   int64
	outBytes  int64
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Fail records a failed job with its error.
func (c *Collector) Fail(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, fmt.Sprintf("%s: %v", path, err))
}

// FailOutput records a failed encode together with the encoder's stderr.
func (c *Collector) FailOutput(path string, err error, stderr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := fmt.Sprintf("%s: %v", path, err)
	if stderr != "" {
		entry += "\n" + stderr
	}
	c.errors = append(c.errors, entry)
}

// Success records a finalized job with its input and output sizes.
func (c *Collector) Success(inBytes, outBytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.successes++
	c.inBytes += inBytes
	c.outBytes += outBytes
}

// Successes returns the number of finalized jobs.
func (c *Collector) Successes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.successes
}

// Errors returns a copy of the recorded error entries.
func (c *Collector) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.errors...)
}

// Bytes returns the aggregate input and output sizes of finalized jobs.
func (c *Collector) Bytes() (in, out int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inBytes, c.outBytes
}

// WriteLog writes the recorded errors to path, one entry per line group,
// creating parent directories as needed. The file is written only when
// errors exist; callers check Errors first.
func (c *Collector) WriteLog(path string) error {
	entries := c.Errors()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(entries, "\n")+"\n"), 0o644)
}
