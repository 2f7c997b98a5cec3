package util

import (
	"sync"

	"github.com/influxdata/influxdb-client-go/api/write"
)

// MockWriteAPI stands in for an InfluxDB write API when no server is
// configured. It keeps the points it receives.
type MockWriteAPI struct {
	mu      sync.Mutex
	points  []*write.Point
	records []string
	flushes int
}

func (m *MockWriteAPI) WriteRecord(line string) {
	m.mu.Lock()
	m.records = append(m.records, line)
	m.mu.Unlock()
}

func (m *MockWriteAPI) WritePoint(point *write.Point) {
	m.mu.Lock()
	m.points = append(m.points, point)
	m.mu.Unlock()
}

func (m *MockWriteAPI) Flush() {
	m.mu.Lock()
	m.flushes++
	m.mu.Unlock()
}

func (m *MockWriteAPI) Close() {}

// Errors returns nil; the mock never fails.
func (m *MockWriteAPI) Errors() <-chan error { return nil }

// Points returns a copy of the points written so far.
func (m *MockWriteAPI) Points() []*write.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*write.Point(nil), m.points...)
}

func (m *MockWriteAPI) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}
