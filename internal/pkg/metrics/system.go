package metrics

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// scrapeTimeout ограничивает опрос ОС во время одного scrape.
const scrapeTimeout = 2 * time.Second

var (
	hostCPUDesc = prometheus.NewDesc(
		"host_cpu_usage_percent",
		"Host CPU usage since the previous scrape",
		nil, nil,
	)
	hostMemoryDesc = prometheus.NewDesc(
		"host_memory_used_bytes",
		"Host memory in use",
		nil, nil,
	)
	processRSSDesc = prometheus.NewDesc(
		"route_engine_process_rss_bytes",
		"Resident set size of the service process",
		nil, nil,
	)
	heapAllocDesc = prometheus.NewDesc(
		"route_engine_heap_alloc_bytes",
		"Go heap bytes allocated and in use",
		nil, nil,
	)
	goroutinesDesc = prometheus.NewDesc(
		"route_engine_goroutines",
		"Live goroutines",
		nil, nil,
	)
)

// System собирает метрики хоста и процесса в момент scrape, без фонового тикера.
// Метрика, которую ОС не отдала, в этот scrape просто пропускается.
type System struct {
	proc *process.Process
}

func NewSystem() *System {
	s := &System{}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = p
	}
	return s
}

// Register регистрирует сборщик в реестре.
func Register(reg prometheus.Registerer) error {
	return reg.Register(NewSystem())
}

func (s *System) Describe(ch chan<- *prometheus.Desc) {
	ch <- hostCPUDesc
	ch <- hostMemoryDesc
	ch <- processRSSDesc
	ch <- heapAllocDesc
	ch <- goroutinesDesc
}

func (s *System) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	// интервал 0 считает загрузку относительно предыдущего вызова
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		ch <- prometheus.MustNewConstMetric(hostCPUDesc, prometheus.GaugeValue, pct[0])
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(hostMemoryDesc, prometheus.GaugeValue, float64(vm.Used))
	}
	if s.proc != nil {
		if info, err := s.proc.MemoryInfoWithContext(ctx); err == nil {
			ch <- prometheus.MustNewConstMetric(processRSSDesc, prometheus.GaugeValue, float64(info.RSS))
		}
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	ch <- prometheus.MustNewConstMetric(heapAllocDesc, prometheus.GaugeValue, float64(ms.HeapAlloc))
	ch <- prometheus.MustNewConstMetric(goroutinesDesc, prometheus.GaugeValue, float64(runtime.NumGoroutine()))
}
