package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	ResumesProcessed  uint64            `json:"resumes_processed"`
	ProviderCalls     uint64            `json:"provider_calls"`
	FallbacksServed   uint64            `json:"fallbacks_served"`
	AICalls           uint64            `json:"ai_calls"`
	ErrorsTotal       uint64            `json:"errors_total"`
	ProviderResults   map[string]uint64 `json:"provider_results,omitempty"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	resumesProcessed uint64
	providerCalls    uint64
	fallbacksServed  uint64
	aiCalls          uint64
	errorsTotal      uint64

	statsMu           sync.Mutex
	providerResults   = map[string]uint64{}
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncResumesProcessed() {
	atomic.AddUint64(&resumesProcessed, 1)
}

func IncProviderCall(provider string) {
	atomic.AddUint64(&providerCalls, 1)
	if provider == "" {
		provider = "unknown"
	}
	statsMu.Lock()
	providerResults[provider]++
	statsMu.Unlock()
}

func IncFallbackServed() {
	atomic.AddUint64(&fallbacksServed, 1)
}

func IncAICall(_ string) {
	atomic.AddUint64(&aiCalls, 1)
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	providerCopy := copyMap(providerResults)
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	return StatsSnapshot{
		ResumesProcessed:  atomic.LoadUint64(&resumesProcessed),
		ProviderCalls:     atomic.LoadUint64(&providerCalls),
		FallbacksServed:   atomic.LoadUint64(&fallbacksServed),
		AICalls:           atomic.LoadUint64(&aiCalls),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		ProviderResults:   providerCopy,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
