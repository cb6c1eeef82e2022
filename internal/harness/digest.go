package harness

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// digestDomain separates trace digests from any other BLAKE3 use.
const digestDomain = "lexrank/trace/v1"

// Digest returns the hex BLAKE3 digest of the canonical JSON trace.
// Two runs with the same steps under the same profile have the same digest
// regardless of run token.
func Digest(trace []TraceEvent) (string, error) {
	data, err := MarshalCanonical(traceList(trace))
	if err != nil {
		return "", fmt.Errorf("digest trace: %w", err)
	}

	h := blake3.New()
	h.Write([]byte(digestDomain))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// traceList converts trace events to the generic form MarshalCanonical takes.
func traceList(trace []TraceEvent) []any {
	out := make([]any, len(trace))
	for i, ev := range trace {
		out[i] = eventMap(ev)
	}
	return out
}

func eventMap(ev TraceEvent) map[string]any {
	m := map[string]any{
		"type": ev.Type,
		"seq":  ev.Seq,
	}
	if ev.Op != "" {
		m["op"] = ev.Op
	}
	if ev.Args != nil {
		m["args"] = ev.Args
	}
	if ev.Case != "" {
		m["case"] = ev.Case
	}
	if ev.Result != nil {
		m["result"] = ev.Result
	}
	return m
}
