package config

import (
	"go.uber.org/zap"

	"github.com/eugenenazirov/webui-harness/internal/properties"
)

const (
	// DumpBegin and DumpEnd bracket the property listing.
	DumpBegin = "========== Begin Properties List =========="
	DumpEnd   = "=========== End Properties List ==========="

	maxDumpValue  = 40
	truncatedKeep = 37
	ellipsis      = "..."
)

// Truncate shortens values longer than 40 characters to their first 37
// characters followed by "...".
func Truncate(v string) string {
	runes := []rune(v)
	if len(runes) <= maxDumpValue {
		return v
	}
	return string(runes[:truncatedKeep]) + ellipsis
}

// Lines renders props as sorted key=value lines with truncated values.
func Lines(props properties.Properties) []string {
	keys := props.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+Truncate(props[k]))
	}
	return out
}

// Dump logs props at debug level between the begin and end markers, one entry
// per key.
func Dump(logger *zap.Logger, props properties.Properties) {
	logger.Debug(DumpBegin)
	for _, k := range props.Keys() {
		logger.Debug("property",
			zap.String("key", k),
			zap.String("value", Truncate(props[k])),
		)
	}
	logger.Debug(DumpEnd)
}
