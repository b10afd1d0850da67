package instrumentation

// Cardinality helpers keep metric label values bounded. Request paths
// come from the network and must never be used as labels verbatim.

// PathOther is the label used for every path outside the known set.
const PathOther = "other"

// PathLabel returns path if it is one of known, otherwise PathOther.
//
// Example:
//
//	PathLabel("/mcp", "/mcp", "/healthz")       // "/mcp"
//	PathLabel("/wp-admin", "/mcp", "/healthz")  // "other"
func PathLabel(path string, known ...string) string {
	for _, k := range known {
		if path == k {
			return path
		}
	}
	return PathOther
}
