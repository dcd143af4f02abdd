// Logveil is a log redaction engine driven by versioned JSON rule
// files.
//
// It reads log lines, applies trigger-prefiltered regex redaction
// rules, and emits the sanitized lines:
//
//	# Redact stdin with default configuration
//	tail -f app.log | logveil run
//
//	# Run with a custom configuration file
//	logveil run --config /etc/logveil/config.yaml
//
//	# Validate rule files
//	logveil lint --file redaction-rules.json
//
//	# Show version information
//	logveil version
package main

func main() {
	Execute()
}
