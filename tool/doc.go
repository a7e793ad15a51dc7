// Package tool bundles the demonstration tools used by the example
// agents. Both implement the langchaingo tools.Tool interface and are
// deterministic, so agent behavior around tool calling can be tested
// without network access.
package tool
