// Package infra contains technical adapters such as dataset sinks and
// metrics exporters. These packages should depend only on the types defined
// in the core packages.
package infra
