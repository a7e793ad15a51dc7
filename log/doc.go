// Package log provides leveled logging for the module.
//
// The package ships a stdlib-backed DefaultLogger and a GologLogger
// adapter over github.com/kataras/golog. A package-level default
// logger lets callers enable logging globally without threading
// logger objects through every constructor:
//
//	log.SetLogLevel(log.LogLevelDebug)
//	log.Info("checkpoint store ready: %s", path)
//
// Custom implementations only need to satisfy the Logger interface.
package log
