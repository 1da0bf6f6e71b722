// Package log provides the leveled logging interface used by the graph
// engine, with a kataras/golog backend as the default implementation.
//
// The engine logs step transitions at debug level and run outcomes at info,
// through whatever Logger is configured:
//
//	logger := log.NewGologLogger(golog.New())
//	logger.SetLevel(log.LogLevelDebug)
//	log.SetDefaultLogger(logger)
//
// Use NoOpLogger to silence the engine entirely, or implement Logger to
// bridge to another logging system.
package log
