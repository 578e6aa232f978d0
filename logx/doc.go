/*
Package logx provides a small leveled logger with colored console output
for development and JSON output for production.

Use the global logger directly:

	logx.Info("registered provider %s", name)
	logx.Debug("redirect target resolved to %s", target)

Or create a dedicated instance:

	log := logx.New()
	log.SetPrefix("oauth")
	log.SetFormat(logx.FormatJSON)

The global logger honors the LOG_LEVEL, LOG_FORMAT, LOG_COLOR and
LOG_CALLER environment variables at startup.
*/
package logx
