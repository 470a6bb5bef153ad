// Package logging provides structured logging for vslaunch runs.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// persistent attributes. vslaunch prints only human-readable lines to
// stdout; everything about retries, polling and resolver decisions goes to
// the log file so a run can be diagnosed after the fact.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("resolved instance", "identity", h.Identity())
//
// # Persistent Attributes
//
//	runLogger := logger.WithRun(runID)
//	instLogger := runLogger.WithInstance("!VisualStudio.DTE.17.0:4120").WithPhase("initialize")
//	instLogger.Debug("solution not readable yet", "attempt", 3)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"solution not readable yet","run_id":"...","instance":"!VisualStudio.DTE.17.0:4120","phase":"initialize","attempt":3}
//
// # Rotation
//
// The log file lives at {dir}/vslaunch.log and is rotated by [RotatingWriter]
// once it exceeds MaxSizeMB, keeping MaxBackups numbered backups.
package logging
