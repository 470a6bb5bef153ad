// Package dte implements editor.Automation for Visual Studio's DTE
// automation object over COM IDispatch.
//
// The backend is Windows-only. DTE objects live in a single-threaded COM
// apartment, so every call must come from the OS thread that initialized
// COM; callers keep initialization sequential unless they know better.
package dte
