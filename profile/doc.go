// Package profile adds hidden runtime profiling flags to the jsdocfmt CLI.
//
// It writes CPU, heap, and allocs profiles and execution traces, which helps
// when tuning the formatter on large source trees:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler()
//	err := p.Start()
//	// Format files.
//	err = errors.Join(err, p.Stop())
package profile
