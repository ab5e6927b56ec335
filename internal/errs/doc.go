// Package errs defines the error taxonomy shared by opsops packages.
//
// Library packages wrap one of the sentinels below with context:
//
//	return fmt.Errorf("reading %s: %w", path, errs.ErrRead)
//
// and the cmd package matches them with errors.Is to pick a message and an
// exit code. ExitError carries an exact process exit code, which is how a
// child process's failure code reaches os.Exit.
package errs
