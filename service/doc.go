// Package service installs, removes and runs the application as a
// system-managed background service.
//
// A [Manager] works against a [Host], the platform's service control
// manager. [NewSystemHost] returns the Windows SCM; on other platforms it
// returns [ErrUnsupported]. Every handle a Manager opens is closed on every
// path.
//
// Removal asks a running service to stop, then polls its state once per
// poll interval for as long as it reports StopPending. The wait has no
// iteration cap; cancel the context to end it early. Deletion is attempted
// whether or not the service stopped.
//
// [Manager.Reconcile] implements the startup decision:
//
//	headless, no UI, run-as-service  → install if missing, then run as a service
//	not run-as-service               → remove the service if it is installed
//	otherwise                        → leave the installation alone
package service
