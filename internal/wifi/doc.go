// Package wifi contains the Wi-Fi bring-up core: lifecycle event types,
// the connection supervisor, and the outcome latch the startup flow
// blocks on.
//
// # Model
//
// The network layer (wpa_supplicant control interface plus the kernel
// address watcher) delivers lifecycle events from its own goroutine. The
// Supervisor consumes those events, issues reconnect requests while the
// retry budget lasts, and publishes exactly one terminal outcome to the
// Latch. The startup flow blocks on the latch until an outcome appears:
//
//	latch := wifi.NewLatch()
//	sup := wifi.NewSupervisor(station, budget, latch, logger)
//	station.Subscribe(sup)
//	station.Start()
//	outcome := sup.WaitForOutcome()
//
// One Supervisor drives one bring-up run. After OutcomeExhausted has been
// published the supervisor goes inert; re-running the binary is the reset.
//
// # Thread Safety
//
// HandleEvent is safe to call from the event-delivery goroutine while
// WaitForOutcome blocks on the startup goroutine. HandleEvent never
// blocks; only WaitForOutcome does, and it blocks indefinitely (the boot
// sequence has nothing else to do).
package wifi
