// Package tui renders the live bring-up view for "stationup up --watch".
//
// The model shows a spinner while the supervisor is connecting, a
// scrolling log of lifecycle events with retry counts, and a styled
// result line once a terminal outcome arrives, at which point the
// program quits on its own.
//
// Events reach the model from outside the bubbletea loop: the command
// wires the supervisor's forward hook and outcome wait to Program.Send:
//
//	p := tea.NewProgram(tui.NewModel(iface, ssid, budget))
//	sup.Forward(func(ev wifi.Event) { p.Send(tui.EventMsg(ev)) })
//	go func() { p.Send(tui.OutcomeMsg(sup.WaitForOutcome())) }()
//	p.Run()
package tui
