// Package typewriter produces the rotating headline animation: an endless
// sequence of frames that type out a phrase one rune at a time, hold it, delete
// it and move on to the next phrase.
//
// The Presenter itself is a pure state machine advanced by Step. Play and Run
// attach it to a schedule.Scheduler so the same frames can drive a terminal, a
// test clock or the timings embedded in the rendered page.
package typewriter
