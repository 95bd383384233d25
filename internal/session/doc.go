// Package session runs the interactive matching loop for one video.
//
// A Session starts in StateAnalyzing, moves to StateAwaitingInput where the
// ranked candidates are shown and one line of input is read, and ends in
// StateDone, StateSkipped, or StateFailed. Free text refines the keyword set
// and loops back through StateRefined. The console read is the only point
// where a session blocks.
//
// Side effects follow the decision that causes them: a script is copied
// before history is written, and a studio pattern is learned only after a
// successful copy.
package session
