// Package saga provides effect combinators for event-driven workers:
// TakeEvery, TakeLatest and Debounce.
//
// A combinator never subscribes to events, starts goroutines or sets timers
// itself. It returns a *Sequence of effect descriptions (Take, Fork, Cancel,
// Race, Call) that an interpreter performs, feeding each result back with
// Resume. Each combinator is a small transition table of pure functions; the
// Sequence is the driver that walks it.
//
// # Driving a sequence
//
//	seq := saga.TakeLatest("USER_REQUESTED", fetchUser)
//	eff, ok, err := seq.Resume(nil)
//	for ok && err == nil {
//	    var res any
//	    if eff != nil {
//	        res, err = interpreter.Perform(ctx, eff)
//	        if err != nil {
//	            err = seq.ResumeWithError(err)
//	            break
//	        }
//	    }
//	    eff, ok, err = seq.Resume(res)
//	}
//
// A nil effect with ok == true is a step that needs nothing from the
// interpreter; resume it with nil, or use Next which does that for you.
//
// # Results the interpreter resumes with
//
//   - Take: the matched event, or End when the bus is exhausted. The
//     sequence finishes on End without forking.
//   - Fork: the Task handle of the started run.
//   - Cancel: nothing.
//   - Race: a RaceOutcome naming the winning branch.
//   - Call: the call's result.
//
// A Sequence is lazy, finite only through End or ResumeWithError, and not
// restartable. Call the combinator again for a fresh one.
package saga
