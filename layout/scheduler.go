package layout

// Scheduler coalesces deferred reflow requests into a single pending slot:
// at most one reflow is pending per surface, and a new request while one is
// pending supersedes it instead of queuing a second pass. Superseded passes
// are harmless because Reflow is idempotent, but skipping them keeps a burst
// of resize notifications from scheduling a storm of identical work.
//
// Scheduler is not safe for concurrent use; it belongs to the UI event loop
// like everything else in this package.
type Scheduler struct {
	pending bool
}

// Request marks a reflow as wanted. It reports true when the caller should
// schedule a deferred pass, false when one is already pending.
func (s *Scheduler) Request() bool {
	if s.pending {
		return false
	}
	s.pending = true
	return true
}

// Pending reports whether a deferred pass is scheduled.
func (s *Scheduler) Pending() bool {
	return s.pending
}

// Run clears the pending slot and executes the reflow. It is called when
// the deferred pass's turn arrives on the event loop.
func (s *Scheduler) Run(c *Controller) {
	s.pending = false
	c.Reflow()
}
