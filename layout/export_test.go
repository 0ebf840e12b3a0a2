package layout

// TargetWidth exports targetWidth for testing.
func (c *Controller) TargetWidth() (int, error) {
	return c.targetWidth()
}

// Applied returns how many resize passes the controller has performed.
func (c *Controller) Applied() int {
	return c.applied
}
