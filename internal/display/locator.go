package display

import "codeberg.org/mutker/displayctl/internal/errors"

// Search finds the logical monitor driven by connector and the physical
// monitor attached to it.
func (c *Config) Search(connector string) (LogicalMonitor, PhysicalMonitor, error) {
	physical, ok := c.PhysicalMonitor(connector)
	if !ok {
		return LogicalMonitor{}, PhysicalMonitor{}, errors.New().WithData(ErrMonitorNotFound, connector)
	}

	for _, lm := range c.LogicalMonitors {
		if lm.HasConnector(connector) {
			return lm, *physical, nil
		}
	}

	return LogicalMonitor{}, PhysicalMonitor{}, errors.New().WithData(ErrMonitorNotFound, connector)
}
