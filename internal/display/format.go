package display

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

func formatScale(scale float64) string {
	return strconv.FormatFloat(scale, 'f', 2, 64)
}

func (d MonitorDescription) String() string {
	return strings.Join([]string{d.Connector, d.Vendor, d.Product, d.Serial}, " ")
}

// String renders the mode as one aligned row. The current mode is marked
// with "*", the preferred mode and preferred scale with "+".
func (m Mode) String() string {
	refresh := strconv.FormatFloat(m.RefreshRate, 'f', 2, 64)
	if m.IsCurrent {
		refresh += "*"
	}
	if m.IsPreferred {
		refresh += "+"
	}

	scales := make([]string, 0, len(m.SupportedScales))
	for _, s := range m.SupportedScales {
		entry := "x" + formatScale(s)
		if s == m.PreferredScale {
			entry += "+"
		}
		scales = append(scales, entry)
	}

	return fmt.Sprintf("%30s\t%-10s\t%-10s\t[%s]",
		m.ID, fmt.Sprintf("%dx%d", m.Width, m.Height), refresh, strings.Join(scales, ", "))
}

func (p PhysicalMonitor) String() string {
	var b strings.Builder
	b.WriteString(p.MonitorDescription.String())
	b.WriteByte('\n')
	for _, m := range p.Modes {
		b.WriteString(m.String())
		b.WriteByte('\n')
	}
	writeProperties(&b, p.Properties)
	return b.String()
}

func (l LogicalMonitor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, primary: %t\n", l.Transform, l.Primary)
	b.WriteString("associated physical monitors:\n")
	for _, m := range l.Monitors {
		fmt.Fprintf(&b, "\t%s\n", m)
	}
	writeProperties(&b, l.Properties)
	return b.String()
}

func (k KnownProperties) String() string {
	return fmt.Sprintf("supports-mirroring: %t\nlayout-mode: %s\nsupports-changing-layout-mode: %t\nglobal-scale-required: %t\n",
		k.SupportsMirroring, k.LayoutMode, k.SupportsChangingLayoutMode, k.GlobalScaleRequired)
}

func (a ApplyConfig) String() string {
	monitors := make([]string, 0, len(a.Monitors))
	for _, m := range a.Monitors {
		monitors = append(monitors, m.Connector+"@"+m.ModeID)
	}
	return fmt.Sprintf("%s, primary: %t, monitors: [%s]", a.Transform, a.Primary, strings.Join(monitors, ", "))
}

func (c *Config) String() string {
	var b strings.Builder
	_ = c.Format(&b, false)
	return b.String()
}

// Format writes the configuration. A summary lists only the logical
// monitors.
func (c *Config) Format(w io.Writer, summary bool) error {
	var b strings.Builder

	if !summary {
		b.WriteString(c.Known.String())
		writeProperties(&b, c.Properties)
		b.WriteByte('\n')
	}

	for i, lm := range c.LogicalMonitors {
		fmt.Fprintf(&b, "logical monitor %d:\n%s\n", i, lm)
	}

	if !summary {
		for _, pm := range c.Monitors {
			b.WriteString(pm.String())
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatPair writes one logical monitor followed by its physical monitor.
func FormatPair(w io.Writer, lm LogicalMonitor, pm PhysicalMonitor) error {
	_, err := fmt.Fprintf(w, "%s\n%s", lm, pm)
	return err
}

func writeProperties(b *strings.Builder, props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(b, "%s: %v\n", k, props[k])
	}
}
